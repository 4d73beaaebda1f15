package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"strings"
	"time"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/core"
	"erp-dashboard/internal/metrics"
	webui "erp-dashboard/web"

	"github.com/NYTimes/gziphandler"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins string
	JWTSecret      string
	SecureCookies  bool
	SessionTTL     time.Duration
	MaxBodyBytes   int64
	MetricsPath    string // empty disables the metrics endpoint
	Logger         logrus.FieldLogger
	Metrics        *metrics.Metrics
	Static         fs.FS // defaults to the embedded web/static
}

// Handler holds the ApplicationService, the chi router and the static assets.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	opts       Options
	logger     logrus.FieldLogger
	static     fs.FS
	fileServer http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	static := opts.Static
	if static == nil {
		sub, err := fs.Sub(webui.Static, "static")
		if err != nil {
			panic("web/static embed sub-FS failed: " + err.Error())
		}
		static = sub
	}

	h := &Handler{
		svc:        svc,
		opts:       opts,
		logger:     opts.Logger,
		static:     static,
		fileServer: http.FileServer(http.FS(static)),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(h.logger))
	r.Use(Recoverer(h.logger))
	r.Use(Metrics(opts.Metrics))
	if c := CORS(opts.AllowedOrigins); c != nil {
		r.Use(c)
	}

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Get("/api/finance-data", h.financeData)
	if opts.MetricsPath != "" && opts.Metrics != nil {
		r.Handle(opts.MetricsPath, opts.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(opts.MaxBodyBytes))
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
	})

	// ── Static files served at /static/* ─────────────────────────────────────
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(opts.MaxBodyBytes))

		r.Get("/api/auth/me", h.me)
		r.Get("/api/navigation", h.navigation)
		r.Get("/api/dashboard/summary", h.summary)
		r.Get("/api/profile", h.getProfile)
		r.Put("/api/profile", h.saveProfile)

		r.Get("/api/collections", h.listCollections)
		r.Route("/api/collections/{name}", func(r chi.Router) {
			r.Get("/", h.listRecords)
			r.Post("/", h.createRecord)
			r.Post("/validate", h.validateRecord)
			r.Get("/schema", h.recordSchema)
			r.Get("/export", h.exportRecords)
			r.With(RequireRole(core.RoleAdmin)).Post("/reset", h.resetCollection)
			r.Get("/{id}", h.getRecord)
			r.Put("/{id}", h.updateRecord)
			r.Delete("/{id}", h.deleteRecord)
		})
	})

	// ── Everything else: SPA shell for known pages ───────────────────────────
	r.NotFound(h.spa)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, "method not allowed", "METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed)
	})

	h.router = r
	return gziphandler.GzipHandler(r)
}

// health reports liveness.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeFields reads a submission body into form fields. JSON objects of
// scalars and urlencoded forms are accepted. Returns false and writes the
// error response on failure: 413 when the body exceeds the limit set by
// RequestBodyLimit, 400 otherwise.
func decodeFields(w http.ResponseWriter, r *http.Request) (core.Fields, bool) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			writeBodyError(w, r, err)
			return nil, false
		}
		fields := make(core.Fields, len(r.PostForm))
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		return fields, true
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		writeBodyError(w, r, err)
		return nil, false
	}
	fields, err := core.FieldsFrom(raw)
	if err != nil {
		writeError(w, r, "invalid body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	return fields, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBodyError(w, r, err)
		return false
	}
	return true
}

func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
		return
	}
	writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
}

// spa serves index.html for every path the client-side router knows and a
// 404 for the rest. Unknown /api paths always get a JSON 404.
func (h *Handler) spa(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		writeError(w, r, "not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	if _, _, ok := core.Resolve(r.URL.Path); !ok && r.URL.Path != "/login" {
		http.NotFound(w, r)
		return
	}
	index, err := fs.ReadFile(h.static, "index.html")
	if err != nil {
		h.logger.WithError(err).Error("index.html missing from static assets")
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(index)
}
