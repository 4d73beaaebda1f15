package web

import (
	"net/http"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/core"
)

// financeLoadFailed is the exact body the finance dashboard expects on error.
const financeLoadFailed = `{"error":"Failed to load finance data"}`

// financeData handles GET /api/finance-data. The file is re-read on every
// request.
func (h *Handler) financeData(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.FinanceData(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(financeLoadFailed))
		return
	}
	_, _ = w.Write(raw)
}

// summary handles GET /api/dashboard/summary.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sum)
}

// navigation handles GET /api/navigation.
func (h *Handler) navigation(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Modules []core.Module `json:"modules"`
	}
	writeJSON(w, response{Modules: h.svc.Navigation()})
}

// getProfile handles GET /api/profile for the logged-in user.
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	p, err := h.svc.GetProfile(r.Context(), sess.Email)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, p)
}

// saveProfile handles PUT /api/profile.
func (h *Handler) saveProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}
	p, err := h.svc.SaveProfile(r.Context(), app.SaveProfileRequest{Email: sess.Email, Fields: fields})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Profile *core.Profile `json:"profile"`
		Message string        `json:"message"`
	}
	writeJSON(w, response{Profile: p, Message: "Profile updated successfully"})
}
