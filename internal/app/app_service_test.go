package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"erp-dashboard/internal/core"
	"erp-dashboard/internal/logging"
	"erp-dashboard/internal/metrics"
	"erp-dashboard/internal/storage"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *appService
	store *storage.MemoryStore
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	creds, err := core.NewStaticCredentials("password")
	require.NoError(t, err)

	dir := t.TempDir()
	finance := filepath.Join(dir, "finance-data.json")
	require.NoError(t, os.WriteFile(finance, []byte(`{"revenue":{"2024":100}}`), 0o600))

	f := &fixture{store: storage.NewMemoryStore(), now: fixedNow}
	f.svc = NewAppService(Options{
		Store:       f.store,
		Credentials: creds,
		Finance:     core.NewFileFinanceSource(finance),
		Logger:      logging.Discard(),
		Metrics:     metrics.New(),
		Clock:       func() time.Time { return f.now },
		SessionTTL:  time.Hour,
	}).(*appService)
	return f
}

func janeFields() core.Fields {
	return core.Fields{
		"name":       "Jane Doe",
		"email":      "JANE@X.COM",
		"department": "Engineering",
		"position":   "Dev",
		"startDate":  "2020-01-01",
		"manager":    "Sarah Wilson",
	}
}

func TestCollections_ScenarioOnEmptyCollection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.svc.employees.coll.Save(ctx, nil))

	employees, err := f.svc.Collection(core.CollectionEmployees)
	require.NoError(t, err)

	res, err := employees.Create(ctx, janeFields())
	require.NoError(t, err)
	assert.Equal(t, 1, res.ID)
	assert.Equal(t, "Employee added successfully", res.Message)

	list, err := employees.List(ctx, core.Filter{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	stored := list.Records.([]core.Employee)
	assert.Equal(t, "jane@x.com", stored[0].Email)

	dup := janeFields()
	dup["email"] = "jane@X.com"
	_, err = employees.Create(ctx, dup)
	fields, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "An employee with this email already exists", fields["email"])

	raw, err := f.store.Get(ctx, core.CollectionEmployees)
	require.NoError(t, err)
	var persisted []core.Employee
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Len(t, persisted, 1, "rejected submission is not stored")
}

func TestCollections_UpdateDeleteLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	employees, err := f.svc.Collection(core.CollectionEmployees)
	require.NoError(t, err)

	seed, err := employees.List(ctx, core.Filter{})
	require.NoError(t, err)
	n := seed.Total
	require.Positive(t, n)

	created, err := employees.Create(ctx, janeFields())
	require.NoError(t, err)
	assert.Equal(t, n+1, created.ID)

	fields, err := employees.Fields(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", fields["email"])
	fields["position"] = "Lead"
	updated, err := employees.Update(ctx, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Employee updated successfully", updated.Message)

	rec, err := employees.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lead", rec.(core.Employee).Position)

	_, err = employees.Update(ctx, 999, janeFields())
	require.ErrorIs(t, err, core.ErrRecordNotFound)

	deleted, err := employees.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Employee deleted successfully", deleted.Message)

	after, err := employees.List(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, n, after.Total)
	for _, e := range after.Records.([]core.Employee) {
		assert.NotEqual(t, created.ID, e.ID)
	}

	_, err = employees.Delete(ctx, created.ID)
	require.ErrorIs(t, err, core.ErrRecordNotFound)
	_, err = employees.Get(ctx, created.ID)
	require.ErrorIs(t, err, core.ErrRecordNotFound)
}

func TestCollections_ValidateDoesNotStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ledger, err := f.svc.Collection(core.CollectionGeneralLedger)
	require.NoError(t, err)

	errs, err := ledger.Validate(ctx, core.Fields{
		"date": "2024-06-01", "account": "Cash", "description": "x", "debit": "5", "credit": "5",
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, core.FieldErrors{"amount": "Enter either a debit or a credit amount, not both"}, errs)

	before, err := ledger.List(ctx, core.Filter{})
	require.NoError(t, err)
	_, err = ledger.Validate(ctx, core.Fields{
		"date": "2024-06-01", "account": "Cash", "description": "x", "debit": "5",
	}, 0)
	require.NoError(t, err)
	after, err := ledger.List(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, before.Total, after.Total)
}

func TestCollections_ExponentAmountRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	payables, err := f.svc.Collection(core.CollectionAccountsPayable)
	require.NoError(t, err)

	before, err := payables.List(ctx, core.Filter{})
	require.NoError(t, err)

	_, err = payables.Create(ctx, core.Fields{
		"number":       "INV-BIG",
		"counterparty": "Acme",
		"amount":       "1e2000000",
		"issueDate":    "2024-06-01",
		"dueDate":      "2024-07-01",
	})
	fields, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Amount must be a positive number", fields["amount"])

	raw, err := f.store.Get(ctx, core.CollectionAccountsPayable)
	require.NoError(t, err)
	assert.Less(t, len(raw), 64*1024)
	after, err := payables.List(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, before.Total, after.Total)
}

func TestCollections_Unknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Collection("nope")
	require.ErrorIs(t, err, ErrUnknownCollection)

	names := []string{}
	for _, info := range f.svc.Collections() {
		names = append(names, info.Name)
		_, err := f.svc.Collection(info.Name)
		require.NoError(t, err)
	}
	assert.Len(t, names, 7)
}

func TestCollections_Schema(t *testing.T) {
	f := newFixture(t)
	payroll, err := f.svc.Collection(core.CollectionPayroll)
	require.NoError(t, err)

	js := payroll.Schema()
	assert.Equal(t, "Employee", js.Title)
	assert.Contains(t, js.Required, "salary")
	assert.NotContains(t, js.Required, "email")
	_, ok := js.Properties.Get("payFrequency")
	assert.True(t, ok)
}

func TestAuthenticate_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Authenticate(ctx, LoginRequest{Email: "admin@erp.com", Password: "nope"})
	require.ErrorIs(t, err, core.ErrInvalidCredentials)

	sess, err := f.svc.Authenticate(ctx, LoginRequest{Email: "Finance@erp.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "finance@erp.com", sess.Email)
	assert.Equal(t, core.RoleFinance, sess.Role)
	assert.Equal(t, fixedNow.Add(time.Hour), sess.ExpiresAt)

	got, err := f.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Email, got.Email)

	require.NoError(t, f.svc.Logout(ctx, sess.ID))
	_, err = f.svc.Session(ctx, sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.NoError(t, f.svc.Logout(ctx, sess.ID), "logout is idempotent")
}

func TestSession_Expires(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sess, err := f.svc.Authenticate(ctx, LoginRequest{Email: "hr@erp.com", Password: "password"})
	require.NoError(t, err)

	f.now = fixedNow.Add(time.Hour)
	_, err = f.svc.Session(ctx, sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.store.Get(ctx, sessionKeyPrefix+sess.ID)
	require.ErrorIs(t, err, storage.ErrNotFound, "expired session is removed")
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.GetProfile(ctx, "hr@erp.com")
	require.NoError(t, err)
	assert.Equal(t, "HR Manager", p.Name)
	assert.Equal(t, "system", p.Theme)

	_, err = f.svc.SaveProfile(ctx, SaveProfileRequest{Email: "hr@erp.com", Fields: core.Fields{"name": "", "email": "hr@erp.com"}})
	fe, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Name is required", fe["name"])

	saved, err := f.svc.SaveProfile(ctx, SaveProfileRequest{Email: "hr@erp.com", Fields: core.Fields{
		"name": "Helen Ruiz", "email": "helen@erp.com", "theme": "dark", "emailNotifications": "false",
	}})
	require.NoError(t, err)

	again, err := f.svc.GetProfile(ctx, "HR@erp.com")
	require.NoError(t, err)
	assert.Equal(t, *saved, *again)

	require.NoError(t, f.store.Put(ctx, profileKeyPrefix+"hr@erp.com", []byte("{broken")))
	restored, err := f.svc.GetProfile(ctx, "hr@erp.com")
	require.NoError(t, err)
	assert.Equal(t, "HR Manager", restored.Name)

	_, err = f.svc.GetProfile(ctx, "ghost@erp.com")
	require.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestFinanceData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	raw, err := f.svc.FinanceData(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"revenue":{"2024":100}}`, string(raw))

	f.svc.finance = core.NewFileFinanceSource(filepath.Join(t.TempDir(), "missing.json"))
	_, err = f.svc.FinanceData(ctx)
	require.Error(t, err)
}

func TestSummary_FromSeeds(t *testing.T) {
	f := newFixture(t)
	sum, err := f.svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(core.EmployeeSchema().Seed()), sum.Employees)
	assert.True(t, sum.Ledger.Balanced)
	assert.Positive(t, sum.Payroll.ActiveStaff)
}

func TestExport_WritesWorkbook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var buf bytes.Buffer
	err := f.svc.Export(ctx, ExportRequest{
		Collection: core.CollectionEmployees,
		Filter:     core.Filter{Category: "Engineering"},
	}, &buf)
	require.NoError(t, err)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Employees")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, core.EmployeeSchema().Headers(), rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, "Engineering", row[3])
	}

	err = f.svc.Export(ctx, ExportRequest{Collection: "nope"}, &buf)
	require.ErrorIs(t, err, ErrUnknownCollection)
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	employees, err := f.svc.Collection(core.CollectionEmployees)
	require.NoError(t, err)
	_, err = employees.Create(ctx, janeFields())
	require.NoError(t, err)

	results, err := f.svc.ResetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 7)

	list, err := employees.List(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, len(core.EmployeeSchema().Seed()), list.Total)
}

type undeletableStore struct {
	*storage.MemoryStore
}

func (undeletableStore) Delete(context.Context, string) error {
	return errors.New("disk full")
}

func TestSession_ExpiredDeleteFailureLogged(t *testing.T) {
	ctx := context.Background()
	creds, err := core.NewStaticCredentials("password")
	require.NoError(t, err)
	logger, hook := logtest.NewNullLogger()
	now := fixedNow
	svc := NewAppService(Options{
		Store:       undeletableStore{storage.NewMemoryStore()},
		Credentials: creds,
		Logger:      logger,
		Clock:       func() time.Time { return now },
		SessionTTL:  time.Hour,
	})

	sess, err := svc.Authenticate(ctx, LoginRequest{Email: "hr@erp.com", Password: "password"})
	require.NoError(t, err)

	now = fixedNow.Add(2 * time.Hour)
	_, err = svc.Session(ctx, sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "expired session not removed", entry.Message)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "disk full")
}

func TestStorageFailureSurfaces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFixture(t)
	employees, err := f.svc.Collection(core.CollectionEmployees)
	require.NoError(t, err)

	_, err = employees.Create(ctx, janeFields())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	_, isValidation := core.AsValidationError(err)
	assert.False(t, isValidation)
}
