package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"erp-dashboard/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// employeeForm returns a session that stores valid employees in *store.
func employeeForm(store *[]core.Employee) *core.FormSession {
	s := core.EmployeeSchema()
	return core.NewFormSession(func(_ context.Context, fields core.Fields, editingID int) (string, error) {
		rec, err := s.Submit(fields, *store, editingID, today)
		if err != nil {
			return "", err
		}
		if editingID == 0 {
			*store = append(*store, rec)
			return s.Message(core.OpCreate), nil
		}
		(*store)[s.Find(*store, editingID)] = rec
		return s.Message(core.OpUpdate), nil
	})
}

func TestFormSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	var store []core.Employee
	form := employeeForm(&store)
	now := time.Now()

	assert.Equal(t, core.FormClosed, form.State())
	_, err := form.Submit(ctx, now)
	require.ErrorIs(t, err, core.ErrFormClosed)

	form.Open(0, nil)
	assert.Equal(t, core.FormOpen, form.State())
	for k, v := range janeDoe() {
		require.NoError(t, form.Set(k, v))
	}
	require.NoError(t, form.Set("email", "not-an-email"))

	errs, err := form.Submit(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, core.FormInvalid, form.State())
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Empty(t, store)

	require.NoError(t, form.Set("email", "jane@x.com"))
	assert.Empty(t, form.Errors(), "editing a field clears its error")

	errs, err = form.Submit(ctx, now)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, core.FormClosed, form.State())
	assert.Len(t, store, 1)

	assert.Equal(t, "Employee added successfully", form.Banner(now.Add(2*time.Second)))
	assert.Empty(t, form.Banner(now.Add(core.BannerTTL)))
}

func TestFormSession_EditKeepsID(t *testing.T) {
	store := []core.Employee{{ID: 5, Name: "Jane Doe", Email: "jane@x.com", Department: "Engineering", Position: "Dev", Status: "Active", StartDate: "2020-01-01"}}
	form := employeeForm(&store)

	form.Open(5, core.Fields{"name": "Jane Doe", "email": "jane@x.com", "department": "Engineering", "position": "Dev", "startDate": "2020-01-01"})
	require.NoError(t, form.Set("position", "Lead"))
	errs, err := form.Submit(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, errs)

	require.Len(t, store, 1)
	assert.Equal(t, 5, store[0].ID)
	assert.Equal(t, "Lead", store[0].Position)
}

func TestFormSession_CancelDiscards(t *testing.T) {
	var store []core.Employee
	form := employeeForm(&store)

	form.Open(0, core.Fields{"name": "half typed"})
	form.Cancel()
	assert.Equal(t, core.FormClosed, form.State())
	assert.Empty(t, form.Fields())
	require.ErrorIs(t, form.Set("name", "x"), core.ErrFormClosed)

	form.Open(0, nil)
	assert.Empty(t, form.Fields(), "reopening starts empty")
	assert.Empty(t, store)
}

func TestFormSession_StorageFailureKeepsFormOpen(t *testing.T) {
	boom := errors.New("disk full")
	form := core.NewFormSession(func(context.Context, core.Fields, int) (string, error) {
		return "", boom
	})
	form.Open(0, nil)
	_, err := form.Submit(context.Background(), time.Now())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, core.FormOpen, form.State())
}
