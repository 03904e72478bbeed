package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-service/internal/domain"
	"patient-service/internal/testutil"
)

func newPatient(email string) domain.Patient {
	return domain.Patient{
		ID:             uuid.New(),
		Name:           "Ann",
		Email:          email,
		DateOfBirth:    time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		Address:        "1 Main St",
		RegisteredDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndFind(t *testing.T) {
	r := NewPatientRepo(testutil.NewSQLite(t))
	ctx := context.Background()
	p := newPatient("ann@x.com")
	require.NoError(t, r.Create(ctx, &p))

	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Email, got.Email)
	assert.Equal(t, "1990-01-15", got.DateOfBirth.Format(domain.DateLayout))
	assert.Equal(t, "2024-03-01", got.RegisteredDate.Format(domain.DateLayout))

	got, err = r.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
}

func TestFindAbsentReturnsNil(t *testing.T) {
	r := NewPatientRepo(testutil.NewSQLite(t))
	ctx := context.Background()

	got, err := r.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestExists(t *testing.T) {
	r := NewPatientRepo(testutil.NewSQLite(t))
	ctx := context.Background()
	p := newPatient("ann@x.com")
	require.NoError(t, r.Create(ctx, &p))

	ok, err := r.ExistsByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ExistsByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ExistsByEmailAndIDNot(ctx, "ann@x.com", p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.ExistsByEmailAndIDNot(ctx, "ann@x.com", uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUniqueEmailIndex(t *testing.T) {
	r := NewPatientRepo(testutil.NewSQLite(t))
	ctx := context.Background()
	a := newPatient("ann@x.com")
	b := newPatient("bob@x.com")
	require.NoError(t, r.Create(ctx, &a))
	require.NoError(t, r.Create(ctx, &b))

	dup := newPatient("ann@x.com")
	assert.ErrorIs(t, r.Create(ctx, &dup), domain.ErrDuplicateEmail)

	b.Email = "ann@x.com"
	assert.ErrorIs(t, r.Update(ctx, &b), domain.ErrDuplicateEmail)

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateOverwritesFields(t *testing.T) {
	r := NewPatientRepo(testutil.NewSQLite(t))
	ctx := context.Background()
	p := newPatient("ann@x.com")
	require.NoError(t, r.Create(ctx, &p))

	p.Name = "Ann Smith"
	p.Email = "ann.smith@x.com"
	p.Address = "2 Side St"
	p.RegisteredDate = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Update(ctx, &p))

	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ann Smith", got.Name)
	assert.Equal(t, "ann.smith@x.com", got.Email)
	assert.Equal(t, "2 Side St", got.Address)
	assert.Equal(t, "2024-04-02", got.RegisteredDate.Format(domain.DateLayout))
}

func TestDelete(t *testing.T) {
	r := NewPatientRepo(testutil.NewSQLite(t))
	ctx := context.Background()
	a := newPatient("ann@x.com")
	b := newPatient("bob@x.com")
	require.NoError(t, r.Create(ctx, &a))
	require.NoError(t, r.Create(ctx, &b))

	require.NoError(t, r.Delete(ctx, &a))
	require.NoError(t, r.DeleteByID(ctx, b.ID))

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
