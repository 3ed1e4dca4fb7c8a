package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/domain/contact"
	"github.com/saanjh/storefront/internal/domain/shared"
	"github.com/saanjh/storefront/tests/testutil"
)

func newMessage(t *testing.T, email string) *contact.Message {
	t.Helper()
	m, err := contact.NewMessage("Asha", email, "Wholesale", "Do you ship to Pune?")
	require.NoError(t, err)
	return m
}

func TestGormContactRepository_SQLite(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormContactRepository(db.DB)
	ctx := context.Background()

	m := newMessage(t, "asha@example.com")
	m.ClientIP = "203.0.113.7"
	require.NoError(t, repo.Save(ctx, m))

	found, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, found.ID)
	assert.Equal(t, "Asha", found.Name)
	assert.Equal(t, "203.0.113.7", found.ClientIP)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormContactRepository_CountByEmailSince(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormContactRepository(db.DB)
	ctx := context.Background()
	now := time.Now().UTC()

	old := newMessage(t, "asha@example.com")
	old.CreatedAt = now.Add(-2 * time.Hour)
	require.NoError(t, repo.Save(ctx, old))
	require.NoError(t, repo.Save(ctx, newMessage(t, "asha@example.com")))
	require.NoError(t, repo.Save(ctx, newMessage(t, "ravi@example.com")))

	count, err := repo.CountByEmailSince(ctx, "asha@example.com", now.Add(-time.Hour).Unix())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByEmailSince(ctx, "asha@example.com", now.Add(-3*time.Hour).Unix())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormContactRepository_CountFoldsEmailCase(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormContactRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newMessage(t, "Asha@Example.com")))
	require.NoError(t, repo.Save(ctx, newMessage(t, "ASHA@example.COM")))

	count, err := repo.CountByEmailSince(ctx, "asha@example.com", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormContactRepository_Postgres(t *testing.T) {
	t.Run("save issues an insert", func(t *testing.T) {
		db := testutil.NewMockDB(t)
		repo := NewGormContactRepository(db.DB)

		db.Mock.ExpectExec(`INSERT INTO "contact_messages"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Save(context.Background(), newMessage(t, "asha@example.com")))
		db.ExpectationsWereMet(t)
	})

	t.Run("count filters by email and time", func(t *testing.T) {
		db := testutil.NewMockDB(t)
		repo := NewGormContactRepository(db.DB)

		db.Mock.ExpectQuery(`SELECT count\(\*\) FROM "contact_messages" WHERE email = \$1 AND created_at >= \$2`).
			WithArgs("asha@example.com", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByEmailSince(context.Background(), "asha@example.com", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		db.ExpectationsWereMet(t)
	})

	t.Run("missing message maps to not found", func(t *testing.T) {
		db := testutil.NewMockDB(t)
		repo := NewGormContactRepository(db.DB)

		db.Mock.ExpectQuery(`SELECT \* FROM "contact_messages" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
