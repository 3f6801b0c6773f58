package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func TestUserRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT user_id, username, password, role, created_at`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password", "role", "created_at"}).
				AddRow(int64(5), "alice", "$2a$10$hash", domain.RoleStudent, time.Now()))

		u, err := NewUserRepository(db).GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, int64(5), u.UserID)
		require.Equal(t, domain.RoleStudent, u.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT user_id, username, password, role, created_at`).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		_, err = NewUserRepository(db).GetByUsername(ctx, "nobody")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		u := &domain.User{Username: "alice", Password: "hash", Role: domain.RoleStudent, CreatedAt: time.Now()}
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("alice", "hash", domain.RoleStudent, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(5)))

		require.NoError(t, NewUserRepository(db).Create(ctx, u))
		require.Equal(t, int64(5), u.UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username returns ErrAlreadyExists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		u := &domain.User{Username: "alice", Password: "hash", Role: domain.RoleStudent, CreatedAt: time.Now()}
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		require.ErrorIs(t, NewUserRepository(db).Create(ctx, u), domain.ErrAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
