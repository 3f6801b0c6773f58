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

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		reg     *domain.Registration
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			reg:  &domain.Registration{EventID: 1, UserID: 5, CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WithArgs(int64(1), int64(5), time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)).
					WillReturnRows(sqlmock.NewRows([]string{"registration_id"}).AddRow(int64(11)))
			},
		},
		{
			name: "unique violation returns ErrAlreadyExists",
			reg:  &domain.Registration{EventID: 1, UserID: 5, CreatedAt: time.Now()},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyExists,
		},
		{
			name: "db error",
			reg:  &domain.Registration{EventID: 1, UserID: 5, CreatedAt: time.Now()},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_registrations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			err = repo.Create(ctx, tt.reg)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, int64(11), tt.reg.RegistrationID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT registration_id, event_id, user_id, created_at`).
			WithArgs(int64(1), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"registration_id", "event_id", "user_id", "created_at"}).
				AddRow(int64(11), int64(1), int64(5), created))

		reg, err := NewRegistrationRepository(db).GetByEventAndUser(ctx, 1, 5)
		require.NoError(t, err)
		require.Equal(t, int64(11), reg.RegistrationID)
		require.Equal(t, created, reg.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT registration_id, event_id, user_id, created_at`).
			WithArgs(int64(1), int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err = NewRegistrationRepository(db).GetByEventAndUser(ctx, 1, 5)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRegistrationRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT registration_id, event_id, user_id, created_at`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"registration_id", "event_id", "user_id", "created_at"}).
			AddRow(int64(2), int64(9), int64(5), now).
			AddRow(int64(1), int64(3), int64(5), now))

	regs, err := NewRegistrationRepository(db).ListByUserID(ctx, 5)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	require.Equal(t, int64(9), regs[0].EventID)
	require.NoError(t, mock.ExpectationsWereMet())
}
