package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"eventbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testEventID = "65f000000000000000000001"

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		mock     func(mock sqlmock.Sqlmock)
		wantUniq bool
		wantErr  bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings \(id, event_id, email, created_at, updated_at\)`).
					WithArgs(sqlmock.AnyArg(), testEventID, "ada@example.com", fixedTime, fixedTime).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate pair",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_event_id_email_key"})
			},
			wantUniq: true,
			wantErr:  true,
		},
		{
			name: "foreign key violation is not a uniqueness error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(&pq.Error{Code: "23503", Constraint: "bookings_event_id_fkey"})
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
			repo := NewBookingRepository(db)
			b := &domain.Booking{EventID: testEventID, Email: "ada@example.com", CreatedAt: fixedTime, UpdatedAt: fixedTime}
			err = repo.Create(ctx, b)
			var uniq *domain.UniqueConstraintError
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.wantUniq, errors.As(err, &uniq))
				if tt.wantUniq {
					require.Equal(t, "bookings_event_id_email_key", uniq.Index)
				}
				return
			}
			require.NoError(t, err)
			require.True(t, primitive.IsValidObjectID(b.ID))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := primitive.NewObjectID().Hex()
	mock.ExpectExec(`UPDATE bookings SET event_id = \$2, email = \$3, updated_at = \$4`).
		WithArgs(id, testEventID, "ada@example.com", fixedTime).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE bookings SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingRepository(db)
	b := &domain.Booking{ID: id, EventID: testEventID, Email: "ada@example.com", UpdatedAt: fixedTime}
	require.NoError(t, repo.Update(context.Background(), b))
	require.ErrorIs(t, repo.Update(context.Background(), b), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "event_id", "email", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT id, event_id, email, created_at, updated_at\s+FROM bookings\s+WHERE id = \$1`).
		WithArgs("65f0000000000000000000aa").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("65f0000000000000000000aa", testEventID, "ada@example.com", fixedTime, fixedTime))
	mock.ExpectQuery(`FROM bookings`).
		WithArgs("65f0000000000000000000bb").
		WillReturnError(sql.ErrNoRows)

	repo := NewBookingRepository(db)
	got, err := repo.GetByID(context.Background(), "65f0000000000000000000aa")
	require.NoError(t, err)
	require.Equal(t, testEventID, got.EventID)
	require.Equal(t, "ada@example.com", got.Email)

	_, err = repo.GetByID(context.Background(), "65f0000000000000000000bb")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "event_id", "email", "created_at", "updated_at"}
	mock.ExpectQuery(`WHERE event_id = \$1\s+ORDER BY created_at ASC`).
		WithArgs(testEventID).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("65f0000000000000000000aa", testEventID, "ada@example.com", fixedTime, fixedTime).
			AddRow("65f0000000000000000000bb", testEventID, "grace@example.com", fixedTime, fixedTime))

	repo := NewBookingRepository(db)
	got, err := repo.ListByEventID(context.Background(), testEventID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "grace@example.com", got[1].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS events`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS bookings_event_id_idx`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_BookingsHaveNoForeignKey(t *testing.T) {
	for _, stmt := range schema {
		assert.NotContains(t, strings.ToUpper(stmt), "REFERENCES")
		assert.NotContains(t, strings.ToUpper(stmt), "FOREIGN KEY")
	}
	assert.Contains(t, schema[1], "CONSTRAINT bookings_event_id_email_key UNIQUE (event_id, email)")
}
