package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"safegrowth-backend/app/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func q(sql string) string { return regexp.QuoteMeta(sql) }

func TestUserRepository_FindByAnonymousID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "role", "anonymous_id", "created_at"}).
			AddRow(4, "user", "dev-A", time.Now())
		mock.ExpectQuery(q(`SELECT * FROM "users" WHERE anonymous_id = $1`)).
			WillReturnRows(rows)

		user, err := repo.FindByAnonymousID(ctx, "dev-A")
		require.NoError(t, err)
		assert.Equal(t, uint(4), user.ID)
		require.NotNil(t, user.AnonymousID)
		assert.Equal(t, "dev-A", *user.AnonymousID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(q(`SELECT * FROM "users" WHERE anonymous_id = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByAnonymousID(ctx, "dev-B")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateIfAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	anon := "dev-A"

	t.Run("Inserted", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO "users" .* ON CONFLICT \("anonymous_id"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		u := &model.User{Role: model.RoleUser, AnonymousID: &anon}
		created, err := repo.CreateIfAbsent(ctx, u)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, uint(11), u.ID)
	})

	t.Run("Conflict", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO "users" .* ON CONFLICT \("anonymous_id"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		u := &model.User{Role: model.RoleUser, AnonymousID: &anon}
		created, err := repo.CreateIfAbsent(ctx, u)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Zero(t, u.ID)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_FindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "latitude", "longitude", "title", "category", "status", "created_at"}).
		AddRow(2, 1, 1.5, 2.5, "Lampu mati", "lamp", "verified", now).
		AddRow(1, 1, 1.0, 2.0, "Begal", "danger", "verified", now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT \* FROM "reports" WHERE status = \$1 ORDER BY created_at DESC,id DESC`).
		WithArgs("verified").
		WillReturnRows(rows)

	reports, err := repo.FindAll(context.Background(), model.ReportFilter{Status: "verified"})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, uint(2), reports[0].ID)
	assert.Equal(t, "lamp", reports[0].Category)
	assert.Nil(t, reports[0].ImageURL)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectExec(q(`UPDATE "reports" SET "status"=$1 WHERE id = $2`)).
		WithArgs("rejected", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateStatus(context.Background(), 5, "rejected")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_DeleteWithValidationsOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM "validations" WHERE report_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(q(`DELETE FROM "reports" WHERE id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.DeleteWithValidations(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_CountByRejectsUnknownColumn(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewReportRepository(db)

	_, err := repo.CountBy(context.Background(), "title; DROP TABLE reports")
	assert.Error(t, err)
}

func TestValidationRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewValidationRepository(db)

	mock.ExpectQuery(q(`SELECT count(*) FROM "validations" WHERE report_id = $1 AND tag_type = $2 AND user_identifier = $3`)).
		WithArgs(3, "Ada Polisi", "dev-A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 3, "Ada Polisi", "dev-A")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidationRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewValidationRepository(db)

	mock.ExpectQuery(`INSERT INTO "validations"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &model.Validation{ReportID: 3, TagType: "Ada Polisi", UserIdentifier: "dev-A"})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidationRepository_CountByReportIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewValidationRepository(db)

	rows := sqlmock.NewRows([]string{"report_id", "tag_type", "count"}).
		AddRow(1, "Benar/Valid", 2).
		AddRow(1, "Hoax", 1).
		AddRow(2, "Ada Polisi", 4)
	mock.ExpectQuery(q(`SELECT report_id, tag_type, COUNT(*) AS count FROM "validations" WHERE report_id IN ($1,$2) GROUP BY report_id, tag_type`)).
		WithArgs(1, 2).
		WillReturnRows(rows)

	counts, err := repo.CountByReportIDs(context.Background(), []uint{1, 2})
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, TagCount{ReportID: 2, TagType: "Ada Polisi", Count: 4}, counts[2])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidationRepository_CountByReportIDsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewValidationRepository(db)

	counts, err := repo.CountByReportIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopActivityRepository(t *testing.T) {
	repo := NewActivityRepository(nil)

	assert.False(t, repo.Enabled())
	assert.NoError(t, repo.Record(context.Background(), &model.ReportActivity{ReportID: 1}))
	acts, err := repo.FindByReportID(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, acts)
}
