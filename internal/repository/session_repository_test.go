package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sessionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "school_id", "name", "school_type", "start_date", "end_date", "status", "created_at", "updated_at"})
}

func TestSessionRepositoryFindActiveScoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	rows := sessionRows().AddRow("sess-1", "sch-1", "2025/2026", models.SchoolTypeSecondary,
		time.Now(), time.Now().AddDate(0, 10, 0), models.StatusActive, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, school_id, name, school_type, start_date, end_date, status, created_at, updated_at FROM academic_sessions WHERE school_id = $1 AND status = $2 AND school_type = $3 LIMIT 1")).
		WithArgs("sch-1", models.StatusActive, models.SchoolTypeSecondary).
		WillReturnRows(rows)

	session, err := repo.FindActive(context.Background(), "sch-1", models.SchoolTypeSecondary)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryExistsByNameMiss(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM academic_sessions WHERE school_id = $1 AND name = $2 LIMIT 1")).
		WithArgs("sch-1", "2025/2026").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByName(context.Background(), "sch-1", "", "2025/2026")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryActivateWithTerms(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	session := &models.AcademicSession{
		SchoolID:   "sch-1",
		Name:       "2025/2026",
		SchoolType: models.SchoolTypeSecondary,
		StartDate:  time.Now(),
		EndDate:    time.Now().AddDate(0, 10, 0),
		Status:     models.StatusActive,
	}
	terms := []models.Term{
		{Name: "1st Term", Number: 1, Status: models.StatusActive},
		{Name: "2nd Term", Number: 2, Status: models.StatusDraft},
		{Name: "3rd Term", Number: 3, Status: models.StatusDraft},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE terms SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE academic_sessions SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO academic_sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	for range terms {
		mock.ExpectExec("INSERT INTO terms").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.ActivateWithTerms(context.Background(), session, terms))
	assert.NotEmpty(t, session.ID)
	for _, term := range terms {
		assert.NotEmpty(t, term.ID)
		assert.Equal(t, session.ID, term.SessionID)
		assert.Equal(t, "sch-1", term.SchoolID)
		assert.Equal(t, models.SchoolTypeSecondary, term.SchoolType)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryActivateWithTermsRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE terms SET status").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ActivateWithTerms(context.Background(), &models.AcademicSession{SchoolID: "sch-1"}, nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryCompleteCascade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE terms SET status = $1, updated_at = $2 WHERE session_id = $3")).
		WithArgs(models.StatusCompleted, sqlmock.AnyArg(), "sess-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE academic_sessions SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.StatusCompleted, sqlmock.AnyArg(), "sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CompleteCascade(context.Background(), "sess-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListBySchool(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	rows := sessionRows().
		AddRow("sess-2", "sch-1", "2025/2026", "", time.Now(), time.Now(), models.StatusActive, time.Now(), time.Now()).
		AddRow("sess-1", "sch-1", "2024/2025", "", time.Now(), time.Now(), models.StatusCompleted, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .* FROM academic_sessions WHERE school_id = .* ORDER BY start_date DESC").
		WithArgs("sch-1").
		WillReturnRows(rows)

	sessions, err := repo.ListBySchool(context.Background(), "sch-1", "")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "sess-2", sessions[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
