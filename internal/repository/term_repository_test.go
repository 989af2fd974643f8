package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

func termRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "session_id", "school_id", "name", "number", "school_type",
		"start_date", "end_date", "half_term_start", "half_term_end", "status", "created_at", "updated_at"})
}

func addTermRow(rows *sqlmock.Rows, id, sessionID, name string, number int, status models.RecordStatus) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, sessionID, "sch-1", name, number, models.SchoolTypeSecondary,
		now, now.AddDate(0, 3, 0), nil, nil, status, now, now)
}

func TestTermRepositoryFindActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	rows := addTermRow(termRows(), "term-1", "sess-1", "1st Term", 1, models.StatusActive)
	mock.ExpectQuery("SELECT .* FROM terms WHERE school_id = .* AND status = .* LIMIT 1").
		WithArgs("sch-1", models.StatusActive).
		WillReturnRows(rows)

	term, err := repo.FindActive(context.Background(), "sch-1", "")
	require.NoError(t, err)
	assert.Equal(t, "term-1", term.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryFindLatestInScope(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	rows := addTermRow(termRows(), "term-3", "sess-1", "3rd Term", 3, models.StatusCompleted)
	mock.ExpectQuery("SELECT .* FROM .*JOIN academic_sessions.*ORDER BY s.start_date DESC, t.number DESC LIMIT 1").
		WithArgs("sch-1", models.StatusActive, models.StatusCompleted, "exclude-me").
		WillReturnRows(rows)

	term, err := repo.FindLatestInScope(context.Background(), "sch-1", "", "exclude-me")
	require.NoError(t, err)
	assert.Equal(t, "term-3", term.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryFindLatestInScopeEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	mock.ExpectQuery("SELECT .* FROM .*JOIN academic_sessions").
		WillReturnRows(termRows())

	_, err := repo.FindLatestInScope(context.Background(), "sch-1", "", "x")
	assert.Equal(t, sql.ErrNoRows, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryExistsByNumber(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM terms WHERE session_id = $1 AND number = $2 LIMIT 1")).
		WithArgs("sess-1", 2).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByNumber(context.Background(), "sess-1", 2)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryActivateExclusive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	term := &models.Term{
		ID:         "term-2",
		SessionID:  "sess-1",
		SchoolID:   "sch-1",
		SchoolType: models.SchoolTypeSecondary,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE terms SET status = $1, updated_at = $2 WHERE school_id = $3 AND status = $4 AND id <> $5 AND school_type = $6")).
		WithArgs(models.StatusCompleted, sqlmock.AnyArg(), "sch-1", models.StatusActive, "term-2", models.SchoolTypeSecondary).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE terms SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.StatusActive, sqlmock.AnyArg(), "term-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE academic_sessions SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.StatusActive, sqlmock.AnyArg(), "sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ActivateExclusive(context.Background(), term))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepositoryListBySession(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTermRepository(db)

	rows := termRows()
	addTermRow(rows, "term-1", "sess-1", "1st Term", 1, models.StatusCompleted)
	addTermRow(rows, "term-2", "sess-1", "2nd Term", 2, models.StatusActive)
	mock.ExpectQuery("SELECT .* FROM terms WHERE session_id = .* ORDER BY number ASC").
		WithArgs("sess-1").
		WillReturnRows(rows)

	terms, err := repo.ListBySession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, 1, terms[0].Number)
	require.NoError(t, mock.ExpectationsWereMet())
}
