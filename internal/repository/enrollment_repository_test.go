package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

func enrollmentDetailRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "school_id", "term_id", "class_arm_id", "legacy_class_id",
		"class_level", "academic_year", "active", "debt_balance", "created_at", "updated_at", "deactivated_at",
		"student_name", "student_email", "arm_level_id", "arm_level_type", "arm_name",
	})
}

func TestEnrollmentRepositoryListForMigration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	rows := enrollmentDetailRows().
		AddRow("e1", "s1", "sch-1", "term-1", "arm-1", nil, "JSS 1", "2025/2026", true, 0.0, now, now, nil,
			"Ada Obi", "ada@example.com", "l1", models.SchoolTypeSecondary, "JSS 1 A").
		AddRow("e2", "s2", "sch-1", nil, nil, nil, "JSS 2", "2025/2026", true, 120.0, now, now, nil,
			"Ben Eze", "ben@example.com", nil, "", nil)
	mock.ExpectQuery(`SELECT .* FROM enrollments e.*JOIN members m.*LEFT JOIN class_arms a.*WHERE e\.school_id = .* AND e\.active = TRUE AND \(e\.term_id = .* OR e\.term_id IS NULL\)`).
		WithArgs("sch-1", "term-1").
		WillReturnRows(rows)

	enrollments, err := repo.ListForMigration(context.Background(), "sch-1", "term-1")
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, "Ada Obi", enrollments[0].StudentName)
	require.NotNil(t, enrollments[0].ArmLevelID)
	assert.Equal(t, "l1", *enrollments[0].ArmLevelID)
	assert.Nil(t, enrollments[1].TermID)
	assert.Equal(t, 120.0, enrollments[1].DebtBalance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListForMigrationUnlinkedOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(`WHERE e\.school_id = .* AND e\.active = TRUE AND e\.term_id IS NULL`).
		WithArgs("sch-1").
		WillReturnRows(enrollmentDetailRows())

	enrollments, err := repo.ListForMigration(context.Background(), "sch-1", "")
	require.NoError(t, err)
	assert.Empty(t, enrollments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryExistsForStudentTerm(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM enrollments WHERE student_id = .* AND term_id = .* LIMIT 1`).
		WithArgs("s1", "term-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsForStudentTerm(context.Background(), "s1", "term-1")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryApplyMigration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	termID := "term-new"
	plan := models.MigrationPlan{Entries: []models.MigrationEntry{
		{DeactivateID: "e1", Create: &models.Enrollment{
			StudentID: "s1", SchoolID: "sch-1", TermID: &termID, ClassLevel: "JSS 2",
			AcademicYear: "2025/2026", Active: true,
		}},
		{DeactivateID: "e2"}, // graduation: deactivate only
	}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE enrollments SET active = FALSE").
		WithArgs(sqlmock.AnyArg(), "e1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO enrollments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE enrollments SET active = FALSE").
		WithArgs(sqlmock.AnyArg(), "e2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ApplyMigration(context.Background(), plan))
	assert.NotEmpty(t, plan.Entries[0].Create.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryApplyMigrationEmptyPlan(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	// no expectations: an empty plan must not touch the database
	require.NoError(t, repo.ApplyMigration(context.Background(), models.MigrationPlan{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryApplyMigrationRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	plan := models.MigrationPlan{Entries: []models.MigrationEntry{{DeactivateID: "e1"}}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE enrollments SET active = FALSE").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	require.Error(t, repo.ApplyMigration(context.Background(), plan))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPrefixColumns(t *testing.T) {
	assert.Equal(t, "e.id, e.name", prefixColumns("e", "id, name"))
}
