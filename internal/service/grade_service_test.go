package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

func setupGradeTest(t *testing.T) (GradeService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Grade{}))
	require.NoError(t, db.Exec("DELETE FROM grades").Error)
	require.NoError(t, db.Exec("DELETE FROM students").Error)

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewGradeService(
		repository.NewGradeRepository(db),
		repository.NewStudentRepository(db),
		&recorderStub{},
		validate,
		zerolog.Nop(),
	)
	return svc, db
}

func seedStudentWithGrades(t *testing.T, db *gorm.DB, name, email string, scores ...float64) models.Student {
	t.Helper()
	student := models.Student{Name: name, Email: email, GroupName: "IS-2301", Course: 2}
	require.NoError(t, db.Create(&student).Error)
	for i, score := range scores {
		grade := models.Grade{
			StudentID: student.ID,
			TeacherID: 1,
			Subject:   []string{"Mathematics", "History", "Programming"}[i%3],
			Score:     score,
			Semester:  "2026-1",
		}
		require.NoError(t, db.Create(&grade).Error)
	}
	return student
}

func TestGradeServiceListOwnReturnsOnlyCallersRows(t *testing.T) {
	svc, db := setupGradeTest(t)

	aisha := seedStudentWithGrades(t, db, "Aisha Bekova", "aisha@narxoz.kz", 90, 80)
	other := seedStudentWithGrades(t, db, "Daniyar Omarov", "daniyar@narxoz.kz", 55, 60, 65)

	response, err := svc.ListOwn(context.Background(), "aisha@narxoz.kz", dto.GradeListRequest{})
	require.NoError(t, err)
	require.Len(t, response.Items, 2)
	for _, item := range response.Items {
		require.Equal(t, aisha.ID, item.StudentID)
		require.NotEqual(t, other.ID, item.StudentID)
	}
	require.Equal(t, int64(2), response.Pagination.TotalItems)
}

func TestGradeServiceListOwnIgnoresStudentIDFromRequest(t *testing.T) {
	svc, db := setupGradeTest(t)

	seedStudentWithGrades(t, db, "Aisha Bekova", "aisha@narxoz.kz", 90)
	other := seedStudentWithGrades(t, db, "Daniyar Omarov", "daniyar@narxoz.kz", 55)

	// The filter only ever binds to the session identity. A crafted
	// student_id in the query must not widen the result set.
	response, err := svc.ListOwn(context.Background(), "aisha@narxoz.kz", dto.GradeListRequest{StudentID: other.ID})
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	require.NotEqual(t, other.ID, response.Items[0].StudentID)
}

func TestGradeServiceListOwnComputesGPAOverWholeSet(t *testing.T) {
	svc, db := setupGradeTest(t)

	seedStudentWithGrades(t, db, "Aisha Bekova", "aisha@narxoz.kz", 90, 80, 71)

	response, err := svc.ListOwn(context.Background(), "aisha@narxoz.kz", dto.GradeListRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, response.Items, 2, "pagination still applies to the rows")
	require.InDelta(t, 80.33, response.GPA, 0.001, "average covers all grades, rounded to two decimals")
}

func TestGradeServiceListOwnFiltersBySubject(t *testing.T) {
	svc, db := setupGradeTest(t)

	student := seedStudentWithGrades(t, db, "Aisha Bekova", "aisha@narxoz.kz")
	require.NoError(t, db.Create(&models.Grade{StudentID: student.ID, TeacherID: 1, Subject: "Mathematics", Score: 90, Semester: "2026-1"}).Error)
	require.NoError(t, db.Create(&models.Grade{StudentID: student.ID, TeacherID: 1, Subject: "History", Score: 50, Semester: "2026-1"}).Error)

	response, err := svc.ListOwn(context.Background(), "aisha@narxoz.kz", dto.GradeListRequest{Subject: "Mathematics"})
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	require.Equal(t, "Mathematics", response.Items[0].Subject)
	require.InDelta(t, 90.0, response.GPA, 0.001, "the average respects the same filter as the rows")
}

func TestGradeServiceListOwnUnknownStudent(t *testing.T) {
	svc, _ := setupGradeTest(t)

	_, err := svc.ListOwn(context.Background(), "ghost@narxoz.kz", dto.GradeListRequest{})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGradeServiceListOwnEmptyGradeBook(t *testing.T) {
	svc, db := setupGradeTest(t)

	seedStudentWithGrades(t, db, "Aisha Bekova", "aisha@narxoz.kz")

	response, err := svc.ListOwn(context.Background(), "aisha@narxoz.kz", dto.GradeListRequest{})
	require.NoError(t, err)
	require.Empty(t, response.Items)
	require.Zero(t, response.GPA)
}
