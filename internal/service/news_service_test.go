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

func setupNewsTest(t *testing.T) (NewsService, *recorderStub) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NewsPost{}))
	require.NoError(t, db.Exec("DELETE FROM news").Error)

	recorder := &recorderStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewNewsService(repository.NewNewsRepository(db), recorder, validate, zerolog.Nop())
	return svc, recorder
}

func newsTestActor() AuditActor {
	return AuditActor{ID: ptrUintValue(3), Email: "editor@narxoz.kz", Role: models.RoleTeacher}
}

func TestNewsServiceCreateSanitizesBodyAndRecordsMutation(t *testing.T) {
	svc, recorder := setupNewsTest(t)

	response, err := svc.Create(context.Background(), newsTestActor(), RequestMeta{}, 3, dto.NewsCreateRequest{
		Title: "Exam week",
		Body:  `<p>Schedule posted.</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.Equal(t, "<p>Schedule posted.</p>", response.Body)
	require.True(t, response.Published)

	require.Len(t, recorder.mutations, 1)
	mutation := recorder.mutations[0]
	require.Equal(t, models.AuditActionCreate, mutation.kind)
	require.Equal(t, "news", mutation.table)
	require.Equal(t, response.ID, *mutation.recordID)
	require.Nil(t, mutation.before)
	require.NotNil(t, mutation.after)
}

func TestNewsServiceCreateRejectsBodyThatSanitizesToNothing(t *testing.T) {
	svc, recorder := setupNewsTest(t)

	_, err := svc.Create(context.Background(), newsTestActor(), RequestMeta{}, 3, dto.NewsCreateRequest{
		Title: "Empty",
		Body:  `<script>alert("x")</script>`,
	})
	require.Error(t, err)
	require.Empty(t, recorder.mutations, "nothing was stored, so nothing is audited")
}

func TestNewsServiceUpdateCapturesBeforeAndAfter(t *testing.T) {
	svc, recorder := setupNewsTest(t)

	created, err := svc.Create(context.Background(), newsTestActor(), RequestMeta{}, 3, dto.NewsCreateRequest{
		Title: "Exam week",
		Body:  "<p>Schedule posted.</p>",
	})
	require.NoError(t, err)

	newTitle := "Exam week moved"
	updated, err := svc.Update(context.Background(), newsTestActor(), RequestMeta{}, created.ID, dto.NewsUpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, newTitle, updated.Title)

	require.Len(t, recorder.mutations, 2)
	mutation := recorder.mutations[1]
	require.Equal(t, models.AuditActionUpdate, mutation.kind)

	before := mutation.before.(models.NewsPost)
	after := mutation.after.(models.NewsPost)
	require.Equal(t, "Exam week", before.Title)
	require.Equal(t, newTitle, after.Title)
}

func TestNewsServiceDeleteRecordsFinalState(t *testing.T) {
	svc, recorder := setupNewsTest(t)

	created, err := svc.Create(context.Background(), newsTestActor(), RequestMeta{}, 3, dto.NewsCreateRequest{
		Title: "Exam week",
		Body:  "<p>Schedule posted.</p>",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), newsTestActor(), RequestMeta{}, created.ID))

	require.Len(t, recorder.mutations, 2)
	mutation := recorder.mutations[1]
	require.Equal(t, models.AuditActionDelete, mutation.kind)
	require.Nil(t, mutation.after)
	require.Equal(t, "Exam week", mutation.before.(models.NewsPost).Title)

	_, err = svc.Update(context.Background(), newsTestActor(), RequestMeta{}, created.ID, dto.NewsUpdateRequest{})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
