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

func setupLibraryTest(t *testing.T) (LibraryService, *recorderStub) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LibraryBook{}))
	require.NoError(t, db.Exec("DELETE FROM library_books").Error)

	recorder := &recorderStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewLibraryService(repository.NewLibraryBookRepository(db), recorder, validate, zerolog.Nop())
	return svc, recorder
}

func libraryTestActor() AuditActor {
	return AuditActor{ID: ptrUintValue(1), Email: "admin@narxoz.kz", Role: models.RoleAdmin}
}

func TestLibraryServiceCreateRecordsMutation(t *testing.T) {
	svc, recorder := setupLibraryTest(t)

	response, err := svc.Create(context.Background(), libraryTestActor(), RequestMeta{}, dto.LibraryBookCreateRequest{
		Title:    "The Go Programming Language",
		Author:   "Donovan and Kernighan",
		Category: "programming",
		Pages:    380,
	})
	require.NoError(t, err)
	require.True(t, response.Available, "new catalog entries are lendable by default")

	require.Len(t, recorder.mutations, 1)
	mutation := recorder.mutations[0]
	require.Equal(t, models.AuditActionCreate, mutation.kind)
	require.Equal(t, "library_books", mutation.table)
	require.Equal(t, response.ID, *mutation.recordID)
	require.Nil(t, mutation.before)
	require.NotNil(t, mutation.after)
}

func TestLibraryServiceUpdateCapturesBeforeAndAfter(t *testing.T) {
	svc, recorder := setupLibraryTest(t)

	created, err := svc.Create(context.Background(), libraryTestActor(), RequestMeta{}, dto.LibraryBookCreateRequest{
		Title:  "Clean Architecture",
		Author: "Robert Martin",
	})
	require.NoError(t, err)

	unavailable := false
	updated, err := svc.Update(context.Background(), libraryTestActor(), RequestMeta{}, created.ID, dto.LibraryBookUpdateRequest{Available: &unavailable})
	require.NoError(t, err)
	require.False(t, updated.Available)

	require.Len(t, recorder.mutations, 2)
	mutation := recorder.mutations[1]
	require.Equal(t, models.AuditActionUpdate, mutation.kind)
	require.Equal(t, "library_books", mutation.table)
	require.True(t, mutation.before.(models.LibraryBook).Available)
	require.False(t, mutation.after.(models.LibraryBook).Available)
}

func TestLibraryServiceDeleteRecordsFinalState(t *testing.T) {
	svc, recorder := setupLibraryTest(t)

	created, err := svc.Create(context.Background(), libraryTestActor(), RequestMeta{}, dto.LibraryBookCreateRequest{
		Title:  "Clean Architecture",
		Author: "Robert Martin",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), libraryTestActor(), RequestMeta{}, created.ID))

	require.Len(t, recorder.mutations, 2)
	mutation := recorder.mutations[1]
	require.Equal(t, models.AuditActionDelete, mutation.kind)
	require.Nil(t, mutation.after)
	require.Equal(t, "Clean Architecture", mutation.before.(models.LibraryBook).Title)
}

func TestLibraryServiceCreateValidatesBeforeStore(t *testing.T) {
	svc, recorder := setupLibraryTest(t)

	_, err := svc.Create(context.Background(), libraryTestActor(), RequestMeta{}, dto.LibraryBookCreateRequest{Title: "X"})
	require.Error(t, err)
	require.Empty(t, recorder.mutations, "nothing was stored, so nothing is audited")
}

func TestLibraryServiceListFilters(t *testing.T) {
	svc, _ := setupLibraryTest(t)

	seed := []dto.LibraryBookCreateRequest{
		{Title: "The Go Programming Language", Author: "Donovan and Kernighan", Category: "programming"},
		{Title: "A Short History of Kazakhstan", Author: "Kan", Category: "history"},
		{Title: "Go in Action", Author: "Kennedy", Category: "programming"},
	}
	for _, req := range seed {
		_, err := svc.Create(context.Background(), libraryTestActor(), RequestMeta{}, req)
		require.NoError(t, err)
	}

	unavailable := false
	first, err := svc.List(context.Background(), dto.LibraryBookListRequest{Search: "go in action"})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	_, err = svc.Update(context.Background(), libraryTestActor(), RequestMeta{}, first.Items[0].ID, dto.LibraryBookUpdateRequest{Available: &unavailable})
	require.NoError(t, err)

	byCategory, err := svc.List(context.Background(), dto.LibraryBookListRequest{Category: "programming"})
	require.NoError(t, err)
	require.Len(t, byCategory.Items, 2)

	lendable, err := svc.List(context.Background(), dto.LibraryBookListRequest{Category: "programming", AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, lendable.Items, 1)
	require.Equal(t, "The Go Programming Language", lendable.Items[0].Title)

	bySearch, err := svc.List(context.Background(), dto.LibraryBookListRequest{Search: "kennedy"})
	require.NoError(t, err)
	require.Len(t, bySearch.Items, 1)
	require.Equal(t, "Go in Action", bySearch.Items[0].Title)
}
