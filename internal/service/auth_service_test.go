package service

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

type recordedAuth struct {
	email     string
	role      string
	succeeded bool
	actorID   *uint
}

type recordedMutation struct {
	actor    AuditActor
	kind     string
	table    string
	recordID *uint
	before   interface{}
	after    interface{}
}

// recorderStub captures audit dispatches synchronously so service tests can
// assert on them without draining a queue.
type recorderStub struct {
	mu        sync.Mutex
	auths     []recordedAuth
	logouts   []uint
	mutations []recordedMutation
	denials   []string
	err       error
}

func (r *recorderStub) RecordAuthentication(ctx context.Context, email, role string, succeeded bool, actorID *uint, meta RequestMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auths = append(r.auths, recordedAuth{email: email, role: role, succeeded: succeeded, actorID: actorID})
	return r.err
}

func (r *recorderStub) RecordLogout(ctx context.Context, actorID uint, email, role string, meta RequestMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logouts = append(r.logouts, actorID)
	return r.err
}

func (r *recorderStub) RecordMutation(ctx context.Context, actor AuditActor, kind, table string, recordID *uint, before, after interface{}, meta RequestMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, recordedMutation{actor: actor, kind: kind, table: table, recordID: recordID, before: before, after: after})
	return r.err
}

func (r *recorderStub) RecordUnauthorizedAccess(ctx context.Context, actor AuditActor, resource string, meta RequestMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.denials = append(r.denials, resource)
	return r.err
}

func (r *recorderStub) Close() {}

func setupAuthTest(t *testing.T) (AuthService, *recorderStub, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	require.NoError(t, db.Exec("DELETE FROM users").Error)

	recorder := &recorderStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(repository.NewUserRepository(db), recorder, validate, "test-secret", zerolog.Nop())
	return svc, recorder, db
}

func TestAuthServiceRegisterIssuesSessionAndRecordsLogin(t *testing.T) {
	svc, recorder, _ := setupAuthTest(t)

	response, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Aida Bekova",
		Email:    "Aida.Bekova@narxoz.kz",
		Password: "correct-horse",
		Role:     models.RoleStudent,
	}, RequestMeta{IP: "10.0.0.9"})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)
	require.Equal(t, "aida.bekova@narxoz.kz", response.User.Email)

	token, err := jwt.Parse(response.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, models.RoleStudent, claims["role"])

	require.Len(t, recorder.auths, 1)
	require.True(t, recorder.auths[0].succeeded)
	require.Equal(t, response.User.ID, *recorder.auths[0].actorID)
}

func TestAuthServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, recorder, _ := setupAuthTest(t)

	req := dto.RegisterRequest{Name: "Aida Bekova", Email: "aida@narxoz.kz", Password: "correct-horse", Role: models.RoleStudent}
	_, err := svc.Register(context.Background(), req, RequestMeta{})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req, RequestMeta{})
	require.ErrorIs(t, err, ErrEmailTaken)

	require.Len(t, recorder.auths, 2)
	failed := recorder.auths[1]
	require.False(t, failed.succeeded)
	require.Nil(t, failed.actorID)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, recorder, _ := setupAuthTest(t)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Aida Bekova", Email: "aida@narxoz.kz", Password: "correct-horse", Role: models.RoleStudent,
	}, RequestMeta{})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "aida@narxoz.kz", Password: "wrong"}, RequestMeta{})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	failed := recorder.auths[len(recorder.auths)-1]
	require.False(t, failed.succeeded)
	require.Nil(t, failed.actorID)
	require.Equal(t, models.RoleUnknown, failed.role, "a failed attempt proves nothing about the account's role")
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, recorder, _ := setupAuthTest(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@narxoz.kz", Password: "whatever"}, RequestMeta{})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Len(t, recorder.auths, 1)
	require.False(t, recorder.auths[0].succeeded)
	require.Equal(t, "ghost@narxoz.kz", recorder.auths[0].email)
	require.Nil(t, recorder.auths[0].actorID)
}

func TestAuthServiceLoginSucceedsAndProceedsWhenAuditQueueIsFull(t *testing.T) {
	svc, recorder, _ := setupAuthTest(t)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Aida Bekova", Email: "aida@narxoz.kz", Password: "correct-horse", Role: models.RoleStudent,
	}, RequestMeta{})
	require.NoError(t, err)

	recorder.err = ErrAuditQueueFull
	response, err := svc.Login(context.Background(), dto.LoginRequest{Email: "aida@narxoz.kz", Password: "correct-horse"}, RequestMeta{})
	require.NoError(t, err, "a busy audit queue must never block sign-in")
	require.NotEmpty(t, response.Token)
}

func TestAuthServiceLogoutRecordsEvent(t *testing.T) {
	svc, recorder, _ := setupAuthTest(t)

	require.NoError(t, svc.Logout(context.Background(), 5, "aida@narxoz.kz", models.RoleStudent, RequestMeta{}))
	require.Equal(t, []uint{5}, recorder.logouts)
}
