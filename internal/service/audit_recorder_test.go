package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

type memoryAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditLog
	fail    error
}

func (m *memoryAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryAuditRepo) List(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLog(nil), m.entries...), int64(len(m.entries)), nil
}

func (m *memoryAuditRepo) all() []models.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLog(nil), m.entries...)
}

// blockingAuditRepo parks every insert until release is closed, so tests can
// fill the recorder queue deterministically.
type blockingAuditRepo struct {
	memoryAuditRepo
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.memoryAuditRepo.Create(ctx, entry)
}

func TestAuditRecorderAuthenticationOutcomes(t *testing.T) {
	repo := &memoryAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, 8, zerolog.Nop())

	id := uint(42)
	meta := RequestMeta{IP: "10.0.0.5", UserAgent: "go-test"}

	require.NoError(t, recorder.RecordAuthentication(context.Background(), "admin@narxoz.kz", models.RoleAdmin, true, &id, meta))
	require.NoError(t, recorder.RecordAuthentication(context.Background(), "ghost@narxoz.kz", models.RoleAdmin, false, &id, meta))
	recorder.Close()

	entries := repo.all()
	require.Len(t, entries, 2)

	success := entries[0]
	require.Equal(t, models.AuditActionLogin, success.Action)
	require.Equal(t, uint(42), *success.ActorID)
	require.Equal(t, models.RoleAdmin, success.ActorRole)
	require.Equal(t, "10.0.0.5", success.IPAddress)

	// Failed attempts never reference an account, even when the caller has
	// one at hand; the email alone identifies the attempt.
	failure := entries[1]
	require.Equal(t, models.AuditActionAccessDenied, failure.Action)
	require.Nil(t, failure.ActorID)
	require.Equal(t, "ghost@narxoz.kz", failure.ActorEmail)
}

func TestAuditRecorderNormalizesUnknownRoles(t *testing.T) {
	repo := &memoryAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, 8, zerolog.Nop())

	require.NoError(t, recorder.RecordAuthentication(context.Background(), "who@narxoz.kz", "superuser", false, nil, RequestMeta{}))
	recorder.Close()

	entries := repo.all()
	require.Len(t, entries, 1)
	require.Equal(t, models.RoleUnknown, entries[0].ActorRole)
}

func TestAuditRecorderMutationSnapshots(t *testing.T) {
	repo := &memoryAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, 8, zerolog.Nop())

	actor := AuditActor{ID: ptrUintValue(1), Email: "admin@narxoz.kz", Role: models.RoleAdmin}
	recordID := uint(7)
	before := map[string]string{"status": "draft"}
	after := map[string]string{"status": "published"}

	require.NoError(t, recorder.RecordMutation(context.Background(), actor, models.AuditActionCreate, "news", &recordID, nil, after, RequestMeta{}))
	require.NoError(t, recorder.RecordMutation(context.Background(), actor, models.AuditActionUpdate, "news", &recordID, before, after, RequestMeta{}))
	require.NoError(t, recorder.RecordMutation(context.Background(), actor, models.AuditActionDelete, "news", &recordID, before, nil, RequestMeta{}))
	recorder.Close()

	entries := repo.all()
	require.Len(t, entries, 3)

	require.Nil(t, entries[0].OldData, "create carries no previous state")
	require.NotNil(t, entries[0].NewData)

	require.NotNil(t, entries[1].OldData)
	require.NotNil(t, entries[1].NewData)

	require.NotNil(t, entries[2].OldData)
	require.Nil(t, entries[2].NewData, "delete carries no new state")
}

func TestAuditRecorderRejectsUnknownMutationKind(t *testing.T) {
	repo := &memoryAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, 8, zerolog.Nop())
	defer recorder.Close()

	err := recorder.RecordMutation(context.Background(), AuditActor{}, "truncate", "news", nil, nil, nil, RequestMeta{})
	require.ErrorIs(t, err, ErrInvalidMutation)
}

func TestAuditRecorderReportsQueueOverflow(t *testing.T) {
	repo := &blockingAuditRepo{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	recorder := NewAuditRecorder(repo, nil, 1, zerolog.Nop())

	// First event is picked up by the worker and blocks inside the store.
	require.NoError(t, recorder.RecordLogout(context.Background(), 1, "a@narxoz.kz", models.RoleAdmin, RequestMeta{}))
	<-repo.started

	// Second event fills the queue; the third has nowhere to go.
	require.NoError(t, recorder.RecordLogout(context.Background(), 2, "b@narxoz.kz", models.RoleAdmin, RequestMeta{}))
	err := recorder.RecordLogout(context.Background(), 3, "c@narxoz.kz", models.RoleAdmin, RequestMeta{})
	require.ErrorIs(t, err, ErrAuditQueueFull)

	close(repo.release)
	recorder.Close()
	require.Len(t, repo.all(), 2)
}

func TestAuditRecorderAbsorbsPersistFailures(t *testing.T) {
	repo := &memoryAuditRepo{fail: errors.New("connection refused")}
	recorder := NewAuditRecorder(repo, nil, 8, zerolog.Nop())

	// Queuing succeeds even when the store is down; the failure is only
	// visible in logs and metrics.
	require.NoError(t, recorder.RecordLogout(context.Background(), 1, "admin@narxoz.kz", models.RoleAdmin, RequestMeta{}))
	recorder.Close()

	require.Empty(t, repo.all())
}

func TestAuditRecorderCloseFlushesQueue(t *testing.T) {
	repo := &memoryAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, 32, zerolog.Nop())

	for i := 0; i < 10; i++ {
		require.NoError(t, recorder.RecordLogout(context.Background(), uint(i+1), "admin@narxoz.kz", models.RoleAdmin, RequestMeta{}))
	}
	recorder.Close()

	require.Len(t, repo.all(), 10)
}

func TestAuditRecorderRefusesEventsAfterClose(t *testing.T) {
	repo := &memoryAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, 8, zerolog.Nop())

	require.NoError(t, recorder.RecordLogout(context.Background(), 1, "admin@narxoz.kz", models.RoleAdmin, RequestMeta{}))
	recorder.Close()

	// A handler finishing a request while the server drains must get an
	// error back, not a send on a closed channel.
	err := recorder.RecordLogout(context.Background(), 2, "admin@narxoz.kz", models.RoleAdmin, RequestMeta{})
	require.ErrorIs(t, err, ErrRecorderClosed)

	err = recorder.RecordAuthentication(context.Background(), "admin@narxoz.kz", models.RoleAdmin, true, nil, RequestMeta{})
	require.ErrorIs(t, err, ErrRecorderClosed)

	require.Len(t, repo.all(), 1)
}

func TestAuditRecorderCloseIsIdempotent(t *testing.T) {
	repo := &memoryAuditRepo{}
	recorder := NewAuditRecorder(repo, nil, 8, zerolog.Nop())

	require.NoError(t, recorder.RecordLogout(context.Background(), 1, "admin@narxoz.kz", models.RoleAdmin, RequestMeta{}))
	recorder.Close()
	recorder.Close()

	require.Len(t, repo.all(), 1)
}

func ptrUintValue(v uint) *uint {
	return &v
}
