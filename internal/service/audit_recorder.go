package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/observability"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

const defaultAuditQueueSize = 256

// persistTimeout bounds a single audit insert once it leaves the queue.
const persistTimeout = 5 * time.Second

// AuditActor identifies who triggered an event. It is always passed in
// explicitly; the recorder never reads ambient session state.
type AuditActor struct {
	ID    *uint
	Email string
	Role  string
}

// RequestMeta carries best-effort client information stamped onto events.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuditRecorder translates business events into audit trail rows. All
// operations are fire-and-forget: a returned error means the event could
// not even be queued (caller bug or shutdown), never that the store write
// failed. Store failures are counted and logged, and the triggering
// business operation proceeds regardless.
type AuditRecorder interface {
	RecordAuthentication(ctx context.Context, email, role string, succeeded bool, actorID *uint, meta RequestMeta) error
	RecordLogout(ctx context.Context, actorID uint, email, role string, meta RequestMeta) error
	RecordMutation(ctx context.Context, actor AuditActor, kind, table string, recordID *uint, before, after interface{}, meta RequestMeta) error
	RecordUnauthorizedAccess(ctx context.Context, actor AuditActor, resource string, meta RequestMeta) error
	Close()
}

type auditRecorder struct {
	repo        repository.AuditLogRepository
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	tracer      trace.Tracer
	queue       chan models.AuditLog
	done        chan struct{}

	// mu guards closed so Close can wait out in-flight enqueues before
	// closing the queue channel.
	mu     sync.RWMutex
	closed bool
}

// NewAuditRecorder constructs the recorder and starts its drain worker.
// natsConn may be nil; events are then only persisted. Close must be called
// on shutdown to flush queued events.
func NewAuditRecorder(repo repository.AuditLogRepository, natsConn *nats.Conn, queueSize int, logger zerolog.Logger) AuditRecorder {
	if queueSize <= 0 {
		queueSize = defaultAuditQueueSize
	}

	r := &auditRecorder{
		repo:        repo,
		nats:        natsConn,
		natsSubject: "audit.events",
		logger:      logger.With().Str("component", "audit_recorder").Logger(),
		tracer:      otel.Tracer("github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service/audit"),
		queue:       make(chan models.AuditLog, queueSize),
		done:        make(chan struct{}),
	}

	go r.drain()

	return r
}

func (r *auditRecorder) RecordAuthentication(ctx context.Context, email, role string, succeeded bool, actorID *uint, meta RequestMeta) error {
	action := models.AuditActionLogin
	if !succeeded {
		action = models.AuditActionAccessDenied
		actorID = nil
	}

	return r.enqueue(models.AuditLog{
		ActorID:    actorID,
		ActorEmail: email,
		ActorRole:  normalizeAuditRole(role),
		Action:     action,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})
}

func (r *auditRecorder) RecordLogout(ctx context.Context, actorID uint, email, role string, meta RequestMeta) error {
	return r.enqueue(models.AuditLog{
		ActorID:    &actorID,
		ActorEmail: email,
		ActorRole:  normalizeAuditRole(role),
		Action:     models.AuditActionLogout,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})
}

func (r *auditRecorder) RecordMutation(ctx context.Context, actor AuditActor, kind, table string, recordID *uint, before, after interface{}, meta RequestMeta) error {
	switch kind {
	case models.AuditActionCreate, models.AuditActionUpdate, models.AuditActionDelete:
	default:
		return ErrInvalidMutation
	}

	entry := models.AuditLog{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		ActorRole:  normalizeAuditRole(actor.Role),
		Action:     kind,
		Table:      &table,
		RecordID:   recordID,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}

	// Snapshots follow the taxonomy: no "before" on create, no "after" on
	// delete.
	if kind != models.AuditActionCreate {
		entry.OldData = marshalSnapshot(before, r.logger)
	}
	if kind != models.AuditActionDelete {
		entry.NewData = marshalSnapshot(after, r.logger)
	}

	return r.enqueue(entry)
}

func (r *auditRecorder) RecordUnauthorizedAccess(ctx context.Context, actor AuditActor, resource string, meta RequestMeta) error {
	return r.enqueue(models.AuditLog{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		ActorRole:  normalizeAuditRole(actor.Role),
		Action:     models.AuditActionAccessDenied,
		Table:      &resource,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})
}

// Close stops accepting events and blocks until the queue is flushed.
// Safe against Record* calls racing shutdown; late events are refused
// with ErrRecorderClosed instead of panicking on a closed channel.
func (r *auditRecorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.queue)
	<-r.done
}

func (r *auditRecorder) enqueue(entry models.AuditLog) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return ErrRecorderClosed
	}

	select {
	case r.queue <- entry:
		observability.AuditQueueDepth().Set(float64(len(r.queue)))
		return nil
	default:
		observability.AuditEventsDropped().Inc()
		r.logger.Warn().
			Str("action", entry.Action).
			Str("actor_email", entry.ActorEmail).
			Msg("audit queue full, event dropped")
		return ErrAuditQueueFull
	}
}

func (r *auditRecorder) drain() {
	defer close(r.done)

	for entry := range r.queue {
		r.persist(entry)
		observability.AuditQueueDepth().Set(float64(len(r.queue)))
	}
}

func (r *auditRecorder) persist(entry models.AuditLog) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "audit.persist", trace.WithAttributes(
		attribute.String("audit.action", entry.Action),
		attribute.String("audit.actor_role", entry.ActorRole),
	))
	defer span.End()

	if err := r.repo.Create(ctx, &entry); err != nil {
		observability.AuditPersistFailures().Inc()
		r.logger.Error().Err(err).
			Str("action", entry.Action).
			Str("actor_email", entry.ActorEmail).
			Msg("failed to persist audit event")
		return
	}

	observability.AuditEventsRecorded().WithLabelValues(entry.Action).Inc()
	r.broadcast(entry)
}

// broadcast mirrors persisted events onto NATS for operational consumers.
// Best effort: a publish failure is logged and dropped.
func (r *auditRecorder) broadcast(entry models.AuditLog) {
	if r.nats == nil {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to encode audit event for broadcast")
		return
	}

	if err := r.nats.Publish(r.natsSubject, payload); err != nil {
		r.logger.Warn().Err(err).Msg("failed to broadcast audit event")
	}
}

func marshalSnapshot(value interface{}, logger zerolog.Logger) datatypes.JSON {
	if value == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode audit snapshot")
		return nil
	}

	return datatypes.JSON(raw)
}

func normalizeAuditRole(role string) string {
	switch r := strings.ToLower(strings.TrimSpace(role)); r {
	case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
		return r
	default:
		return models.RoleUnknown
	}
}
