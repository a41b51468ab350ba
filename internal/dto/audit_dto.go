package dto

import (
	"encoding/json"
	"time"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
)

// AuditLogQueryRequest carries the admin viewer's filter form. All filters
// are optional and conjunctive.
type AuditLogQueryRequest struct {
	Page      int
	PageSize  int
	ActorID   *uint
	Email     string
	Action    string
	TableName string
	From      *time.Time
	To        *time.Time
}

// AuditLogResponse serializes one audit trail entry.
type AuditLogResponse struct {
	ID         uint            `json:"id"`
	ActorID    *uint           `json:"actor_id"`
	ActorEmail string          `json:"actor_email"`
	ActorRole  string          `json:"actor_role"`
	Action     string          `json:"action"`
	TableName  *string         `json:"table_name"`
	RecordID   *uint           `json:"record_id"`
	OldData    json.RawMessage `json:"old_data,omitempty"`
	NewData    json.RawMessage `json:"new_data,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	UserAgent  string          `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditLogListResponse wraps a paginated audit page together with the total
// match count so the viewer can derive page navigation locally.
type AuditLogListResponse struct {
	Items      []AuditLogResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewAuditLogResponse converts a model into an audit DTO.
func NewAuditLogResponse(entry models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		ActorEmail: entry.ActorEmail,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		TableName:  entry.Table,
		RecordID:   entry.RecordID,
		OldData:    json.RawMessage(entry.OldData),
		NewData:    json.RawMessage(entry.NewData),
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		CreatedAt:  entry.CreatedAt,
	}
}
