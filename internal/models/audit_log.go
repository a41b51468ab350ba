package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions form a closed set. Anything else is rejected before it
// reaches the store.
const (
	AuditActionLogin        = "login"
	AuditActionLogout       = "logout"
	AuditActionCreate       = "create"
	AuditActionUpdate       = "update"
	AuditActionDelete       = "delete"
	AuditActionAccessDenied = "access_denied"
)

// Roles recognised across the platform. RoleUnknown stamps events whose
// actor never authenticated (failed logins, anonymous denials).
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleUnknown = "unknown"
)

// AuditActions lists every valid audit action.
var AuditActions = []string{
	AuditActionLogin,
	AuditActionLogout,
	AuditActionCreate,
	AuditActionUpdate,
	AuditActionDelete,
	AuditActionAccessDenied,
}

// AuditedTables is the fixed table list exposed by the admin viewer filter.
var AuditedTables = []string{
	"students",
	"teachers",
	"grades",
	"schedule",
	"news",
	"shop_products",
	"library_books",
	"materials",
}

// IsAuditAction reports whether the value belongs to the closed action set.
func IsAuditAction(action string) bool {
	for _, known := range AuditActions {
		if action == known {
			return true
		}
	}
	return false
}

// AuditLog is one immutable entry in the audit trail. Rows are inserted by
// the recorder and never updated or deleted by the application.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ActorID    *uint          `json:"actor_id"`
	ActorEmail string         `gorm:"size:255;not null" json:"actor_email"`
	ActorRole  string         `gorm:"size:32;not null" json:"actor_role"`
	Action     string         `gorm:"size:32;not null;index" json:"action"`
	Table      *string        `gorm:"column:table_name;size:64;index" json:"table_name"`
	RecordID   *uint          `json:"record_id"`
	OldData    datatypes.JSON `gorm:"type:json" json:"old_data"`
	NewData    datatypes.JSON `gorm:"type:json" json:"new_data"`
	IPAddress  string         `gorm:"size:64" json:"ip_address"`
	UserAgent  string         `gorm:"size:512" json:"user_agent"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

// TableName pins the storage table used by the Supabase-era schema.
func (AuditLog) TableName() string {
	return "audit_log"
}
