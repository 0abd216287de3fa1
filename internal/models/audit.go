package models

import "time"

// AuditLog represents a record of admin actions
type AuditLog struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	AccountID string    `json:"accountId"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Details   string    `json:"details"` // JSON string
	IPAddress string    `json:"ipAddress"`
}

// Common audit actions
const (
	ActionLogin         = "auth.login"
	ActionLogout        = "auth.logout"
	ActionContentUpdate = "content.update"
	ActionUserCreate    = "user.create"
	ActionUserActivate  = "user.activate"
	ActionUserDisable   = "user.disable"
)

// AuditFilter narrows audit log listings
type AuditFilter struct {
	AccountID string
	Action    string
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}
