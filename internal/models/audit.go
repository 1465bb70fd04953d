// internal/models/audit.go
package models

type AuditLog struct {
	BaseModel
	UserID       *uint  `json:"user_id" gorm:"index"`
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resource_type" gorm:"size:50;not null;index"`
	StatusCode   int    `json:"status_code"`
	DurationMS   int64  `json:"duration_ms"`
	NewValues    JSONB  `json:"new_values" gorm:"type:json"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"type:text"`
}
