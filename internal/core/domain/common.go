package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"` // UserID reference
	LastUpdatedAt time.Time `json:"updated_at"`
	LastUpdatedBy string    `json:"updated_by"` // UserID reference
}
