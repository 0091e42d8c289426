package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Timestamps are assigned by the record store on create/update.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
