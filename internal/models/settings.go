package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a tender type offered at checkout. At most one row is the default.
type PaymentMethod struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// PdvSetting holds the point-of-sale display configuration (one row in practice).
type PdvSetting struct {
	ID        uuid.UUID `json:"id"`
	PdvName   string    `json:"pdv_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const DefaultPdvName = "PDV Web System"

// ActivityLog is an append-only audit entry referencing any table.
type ActivityLog struct {
	ID          uuid.UUID       `json:"id"`
	Action      string          `json:"action"`
	TableName   string          `json:"table_name"`
	RecordID    *string         `json:"record_id,omitempty"`
	Description string          `json:"description"`
	OldData     json.RawMessage `json:"old_data,omitempty"`
	NewData     json.RawMessage `json:"new_data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
