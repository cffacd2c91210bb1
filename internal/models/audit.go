package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCreate AuditAction = "C"
	AuditUpdate AuditAction = "U"
	AuditDelete AuditAction = "D"
)

type AuditLog struct {
	ID        uuid.UUID       `json:"id"`
	TableName string          `json:"table_name"`
	Action    AuditAction     `json:"action"`
	OldValue  json.RawMessage `json:"old_value,omitempty"`
	NewValue  json.RawMessage `json:"new_value,omitempty"`
	ModUser   *uuid.UUID      `json:"mod_user,omitempty"`
	ModTime   time.Time       `json:"mod_time"`
}
