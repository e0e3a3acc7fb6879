package entity

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateLead: violação do índice único de correlation_id (23505).
	ErrDuplicateLead = errors.New("lead already exists for correlation id")

	ErrLeadNotFound    = errors.New("lead not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Lead struct {
	ID            int64     `json:"id"`
	TenantID      string    `json:"tenant_id"`
	CorrelationID string    `json:"correlation_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Company       string    `json:"company,omitempty"`
	Source        string    `json:"source"`
	Metadata      string    `json:"metadata,omitempty"` // JSON bruto, opcional
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
