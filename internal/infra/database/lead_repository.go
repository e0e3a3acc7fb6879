package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/lead-ingestion/internal/clock"
	"github.com/xavierca1/lead-ingestion/internal/entity"
)

const uniqueViolationCode = "23505"

type LeadRepository struct {
	DB    *sql.DB
	Clock clock.Clock
}

func NewLeadRepository(db *sql.DB, clk clock.Clock) *LeadRepository {
	return &LeadRepository{DB: db, Clock: clk}
}

// Save insere quando ID == 0 e atualiza quando ID > 0, devolvendo sempre uma
// cópia nova montada a partir do que o banco gravou — nunca reaproveita o
// snapshot que o chamador tinha em mãos, então o update substitui todos os
// campos mutáveis de uma vez (sem merge parcial).
//
// No update o updated_at é recalculado aqui, com uma única leitura do relógio
// por chamada; o valor que veio no lead é ignorado. O created_at nunca muda
// depois do primeiro insert.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	if lead.ID == 0 {
		return r.insert(ctx, lead)
	}
	return r.update(ctx, lead)
}

func (r *LeadRepository) insert(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	createdAt := lead.CreatedAt.UTC()
	updatedAt := lead.UpdatedAt.UTC()
	if lead.CreatedAt.IsZero() {
		now := r.Clock.Now().UTC()
		createdAt = now
		updatedAt = now
	}

	query := `
		INSERT INTO leads (tenant_id, correlation_id, email, first_name, last_name, phone, company, source, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	saved := *lead
	saved.CreatedAt = createdAt
	saved.UpdatedAt = updatedAt

	err := r.DB.QueryRowContext(ctx, query,
		lead.TenantID,
		lead.CorrelationID,
		lead.Email,
		nullString(lead.FirstName),
		nullString(lead.LastName),
		nullString(lead.Phone),
		nullString(lead.Company),
		lead.Source,
		nullString(lead.Metadata),
		createdAt,
		updatedAt,
	).Scan(&saved.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateLead
		}
		return nil, err
	}

	return &saved, nil
}

func (r *LeadRepository) update(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	// Sempre reaplica o carimbo, mesmo sem mudança de campo (comportamento
	// documentado no DESIGN.md).
	updatedAt := r.Clock.Now().UTC()

	query := `
		UPDATE leads
		SET tenant_id = $2,
		    correlation_id = $3,
		    email = $4,
		    first_name = $5,
		    last_name = $6,
		    phone = $7,
		    company = $8,
		    source = $9,
		    metadata = $10,
		    updated_at = $11
		WHERE id = $1
		RETURNING created_at
	`

	saved := *lead
	saved.UpdatedAt = updatedAt

	err := r.DB.QueryRowContext(ctx, query,
		lead.ID,
		lead.TenantID,
		lead.CorrelationID,
		lead.Email,
		nullString(lead.FirstName),
		nullString(lead.LastName),
		nullString(lead.Phone),
		nullString(lead.Company),
		lead.Source,
		nullString(lead.Metadata),
		updatedAt,
	).Scan(&saved.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateLead
		}
		return nil, err
	}

	saved.CreatedAt = saved.CreatedAt.UTC()
	return &saved, nil
}

// ExistsByCorrelationID é o gate de idempotência: probe no índice único, sem
// materializar a linha.
func (r *LeadRepository) ExistsByCorrelationID(ctx context.Context, correlationID string) (bool, error) {
	if strings.TrimSpace(correlationID) == "" {
		return false, fmt.Errorf("%w: correlation id must not be blank", entity.ErrInvalidArgument)
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM leads WHERE correlation_id = $1)`
	if err := r.DB.QueryRowContext(ctx, query, correlationID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *LeadRepository) GetByCorrelationID(ctx context.Context, correlationID string) (*entity.Lead, error) {
	if strings.TrimSpace(correlationID) == "" {
		return nil, fmt.Errorf("%w: correlation id must not be blank", entity.ErrInvalidArgument)
	}

	query := `
		SELECT id, tenant_id, correlation_id, email, first_name, last_name, phone, company, source, metadata, created_at, updated_at
		FROM leads
		WHERE correlation_id = $1
	`

	var lead entity.Lead
	var firstName, lastName, phone, company, metadata sql.NullString

	err := r.DB.QueryRowContext(ctx, query, correlationID).Scan(
		&lead.ID,
		&lead.TenantID,
		&lead.CorrelationID,
		&lead.Email,
		&firstName,
		&lastName,
		&phone,
		&company,
		&lead.Source,
		&metadata,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	lead.FirstName = firstName.String
	lead.LastName = lastName.String
	lead.Phone = phone.String
	lead.Company = company.String
	lead.Metadata = metadata.String
	lead.CreatedAt = lead.CreatedAt.UTC()
	lead.UpdatedAt = lead.UpdatedAt.UTC()

	return &lead, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
