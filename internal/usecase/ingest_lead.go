package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-ingestion/internal/clock"
	"github.com/xavierca1/lead-ingestion/internal/entity"
)

type IngestLeadUseCase struct {
	Repo     LeadRepositoryInterface
	Clock    clock.Clock
	Notifier LeadNotifier
	Logger   *zap.Logger
}

func NewIngestLeadUseCase(
	repo LeadRepositoryInterface,
	clk clock.Clock,
	notifier LeadNotifier,
	logger *zap.Logger,
) *IngestLeadUseCase {
	return &IngestLeadUseCase{
		Repo:     repo,
		Clock:    clk,
		Notifier: notifier,
		Logger:   logger,
	}
}

// Execute processa um evento "lead created": valida, checa duplicidade e
// persiste. Termina no primeiro erro; o Save nunca roda se a validação ou o
// gate de idempotência falharam. Erro do banco sobe intacto — retry é
// responsabilidade do transporte.
func (uc *IngestLeadUseCase) Execute(ctx context.Context, input IngestLeadInput) (*IngestLeadOutput, error) {
	if violations := ValidateIngestLeadInput(input); len(violations) > 0 {
		return nil, &ValidationFailedError{Violations: violations}
	}

	exists, err := uc.Repo.ExistsByCorrelationID(ctx, input.CorrelationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &DuplicateLeadError{CorrelationID: input.CorrelationID}
	}

	// Uma única leitura do relógio por operação.
	now := uc.Clock.Now().UTC()

	if input.MessageTimestamp != "" {
		if produced, err := time.Parse(time.RFC3339, input.MessageTimestamp); err != nil {
			// Só auditoria: não bloqueia a ingestão.
			uc.Logger.Warn("unparseable message timestamp, continuing",
				zap.String("correlation_id", input.CorrelationID),
				zap.String("message_timestamp", input.MessageTimestamp),
				zap.Error(err),
			)
		} else {
			uc.Logger.Info("ingesting lead event",
				zap.String("correlation_id", input.CorrelationID),
				zap.String("tenant_id", input.TenantID),
				zap.Duration("queue_latency", now.Sub(produced)),
			)
		}
	}

	lead := &entity.Lead{
		TenantID:      input.TenantID,
		CorrelationID: input.CorrelationID,
		Email:         input.Email,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Phone:         input.Phone,
		Company:       input.Company,
		Source:        input.Source,
		Metadata:      input.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	saved, err := uc.Repo.Save(ctx, lead)
	if err != nil {
		return nil, err
	}

	if uc.Notifier != nil {
		go func(l entity.Lead) {
			if err := uc.Notifier.NotifyLeadCreated(&l); err != nil {
				uc.Logger.Warn("lead notification failed",
					zap.String("correlation_id", l.CorrelationID),
					zap.Error(err),
				)
			}
		}(*saved)
	}

	uc.Logger.Info("lead ingested",
		zap.Int64("lead_id", saved.ID),
		zap.String("correlation_id", saved.CorrelationID),
		zap.String("tenant_id", saved.TenantID),
		zap.String("source", saved.Source),
	)

	return &IngestLeadOutput{
		LeadID:        saved.ID,
		CorrelationID: saved.CorrelationID,
	}, nil
}
