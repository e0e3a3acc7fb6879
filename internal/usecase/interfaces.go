package usecase

import (
	"context"

	"github.com/xavierca1/lead-ingestion/internal/entity"
)

type LeadRepositoryInterface interface {
	Save(ctx context.Context, lead *entity.Lead) (*entity.Lead, error)
	ExistsByCorrelationID(ctx context.Context, correlationID string) (bool, error)
	GetByCorrelationID(ctx context.Context, correlationID string) (*entity.Lead, error)
}

type LeadNotifier interface {
	NotifyLeadCreated(lead *entity.Lead) error
}
