package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-ingestion/internal/clock"
	"github.com/xavierca1/lead-ingestion/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ExistsByCorrelationID(ctx context.Context, correlationID string) (bool, error) {
	args := m.Called(ctx, correlationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) GetByCorrelationID(ctx context.Context, correlationID string) (*entity.Lead, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

var fixedInstant = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newUseCase(repo *MockLeadRepository) *IngestLeadUseCase {
	return NewIngestLeadUseCase(repo, clock.NewFixedClock(fixedInstant), nil, zap.NewNop())
}

// Lead válido com correlation id novo é
// persistido com created_at == updated_at == relógio injetado.
func TestIngestLeadSuccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	input := validInput()

	repo.On("ExistsByCorrelationID", ctx, input.CorrelationID).Return(false, nil)
	repo.On("Save", ctx, mock.MatchedBy(func(lead *entity.Lead) bool {
		return lead.ID == 0 &&
			lead.TenantID == "tenant-123" &&
			lead.Email == "test@example.com" &&
			lead.Source == "website" &&
			lead.CreatedAt.Equal(fixedInstant) &&
			lead.UpdatedAt.Equal(fixedInstant)
	})).Return(&entity.Lead{
		ID:            42,
		CorrelationID: input.CorrelationID,
		CreatedAt:     fixedInstant,
		UpdatedAt:     fixedInstant,
	}, nil)

	output, err := newUseCase(repo).Execute(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), output.LeadID)
	assert.Equal(t, input.CorrelationID, output.CorrelationID)
	repo.AssertExpectations(t)
}

func TestIngestLeadValidationFailureSkipsStore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)

	input := validInput()
	input.Email = "not-an-email"
	input.Phone = "123"

	output, err := newUseCase(repo).Execute(ctx, input)

	assert.Nil(t, output)
	var valErr *ValidationFailedError
	assert.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Violations, 2) // todas as violações, não só a primeira

	// Nenhum acesso ao banco em falha de validação.
	repo.AssertNotCalled(t, "ExistsByCorrelationID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Mesmo correlation id duas vezes: a segunda
// termina em DuplicateLead carregando o id, e o Save não roda.
func TestIngestLeadDuplicateCorrelationID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	input := validInput()

	repo.On("ExistsByCorrelationID", ctx, input.CorrelationID).Return(true, nil)

	output, err := newUseCase(repo).Execute(ctx, input)

	assert.Nil(t, output)
	var dupErr *DuplicateLeadError
	assert.ErrorAs(t, err, &dupErr)
	assert.Equal(t, input.CorrelationID, dupErr.CorrelationID)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIngestLeadExistsCheckErrorPropagates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	input := validInput()

	boom := errors.New("connection refused")
	repo.On("ExistsByCorrelationID", ctx, input.CorrelationID).Return(false, boom)

	output, err := newUseCase(repo).Execute(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Erro do Save sobe intacto — sem engolir, sem retry aqui dentro.
func TestIngestLeadSaveErrorPropagatesUnmodified(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	input := validInput()

	repo.On("ExistsByCorrelationID", ctx, input.CorrelationID).Return(false, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil, entity.ErrDuplicateLead)

	output, err := newUseCase(repo).Execute(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, entity.ErrDuplicateLead)
}

// Timestamp de transporte imprestável não bloqueia a ingestão (só auditoria).
func TestIngestLeadUnparseableMessageTimestampIsLenient(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)

	input := validInput()
	// Passa no validador (forma sem offset) mas falha no parse estrito RFC3339.
	input.MessageTimestamp = "2026-08-30T12:00:00"

	repo.On("ExistsByCorrelationID", ctx, input.CorrelationID).Return(false, nil)
	repo.On("Save", ctx, mock.Anything).Return(&entity.Lead{ID: 7, CorrelationID: input.CorrelationID}, nil)

	output, err := newUseCase(repo).Execute(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), output.LeadID)
	repo.AssertExpectations(t)
}

func TestIngestLeadCarriesOptionalFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	input := validInput()

	repo.On("ExistsByCorrelationID", ctx, input.CorrelationID).Return(false, nil)
	repo.On("Save", ctx, mock.MatchedBy(func(lead *entity.Lead) bool {
		return lead.FirstName == "Maria" &&
			lead.LastName == "Silva" &&
			lead.Phone == "+55 (11) 99999-9999" &&
			lead.Company == "Acme Ltda" &&
			lead.Metadata == `{"utm_source":"google"}`
	})).Return(&entity.Lead{ID: 1, CorrelationID: input.CorrelationID}, nil)

	_, err := newUseCase(repo).Execute(ctx, input)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
