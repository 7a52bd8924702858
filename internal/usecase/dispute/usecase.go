package usecase

import (
	"context"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	"github.com/gigvault/escrow-service/internal/infrastructure/metrics"
	"github.com/gigvault/escrow-service/internal/usecase"
	disputedto "github.com/gigvault/escrow-service/internal/usecase/dto/dispute"
	escrowops "github.com/gigvault/escrow-service/internal/usecase/escrow"
)

type DisputeUsecase interface {
	RaiseDispute(ctx context.Context, input *disputedto.RaiseDisputeInput, actingUser *domain.User) (*domain.Dispute, error)
	ResolveDispute(ctx context.Context, input *disputedto.ResolveDisputeInput, actingAdmin *domain.User) (*domain.Escrow, error)
	GetDisputeByID(disputeID string) (*domain.Dispute, error)
	GetDisputeByEscrowID(escrowID string) (*domain.Dispute, error)
	GetDisputes(input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error)
}

// EscrowOperationProcessor funnels the money movement of a dispute
// resolution through the same audited path the release operation uses.
type EscrowOperationProcessor interface {
	ProcessEscrowOperation(ctx context.Context, op *escrowops.EscrowOperation) error
}

type DefaultDisputeUsecase struct {
	disputeRepo domain.DisputeRepository
	escrowRepo  domain.EscrowRepository
	escrowOps   EscrowOperationProcessor
	publisher   *publisher.KafkaPublisher
	metrics     *metrics.EscrowMetrics
	locks       *usecase.KeyedMutex
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	escrowRepo domain.EscrowRepository,
	escrowOps EscrowOperationProcessor,
	kafkaPublisher *publisher.KafkaPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	locks *usecase.KeyedMutex) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		disputeRepo: disputeRepo,
		escrowRepo:  escrowRepo,
		escrowOps:   escrowOps,
		publisher:   kafkaPublisher,
		metrics:     escrowMetrics,
		locks:       locks,
	}
}
