package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	"github.com/gigvault/escrow-service/internal/infrastructure/logger"
	"github.com/gigvault/escrow-service/internal/infrastructure/metrics"
	"github.com/gigvault/escrow-service/internal/usecase"
	escrowdto "github.com/gigvault/escrow-service/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	CreateEscrow(input *escrowdto.CreateEscrowInput) (*domain.Escrow, error)
	InitiateFunding(ctx context.Context, escrowID string, actingUser *domain.User) (*domain.Hold, error)
	FundEscrow(ctx context.Context, escrowID, holdRef string) (*domain.Escrow, error)
	ReleaseEscrow(ctx context.Context, escrowID string, actingUser *domain.User) (*domain.Escrow, error)

	GetEscrowByID(ctx context.Context, escrowID string) (*domain.Escrow, error)
	ListUserEscrows(ctx context.Context, userID string) ([]*domain.Escrow, error)

	ReconcileStaleHolds(ctx context.Context, staleAge time.Duration) error
	ReplayPendingIntents(ctx context.Context, intentAge time.Duration) error
}

type DefaultEscrowUsecase struct {
	EscrowRepo domain.EscrowRepository
	UserRepo   domain.UserRepository
	IntentRepo domain.PaymentIntentRepository
	Gateway    domain.PaymentGateway
	Publisher  *publisher.KafkaPublisher
	Metrics    *metrics.EscrowMetrics
	AuditLog   logger.EscrowEventLogger
	Locks      *usecase.KeyedMutex
}

func NewDefaultEscrowUsecase(
	escrowRepo domain.EscrowRepository,
	userRepo domain.UserRepository,
	intentRepo domain.PaymentIntentRepository,
	gateway domain.PaymentGateway,
	kafkaPublisher *publisher.KafkaPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	auditLog logger.EscrowEventLogger,
	locks *usecase.KeyedMutex) *DefaultEscrowUsecase {

	return &DefaultEscrowUsecase{
		EscrowRepo: escrowRepo,
		UserRepo:   userRepo,
		IntentRepo: intentRepo,
		Gateway:    gateway,
		Publisher:  kafkaPublisher,
		Metrics:    escrowMetrics,
		AuditLog:   auditLog,
		Locks:      locks,
	}
}

func (uc *DefaultEscrowUsecase) recordStatusChange(ctx context.Context, escrow *domain.Escrow, from, to domain.EscrowStatus, actorID, operation string) {
	if uc.AuditLog == nil {
		return
	}
	event := logger.EscrowStatusChangedEvent{
		EscrowID:   escrow.ID,
		ContractID: escrow.ContractID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorID:    actorID,
		Operation:  operation,
		Amount:     escrow.Amount,
		Currency:   escrow.Currency,
		Timestamp:  time.Now(),
	}
	if err := uc.AuditLog.LogStatusChange(ctx, event); err != nil {
		slog.Warn("failed to record escrow status change",
			"escrow_id", escrow.ID,
			"operation", operation,
			"error", err.Error())
	}
}
