package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
)

// ReleaseEscrow captures the held funds for the freelancer. Client-only.
// The precondition check re-validates status on every call, so retrying
// after a gateway failure is safe.
func (uc *DefaultEscrowUsecase) ReleaseEscrow(ctx context.Context, escrowID string, actingUser *domain.User) (*domain.Escrow, error) {
	uc.Locks.Lock(escrowID)
	defer uc.Locks.Unlock(escrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow.ClientID != actingUser.ID {
		return nil, domain.ErrUnauthorized
	}
	if escrow.Status != domain.EscrowStatusFunded {
		return nil, domain.ErrInvalidStateTransition
	}

	op := &EscrowOperation{
		EscrowID:  escrow.ID,
		HoldID:    escrow.HoldID,
		ActorID:   actingUser.ID,
		Operation: "release",
		OldStatus: domain.EscrowStatusFunded,
		NewStatus: domain.EscrowStatusReleased,
		Purpose:   domain.IntentCapture,
		CreatedAt: time.Now(),
	}
	if err := uc.ProcessEscrowOperation(ctx, op); err != nil {
		return nil, err
	}

	uc.Metrics.EscrowsReleasedTotal.WithLabelValues(escrow.Currency, "client").Inc()

	released, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return nil, err
	}

	go func(event publisher.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(event); err != nil {
			slog.Error("failed to publish kafka escrow event", "stage", "releasing", "error", err.Error())
		}
	}(publisher.EscrowEvent{
		EscrowID:     released.ID,
		ContractID:   released.ContractID,
		ClientID:     released.ClientID,
		FreelancerID: released.FreelancerID,
		Amount:       released.Amount,
		Currency:     released.Currency,
		Status:       string(released.Status),
		HoldID:       released.HoldID,
	})

	return released, nil
}
