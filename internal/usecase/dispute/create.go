package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	disputedto "github.com/gigvault/escrow-service/internal/usecase/dto/dispute"
	"github.com/jaevor/go-nanoid"
)

// RaiseDispute flags a funded escrow: either party may raise, at most one
// open dispute per escrow. The escrow is claimed funded -> disputed with a
// conditional update before the dispute row is written, so a concurrent
// release loses cleanly with ErrInvalidStateTransition.
func (disputeUc *DefaultDisputeUsecase) RaiseDispute(ctx context.Context, input *disputedto.RaiseDisputeInput, actingUser *domain.User) (*domain.Dispute, error) {
	disputeUc.locks.Lock(input.EscrowID)
	defer disputeUc.locks.Unlock(input.EscrowID)

	escrow, err := disputeUc.escrowRepo.GetEscrowByID(input.EscrowID)
	if err != nil {
		return nil, err
	}
	if !escrow.IsParty(actingUser.ID) {
		return nil, domain.ErrUnauthorized
	}

	// Reported before the status check so that a second raise against an
	// already disputed escrow names the real conflict.
	if _, err := disputeUc.disputeRepo.GetOpenDisputeByEscrowID(escrow.ID); err == nil {
		return nil, domain.ErrConflictingDispute
	} else if !errors.Is(err, domain.ErrDisputeNotFound) {
		return nil, err
	}

	if escrow.Status != domain.EscrowStatusFunded {
		return nil, domain.ErrInvalidStateTransition
	}

	if err := disputeUc.escrowRepo.UpdateEscrowStatusIf(escrow.ID, domain.EscrowStatusFunded, domain.EscrowStatusDisputed); err != nil {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	reason := input.Reason
	if reason == "" {
		reason = "No reason provided"
	}

	dispute := domain.Dispute{
		ID:        "dis_" + idGenerator(),
		EscrowID:  escrow.ID,
		RaisedBy:  actingUser.ID,
		Reason:    reason,
		Status:    domain.DisputeOpen,
		CreatedAt: time.Now(),
	}
	if err := disputeUc.disputeRepo.CreateDispute(&dispute); err != nil {
		// The escrow is already disputed; without an open dispute row it
		// cannot be resolved, so this needs an operator.
		slog.Error("dispute row write failed after escrow transition",
			"escrow_id", escrow.ID, "error", err.Error())
		return nil, err
	}

	disputeUc.metrics.DisputesOpenedTotal.WithLabelValues(string(actingUser.Role)).Inc()

	go func(event publisher.DisputeEvent) {
		if err := disputeUc.publisher.PublishDispute(event); err != nil {
			slog.Error("failed to publish kafka dispute event", "stage", "creating", "error", err.Error())
		}
	}(publisher.DisputeEvent{
		DisputeID: dispute.ID,
		EscrowID:  dispute.EscrowID,
		RaisedBy:  dispute.RaisedBy,
		Reason:    dispute.Reason,
		Status:    string(dispute.Status),
	})

	return &dispute, nil
}
