package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	disputedto "github.com/gigvault/escrow-service/internal/usecase/dto/dispute"
	escrowops "github.com/gigvault/escrow-service/internal/usecase/escrow"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ResolveDispute closes an open dispute by admin decision and moves the
// held money. The dispute row is marked resolved before the gateway call:
// if the gateway then fails the escrow stays disputed while the dispute
// reads resolved, which is the documented inconsistency window the replay
// worker and operators watch for.
func (disputeUc *DefaultDisputeUsecase) ResolveDispute(ctx context.Context, input *disputedto.ResolveDisputeInput, actingAdmin *domain.User) (*domain.Escrow, error) {
	if actingAdmin.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	var newStatus domain.EscrowStatus
	var purpose domain.IntentPurpose
	switch input.Decision {
	case domain.DecisionReleaseToFreelancer:
		newStatus = domain.EscrowStatusReleased
		purpose = domain.IntentCapture
	case domain.DecisionRefundToClient:
		newStatus = domain.EscrowStatusRefunded
		purpose = domain.IntentRefund
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown dispute decision: %s", input.Decision)
	}

	disputeUc.locks.Lock(input.EscrowID)
	defer disputeUc.locks.Unlock(input.EscrowID)

	escrow, err := disputeUc.escrowRepo.GetEscrowByID(input.EscrowID)
	if err != nil {
		return nil, err
	}
	if escrow.Status != domain.EscrowStatusDisputed {
		return nil, domain.ErrInvalidStateTransition
	}

	dispute, err := disputeUc.disputeRepo.GetOpenDisputeByEscrowID(escrow.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDisputeNotFound) {
			return nil, domain.ErrInvalidStateTransition
		}
		return nil, err
	}

	resolution := fmt.Sprintf("%s: %s", input.Decision, input.Notes)
	if err := disputeUc.disputeRepo.ResolveDispute(dispute.ID, resolution, actingAdmin.ID); err != nil {
		return nil, err
	}

	op := &escrowops.EscrowOperation{
		EscrowID:  escrow.ID,
		HoldID:    escrow.HoldID,
		ActorID:   actingAdmin.ID,
		Operation: "resolve_" + string(purpose),
		OldStatus: domain.EscrowStatusDisputed,
		NewStatus: newStatus,
		Purpose:   purpose,
		CreatedAt: time.Now(),
	}
	if err := disputeUc.escrowOps.ProcessEscrowOperation(ctx, op); err != nil {
		slog.Error("dispute resolved but escrow money movement failed; needs operator follow-up",
			"escrow_id", escrow.ID,
			"dispute_id", dispute.ID,
			"decision", string(input.Decision),
			"error", err.Error())
		return nil, err
	}

	disputeUc.metrics.DisputesResolvedTotal.WithLabelValues(string(input.Decision)).Inc()
	if newStatus == domain.EscrowStatusReleased {
		disputeUc.metrics.EscrowsReleasedTotal.WithLabelValues(escrow.Currency, "dispute").Inc()
	} else {
		disputeUc.metrics.EscrowsRefundedTotal.WithLabelValues(escrow.Currency).Inc()
	}

	go func(event publisher.DisputeEvent) {
		if err := disputeUc.publisher.PublishDispute(event); err != nil {
			slog.Error("failed to publish kafka dispute event", "stage", "resolving", "error", err.Error())
		}
	}(publisher.DisputeEvent{
		DisputeID:  dispute.ID,
		EscrowID:   dispute.EscrowID,
		RaisedBy:   dispute.RaisedBy,
		Reason:     dispute.Reason,
		Status:     string(domain.DisputeResolved),
		Resolution: resolution,
		ResolvedBy: actingAdmin.ID,
	})

	return disputeUc.escrowRepo.GetEscrowByID(escrow.ID)
}
