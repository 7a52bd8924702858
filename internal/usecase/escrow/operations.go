package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/google/uuid"
)

// EscrowOperation describes a money-moving transition. All fund movement
// funnels through ProcessEscrowOperation so auditing money paths means
// reading exactly this file.
type EscrowOperation struct {
	EscrowID  string               `json:"escrow_id"`
	HoldID    string               `json:"hold_id"`
	ActorID   string               `json:"actor_id"`
	Operation string               `json:"operation"` // "release", "resolve_release", "resolve_refund"
	OldStatus domain.EscrowStatus  `json:"old_status"`
	NewStatus domain.EscrowStatus  `json:"new_status"`
	Purpose   domain.IntentPurpose `json:"purpose"`
	CreatedAt time.Time            `json:"created_at"`
}

// ProcessEscrowOperation records the intent, moves the money, then writes
// the new status with a compare-and-swap. The intent row stays pending if
// the process dies between the gateway call and the store write, which is
// what the replay worker keys on.
func (uc *DefaultEscrowUsecase) ProcessEscrowOperation(ctx context.Context, op *EscrowOperation) error {
	intent := &domain.PaymentIntentRecord{
		ID:        uuid.NewString(),
		EscrowID:  op.EscrowID,
		HoldID:    op.HoldID,
		Purpose:   op.Purpose,
		Status:    domain.IntentPending,
		CreatedAt: time.Now(),
	}
	if err := uc.IntentRepo.CreateIntent(intent); err != nil {
		return fmt.Errorf("recording payment intent: %w", err)
	}

	start := time.Now()
	var holdStatus domain.HoldStatus
	var err error
	switch op.Purpose {
	case domain.IntentCapture:
		holdStatus, err = uc.Gateway.CaptureHold(ctx, op.HoldID)
	case domain.IntentRefund:
		holdStatus, err = uc.Gateway.RefundHold(ctx, op.HoldID)
	default:
		return fmt.Errorf("unknown intent purpose: %s", op.Purpose)
	}
	uc.Metrics.GatewayCallDuration.WithLabelValues(string(op.Purpose)).Observe(time.Since(start).Seconds())

	if err != nil {
		uc.Metrics.GatewayErrorsTotal.WithLabelValues(string(op.Purpose)).Inc()
		if updateErr := uc.IntentRepo.UpdateIntentStatus(intent.ID, domain.IntentFailed); updateErr != nil {
			slog.Error("failed to mark payment intent failed", "intent_id", intent.ID, "error", updateErr.Error())
		}
		return err
	}
	if !expectedHoldStatus(op.Purpose, holdStatus) {
		uc.Metrics.GatewayErrorsTotal.WithLabelValues(string(op.Purpose)).Inc()
		// Money may or may not have moved. Leave the intent pending so the
		// replay worker settles it against live gateway status.
		return fmt.Errorf("%w: unexpected hold status %q after %s", domain.ErrPaymentGateway, holdStatus, op.Purpose)
	}

	if err := uc.EscrowRepo.UpdateEscrowStatusIf(op.EscrowID, op.OldStatus, op.NewStatus); err != nil {
		// The gateway call succeeded but the stored status did not move.
		// Known inconsistency window: leave the intent pending for replay
		// and flag for operator follow-up.
		slog.Error("escrow status write failed after successful gateway call",
			"escrow_id", op.EscrowID,
			"operation", op.Operation,
			"intent_id", intent.ID,
			"error", err.Error())
		return err
	}

	if err := uc.IntentRepo.UpdateIntentStatus(intent.ID, domain.IntentSucceeded); err != nil {
		slog.Error("failed to mark payment intent succeeded", "intent_id", intent.ID, "error", err.Error())
	}

	if escrow, err := uc.EscrowRepo.GetEscrowByID(op.EscrowID); err == nil {
		uc.recordStatusChange(ctx, escrow, op.OldStatus, op.NewStatus, op.ActorID, op.Operation)
	}
	return nil
}

func expectedHoldStatus(purpose domain.IntentPurpose, holdStatus domain.HoldStatus) bool {
	switch purpose {
	case domain.IntentCapture:
		return holdStatus == domain.HoldStatusCaptured
	case domain.IntentRefund:
		return holdStatus == domain.HoldStatusRefunded
	default:
		return false
	}
}
