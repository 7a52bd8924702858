package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
)

// ReconcileStaleHolds sweeps funded/disputed escrows whose holds are older
// than staleAge and verifies them against the gateway. Repairs are applied
// only along the legal transition graph; anything else is logged for
// operator follow-up.
func (uc *DefaultEscrowUsecase) ReconcileStaleHolds(ctx context.Context, staleAge time.Duration) error {
	escrows, err := uc.EscrowRepo.FindStaleHeldEscrows(time.Now().Add(-staleAge))
	if err != nil {
		return err
	}

	for _, escrow := range escrows {
		holdStatus, err := uc.Gateway.GetHoldStatus(ctx, escrow.HoldID)
		if err != nil {
			slog.Warn("reconcile: failed to fetch hold status", "escrow_id", escrow.ID, "error", err.Error())
			continue
		}
		if !diverged(escrow.Status, holdStatus) {
			continue
		}

		uc.Metrics.ReconcileDivergedTotal.WithLabelValues(string(escrow.Status), string(holdStatus)).Inc()

		repaired := repairTarget(escrow.Status, holdStatus)
		if repaired == "" {
			slog.Error("reconcile: divergence needs manual reconciliation",
				"escrow_id", escrow.ID,
				"stored_status", string(escrow.Status),
				"hold_status", string(holdStatus))
			continue
		}

		if err := uc.EscrowRepo.UpdateEscrowStatusIf(escrow.ID, escrow.Status, repaired); err != nil {
			slog.Error("reconcile: failed to repair escrow status", "escrow_id", escrow.ID, "error", err.Error())
			continue
		}
		slog.Info("reconcile: repaired escrow status from gateway",
			"escrow_id", escrow.ID,
			"old_status", string(escrow.Status),
			"new_status", string(repaired))
	}
	return nil
}

// repairTarget returns the status implied by the gateway, or "" when the
// implied transition is not on the graph and a human has to look.
func repairTarget(stored domain.EscrowStatus, holdStatus domain.HoldStatus) domain.EscrowStatus {
	var target domain.EscrowStatus
	switch holdStatus {
	case domain.HoldStatusCaptured:
		target = domain.EscrowStatusReleased
	case domain.HoldStatusRefunded:
		target = domain.EscrowStatusRefunded
	default:
		return ""
	}
	if !domain.CanTransition(stored, target) {
		return ""
	}
	return target
}

// ReplayPendingIntents settles money-moving intents that never completed:
// either the gateway call landed and the status write was lost (repair the
// escrow), or it never landed (fail the intent, the caller may retry).
func (uc *DefaultEscrowUsecase) ReplayPendingIntents(ctx context.Context, intentAge time.Duration) error {
	intents, err := uc.IntentRepo.FindPendingIntents(time.Now().Add(-intentAge))
	if err != nil {
		return err
	}

	for _, intent := range intents {
		holdStatus, err := uc.Gateway.GetHoldStatus(ctx, intent.HoldID)
		if err != nil {
			slog.Warn("replay: failed to fetch hold status", "intent_id", intent.ID, "error", err.Error())
			continue
		}

		switch {
		case expectedHoldStatus(intent.Purpose, holdStatus):
			// The gateway call landed; make the store agree.
			target := repairTargetForPurpose(intent.Purpose)
			if err := uc.EscrowRepo.UpdateEscrowStatus(intent.EscrowID, target); err != nil {
				slog.Error("replay: failed to repair escrow status", "intent_id", intent.ID, "error", err.Error())
				continue
			}
			if err := uc.IntentRepo.UpdateIntentStatus(intent.ID, domain.IntentSucceeded); err != nil {
				slog.Error("replay: failed to settle intent", "intent_id", intent.ID, "error", err.Error())
			}
			slog.Info("replay: settled intent from gateway status",
				"intent_id", intent.ID,
				"escrow_id", intent.EscrowID,
				"purpose", string(intent.Purpose))

		case holdStatus == domain.HoldStatusHeld:
			// The money never moved. The escrow keeps its stored status and
			// the operation can be retried from the top.
			if err := uc.IntentRepo.UpdateIntentStatus(intent.ID, domain.IntentFailed); err != nil {
				slog.Error("replay: failed to fail intent", "intent_id", intent.ID, "error", err.Error())
			}

		default:
			slog.Error("replay: intent needs manual reconciliation",
				"intent_id", intent.ID,
				"escrow_id", intent.EscrowID,
				"purpose", string(intent.Purpose),
				"hold_status", string(holdStatus))
		}
	}
	return nil
}

func repairTargetForPurpose(purpose domain.IntentPurpose) domain.EscrowStatus {
	if purpose == domain.IntentRefund {
		return domain.EscrowStatusRefunded
	}
	return domain.EscrowStatusReleased
}
