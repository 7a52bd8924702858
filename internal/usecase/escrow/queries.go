package usecase

import (
	"context"
	"log/slog"

	"github.com/gigvault/escrow-service/internal/domain"
)

func (uc *DefaultEscrowUsecase) GetEscrowByID(ctx context.Context, escrowID string) (*domain.Escrow, error) {
	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return nil, err
	}
	uc.enrichWithHoldStatus(ctx, escrow)
	return escrow, nil
}

// ListUserEscrows returns every escrow the user is a party to, enriched
// with live gateway hold status when the gateway is reachable.
func (uc *DefaultEscrowUsecase) ListUserEscrows(ctx context.Context, userID string) ([]*domain.Escrow, error) {
	escrows, err := uc.EscrowRepo.GetEscrowsByUserID(userID)
	if err != nil {
		return nil, err
	}
	for _, escrow := range escrows {
		uc.enrichWithHoldStatus(ctx, escrow)
	}
	return escrows, nil
}

// enrichWithHoldStatus attaches the live hold status and flags rows whose
// stored status disagrees with the gateway. The gateway is authoritative
// for money; a divergent row means a crashed write that the replay worker
// has not settled yet.
func (uc *DefaultEscrowUsecase) enrichWithHoldStatus(ctx context.Context, escrow *domain.Escrow) {
	if escrow.HoldID == "" {
		return
	}
	holdStatus, err := uc.Gateway.GetHoldStatus(ctx, escrow.HoldID)
	if err != nil {
		slog.Warn("failed to fetch hold status", "escrow_id", escrow.ID, "hold_id", escrow.HoldID, "error", err.Error())
		return
	}
	escrow.HoldStatus = holdStatus

	if diverged(escrow.Status, holdStatus) {
		uc.Metrics.ReconcileDivergedTotal.WithLabelValues(string(escrow.Status), string(holdStatus)).Inc()
		slog.Warn("stored escrow status diverges from gateway hold status",
			"escrow_id", escrow.ID,
			"stored_status", string(escrow.Status),
			"hold_status", string(holdStatus))
	}
}

func diverged(status domain.EscrowStatus, holdStatus domain.HoldStatus) bool {
	switch status {
	case domain.EscrowStatusFunded, domain.EscrowStatusDisputed:
		return holdStatus == domain.HoldStatusCaptured || holdStatus == domain.HoldStatusRefunded
	case domain.EscrowStatusReleased:
		return holdStatus != domain.HoldStatusCaptured
	case domain.EscrowStatusRefunded:
		return holdStatus != domain.HoldStatusRefunded
	default:
		return false
	}
}
