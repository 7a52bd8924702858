package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/config"
	escrowusecase "github.com/gigvault/escrow-service/internal/usecase/escrow"
)

type BackgroundTasks struct {
	EscrowUsecase escrowusecase.EscrowUsecase
	Cfg           config.Reconciler
}

func NewBackgroundTasks(escrowUC escrowusecase.EscrowUsecase, cfg config.Reconciler) *BackgroundTasks {
	return &BackgroundTasks{
		EscrowUsecase: escrowUC,
		Cfg:           cfg,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startStaleHoldReconcile(ctx)
	go bt.startIntentReplay(ctx)
}

func (bt *BackgroundTasks) startStaleHoldReconcile(ctx context.Context) {
	ticker := time.NewTicker(bt.Cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.EscrowUsecase.ReconcileStaleHolds(ctx, bt.Cfg.StaleHoldAge); err != nil {
				slog.Error("stale hold reconcile failed", "error", err.Error())
			}
		}
	}
}

func (bt *BackgroundTasks) startIntentReplay(ctx context.Context) {
	ticker := time.NewTicker(bt.Cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.EscrowUsecase.ReplayPendingIntents(ctx, bt.Cfg.IntentAge); err != nil {
				slog.Error("pending intent replay failed", "error", err.Error())
			}
		}
	}
}
