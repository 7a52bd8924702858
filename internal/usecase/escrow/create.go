package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	escrowdto "github.com/gigvault/escrow-service/internal/usecase/dto/escrow"
	"github.com/jaevor/go-nanoid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// minEscrowAmount is the gateway minimum charge (50 minor units).
const minEscrowAmount = 50

func (uc *DefaultEscrowUsecase) CreateEscrow(input *escrowdto.CreateEscrowInput) (*domain.Escrow, error) {
	if input.Amount < minEscrowAmount {
		return nil, status.Error(codes.InvalidArgument, "escrow amount below gateway minimum")
	}
	if input.ClientID == input.FreelancerID {
		return nil, status.Error(codes.InvalidArgument, "client and freelancer must be distinct")
	}

	client, err := uc.UserRepo.GetUserByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Role != domain.RoleClient {
		return nil, status.Error(codes.InvalidArgument, "escrow payer must have client role")
	}
	freelancer, err := uc.UserRepo.GetUserByID(input.FreelancerID)
	if err != nil {
		return nil, err
	}
	if freelancer.Role != domain.RoleFreelancer {
		return nil, status.Error(codes.InvalidArgument, "escrow payee must have freelancer role")
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}

	escrow := domain.Escrow{
		ID:           "esc_" + idGenerator(),
		ContractID:   input.ContractID,
		Title:        input.Title,
		ClientID:     input.ClientID,
		FreelancerID: input.FreelancerID,
		Amount:       input.Amount,
		Currency:     currency,
		Status:       domain.EscrowStatusPending,
		CreatedAt:    time.Now(),
	}

	if err := uc.EscrowRepo.CreateEscrow(&escrow); err != nil {
		return nil, err
	}

	uc.Metrics.EscrowsCreatedTotal.WithLabelValues(currency).Inc()

	return &escrow, nil
}

// InitiateFunding creates the payment hold for a pending escrow and hands
// the client secret back so the checkout front end can confirm it. The
// escrow stays pending until FundEscrow confirms the hold.
func (uc *DefaultEscrowUsecase) InitiateFunding(ctx context.Context, escrowID string, actingUser *domain.User) (*domain.Hold, error) {
	uc.Locks.Lock(escrowID)
	defer uc.Locks.Unlock(escrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow.ClientID != actingUser.ID {
		return nil, domain.ErrUnauthorized
	}
	if escrow.Status != domain.EscrowStatusPending {
		return nil, domain.ErrInvalidStateTransition
	}

	start := time.Now()
	hold, err := uc.Gateway.CreateHold(ctx, escrow.Amount, escrow.Currency, map[string]string{
		"escrow_id":   escrow.ID,
		"contract_id": escrow.ContractID,
		"platform":    "freelancer-app",
	})
	uc.Metrics.GatewayCallDuration.WithLabelValues("create_hold").Observe(time.Since(start).Seconds())
	if err != nil {
		uc.Metrics.GatewayErrorsTotal.WithLabelValues("create_hold").Inc()
		return nil, err
	}

	if err := uc.EscrowRepo.SetEscrowHold(escrow.ID, hold.ID); err != nil {
		return nil, err
	}

	return hold, nil
}

// FundEscrow confirms the payment hold and moves pending -> funded.
func (uc *DefaultEscrowUsecase) FundEscrow(ctx context.Context, escrowID, holdRef string) (*domain.Escrow, error) {
	uc.Locks.Lock(escrowID)
	defer uc.Locks.Unlock(escrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow.Status != domain.EscrowStatusPending {
		return nil, domain.ErrInvalidStateTransition
	}

	// Best-effort verification against the gateway. The stored status is
	// reconciled on read paths, so an unreachable gateway does not block
	// funding confirmation.
	if holdStatus, err := uc.Gateway.GetHoldStatus(ctx, holdRef); err != nil {
		slog.Warn("could not verify hold on funding", "escrow_id", escrowID, "hold_id", holdRef, "error", err.Error())
	} else if holdStatus != domain.HoldStatusHeld {
		slog.Warn("hold not in held state on funding confirmation", "escrow_id", escrowID, "hold_id", holdRef, "hold_status", string(holdStatus))
	}

	if err := uc.EscrowRepo.SetEscrowHold(escrowID, holdRef); err != nil {
		return nil, err
	}
	if err := uc.EscrowRepo.UpdateEscrowStatusIf(escrowID, domain.EscrowStatusPending, domain.EscrowStatusFunded); err != nil {
		return nil, err
	}

	uc.Metrics.EscrowsFundedTotal.WithLabelValues(escrow.Currency).Inc()
	uc.Metrics.EscrowsFundedAmount.WithLabelValues(escrow.Currency).Add(float64(escrow.Amount))
	uc.recordStatusChange(ctx, escrow, domain.EscrowStatusPending, domain.EscrowStatusFunded, escrow.ClientID, "funding")

	funded, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return nil, err
	}

	go func(event publisher.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(event); err != nil {
			slog.Error("failed to publish kafka escrow event", "stage", "funding", "error", err.Error())
		}
	}(publisher.EscrowEvent{
		EscrowID:     funded.ID,
		ContractID:   funded.ContractID,
		ClientID:     funded.ClientID,
		FreelancerID: funded.FreelancerID,
		Amount:       funded.Amount,
		Currency:     funded.Currency,
		Status:       string(funded.Status),
		HoldID:       funded.HoldID,
	})

	return funded, nil
}
