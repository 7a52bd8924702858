package setup

import (
	"github.com/gigvault/escrow-service/internal/auth"
	"github.com/gigvault/escrow-service/internal/usecase"
	disputeusecase "github.com/gigvault/escrow-service/internal/usecase/dispute"
	escrowusecase "github.com/gigvault/escrow-service/internal/usecase/escrow"
)

type UseCases struct {
	EscrowUsecase  *escrowusecase.DefaultEscrowUsecase
	DisputeUsecase *disputeusecase.DefaultDisputeUsecase
	UserDirectory  *auth.UserDirectory
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	locks := usecase.NewKeyedMutex()

	escrowUsecase := escrowusecase.NewDefaultEscrowUsecase(
		deps.Repositories.EscrowRepo,
		deps.Repositories.UserRepo,
		deps.Repositories.IntentRepo,
		deps.Gateway,
		deps.EscrowPublisher,
		deps.Metrics,
		deps.AuditLog,
		locks,
	)

	disputeUsecase := disputeusecase.NewDefaultDisputeUsecase(
		deps.Repositories.DisputeRepo,
		deps.Repositories.EscrowRepo,
		escrowUsecase,
		deps.DisputePublisher,
		deps.Metrics,
		locks,
	)

	return &UseCases{
		EscrowUsecase:  escrowUsecase,
		DisputeUsecase: disputeUsecase,
		UserDirectory:  auth.NewUserDirectory(deps.Repositories.UserRepo, deps.Config.AuthService.JWTSecret),
	}
}
