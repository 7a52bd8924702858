package setup

import (
	"fmt"

	"github.com/gigvault/escrow-service/internal/config"
	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	"github.com/gigvault/escrow-service/internal/infrastructure/logger"
	"github.com/gigvault/escrow-service/internal/infrastructure/metrics"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/repository"
	"github.com/gigvault/escrow-service/internal/infrastructure/stripe"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config           *config.EscrowConfig
	DB               *gorm.DB
	Gateway          domain.PaymentGateway
	EscrowPublisher  *publisher.KafkaPublisher
	DisputePublisher *publisher.KafkaPublisher
	Metrics          *metrics.EscrowMetrics
	AuditLog         logger.EscrowEventLogger
	Repositories     *Repositories
}

type Repositories struct {
	EscrowRepo  domain.EscrowRepository
	DisputeRepo domain.DisputeRepository
	UserRepo    domain.UserRepository
	IntentRepo  domain.PaymentIntentRepository
}

func (d *Dependencies) Close() {
	_ = d.EscrowPublisher.Close()
	_ = d.DisputePublisher.Close()
}

func InitializeDependencies(cfg *config.EscrowConfig) *Dependencies {
	db := postgres.MustInitDB(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}

	return &Dependencies{
		Config:           cfg,
		DB:               db,
		Gateway:          stripe.NewClient(cfg.StripeService.BaseURL, cfg.StripeService.SecretKey, cfg.StripeService.Timeout),
		EscrowPublisher:  publisher.NewKafkaPublisher(brokers, cfg.KafkaService.EscrowTopic),
		DisputePublisher: publisher.NewKafkaPublisher(brokers, cfg.KafkaService.DisputeTopic),
		Metrics:          metrics.NewEscrowMetrics(),
		AuditLog:         logger.NewPGEscrowEventLogger(db),
		Repositories: &Repositories{
			EscrowRepo:  repository.NewDefaultEscrowRepository(db),
			DisputeRepo: repository.NewDefaultDisputeRepository(db),
			UserRepo:    repository.NewDefaultUserRepository(db),
			IntentRepo:  repository.NewDefaultPaymentIntentRepository(db),
		},
	}
}
