package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	"github.com/gigvault/escrow-service/internal/infrastructure/logger"
	"github.com/gigvault/escrow-service/internal/infrastructure/metrics"
	"github.com/gigvault/escrow-service/internal/usecase"
)

// promauto registers against the default registry, so the metrics bundle
// is built once for the whole test binary.
var testMetrics = metrics.NewEscrowMetrics()

func newTestUsecase(escrowRepo *fakeEscrowRepo, userRepo *fakeUserRepo, intentRepo *fakeIntentRepo, gateway *fakeGateway, audit *fakeAuditLog) *DefaultEscrowUsecase {
	return NewDefaultEscrowUsecase(
		escrowRepo,
		userRepo,
		intentRepo,
		gateway,
		publisher.NewKafkaPublisher([]string{"127.0.0.1:9092"}, "escrow-events-test"),
		testMetrics,
		audit,
		usecase.NewKeyedMutex(),
	)
}

type fakeEscrowRepo struct {
	mu      sync.Mutex
	escrows map[string]*domain.Escrow
}

func newFakeEscrowRepo() *fakeEscrowRepo {
	return &fakeEscrowRepo{escrows: make(map[string]*domain.Escrow)}
}

func (r *fakeEscrowRepo) CreateEscrow(escrow *domain.Escrow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *escrow
	r.escrows[escrow.ID] = &stored
	return nil
}

func (r *fakeEscrowRepo) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.escrows[escrowID]
	if !ok {
		return nil, domain.ErrEscrowNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeEscrowRepo) GetEscrowsByUserID(userID string) ([]*domain.Escrow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Escrow
	for _, stored := range r.escrows {
		if stored.ClientID == userID || stored.FreelancerID == userID {
			copied := *stored
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeEscrowRepo) UpdateEscrowStatus(escrowID string, status domain.EscrowStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.escrows[escrowID]
	if !ok {
		return domain.ErrEscrowNotFound
	}
	stored.Status = status
	return nil
}

func (r *fakeEscrowRepo) UpdateEscrowStatusIf(escrowID string, oldStatus, newStatus domain.EscrowStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.escrows[escrowID]
	if !ok {
		return domain.ErrEscrowNotFound
	}
	if stored.Status != oldStatus {
		return domain.ErrInvalidStateTransition
	}
	stored.Status = newStatus
	now := time.Now()
	switch newStatus {
	case domain.EscrowStatusFunded:
		stored.FundedAt = &now
	case domain.EscrowStatusReleased:
		stored.ReleasedAt = &now
	case domain.EscrowStatusDisputed:
		stored.DisputedAt = &now
	}
	return nil
}

func (r *fakeEscrowRepo) SetEscrowHold(escrowID, holdID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.escrows[escrowID]
	if !ok {
		return domain.ErrEscrowNotFound
	}
	stored.HoldID = holdID
	return nil
}

func (r *fakeEscrowRepo) FindStaleHeldEscrows(olderThan time.Time) ([]*domain.Escrow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Escrow
	for _, stored := range r.escrows {
		if stored.Status != domain.EscrowStatusFunded && stored.Status != domain.EscrowStatusDisputed {
			continue
		}
		if stored.HoldID == "" || stored.FundedAt == nil || !stored.FundedAt.Before(olderThan) {
			continue
		}
		copied := *stored
		result = append(result, &copied)
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) GetUserByID(userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) CreateUser(user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeIntentRepo struct {
	mu      sync.Mutex
	intents map[string]*domain.PaymentIntentRecord
}

func newFakeIntentRepo() *fakeIntentRepo {
	return &fakeIntentRepo{intents: make(map[string]*domain.PaymentIntentRecord)}
}

func (r *fakeIntentRepo) CreateIntent(intent *domain.PaymentIntentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *intent
	r.intents[intent.ID] = &stored
	return nil
}

func (r *fakeIntentRepo) UpdateIntentStatus(intentID string, status domain.IntentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.intents[intentID]
	if !ok {
		return domain.ErrEscrowNotFound
	}
	stored.Status = status
	now := time.Now()
	stored.CompletedAt = &now
	return nil
}

func (r *fakeIntentRepo) FindPendingIntents(olderThan time.Time) ([]*domain.PaymentIntentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.PaymentIntentRecord
	for _, stored := range r.intents {
		if stored.Status == domain.IntentPending && stored.CreatedAt.Before(olderThan) {
			copied := *stored
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeIntentRepo) byStatus(status domain.IntentStatus) []*domain.PaymentIntentRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.PaymentIntentRecord
	for _, stored := range r.intents {
		if stored.Status == status {
			copied := *stored
			result = append(result, &copied)
		}
	}
	return result
}

type fakeGateway struct {
	mu         sync.Mutex
	holds      map[string]domain.HoldStatus
	nextHoldID string

	createErr  error
	captureErr error
	refundErr  error
	statusErr  error

	captureCalls int
	refundCalls  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{holds: make(map[string]domain.HoldStatus), nextHoldID: "pi_test_1"}
}

func (g *fakeGateway) CreateHold(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.Hold, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.holds[g.nextHoldID] = domain.HoldStatusHeld
	return &domain.Hold{
		ID:           g.nextHoldID,
		ClientSecret: g.nextHoldID + "_secret",
		Amount:       amount,
		Currency:     currency,
		Status:       domain.HoldStatusHeld,
	}, nil
}

func (g *fakeGateway) CaptureHold(ctx context.Context, holdID string) (domain.HoldStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captureCalls++
	if g.captureErr != nil {
		return domain.HoldStatusUnknown, g.captureErr
	}
	g.holds[holdID] = domain.HoldStatusCaptured
	return domain.HoldStatusCaptured, nil
}

func (g *fakeGateway) RefundHold(ctx context.Context, holdID string) (domain.HoldStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundCalls++
	if g.refundErr != nil {
		return domain.HoldStatusUnknown, g.refundErr
	}
	g.holds[holdID] = domain.HoldStatusRefunded
	return domain.HoldStatusRefunded, nil
}

func (g *fakeGateway) GetHoldStatus(ctx context.Context, holdID string) (domain.HoldStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.statusErr != nil {
		return domain.HoldStatusUnknown, g.statusErr
	}
	status, ok := g.holds[holdID]
	if !ok {
		return domain.HoldStatusUnknown, nil
	}
	return status, nil
}

func (g *fakeGateway) setHold(holdID string, status domain.HoldStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.holds[holdID] = status
}

type fakeAuditLog struct {
	mu     sync.Mutex
	events []logger.EscrowStatusChangedEvent
}

func (l *fakeAuditLog) LogStatusChange(ctx context.Context, event logger.EscrowStatusChangedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *fakeAuditLog) recorded() []logger.EscrowStatusChangedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logger.EscrowStatusChangedEvent(nil), l.events...)
}
