package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	publisher "github.com/gigvault/escrow-service/internal/infrastructure/kafka"
	"github.com/gigvault/escrow-service/internal/infrastructure/metrics"
	"github.com/gigvault/escrow-service/internal/usecase"
	escrowops "github.com/gigvault/escrow-service/internal/usecase/escrow"
)

var testMetrics = metrics.NewEscrowMetrics()

var (
	testClient     = &domain.User{ID: "user-client", Email: "client@example.com", Name: "Client", Role: domain.RoleClient}
	testFreelancer = &domain.User{ID: "user-freelancer", Email: "dev@example.com", Name: "Freelancer", Role: domain.RoleFreelancer}
	testAdmin      = &domain.User{ID: "user-admin", Email: "ops@example.com", Name: "Admin", Role: domain.RoleAdmin}
)

type testEnv struct {
	escrowRepo  *fakeEscrowRepo
	disputeRepo *fakeDisputeRepo
	intentRepo  *fakeIntentRepo
	gateway     *fakeGateway
	escrowUc    *escrowops.DefaultEscrowUsecase
	disputeUc   *DefaultDisputeUsecase
}

// newTestEnv wires the dispute usecase against a real escrow operation
// processor so resolutions exercise the same money path as releases. The
// two usecases share one keyed mutex, as in production.
func newTestEnv() *testEnv {
	escrowRepo := newFakeEscrowRepo()
	disputeRepo := newFakeDisputeRepo()
	intentRepo := newFakeIntentRepo()
	gateway := newFakeGateway()
	locks := usecase.NewKeyedMutex()

	escrowUc := escrowops.NewDefaultEscrowUsecase(
		escrowRepo,
		newFakeUserRepo(testClient, testFreelancer, testAdmin),
		intentRepo,
		gateway,
		publisher.NewKafkaPublisher([]string{"127.0.0.1:9092"}, "escrow-events-test"),
		testMetrics,
		nil,
		locks,
	)
	disputeUc := NewDefaultDisputeUsecase(
		disputeRepo,
		escrowRepo,
		escrowUc,
		publisher.NewKafkaPublisher([]string{"127.0.0.1:9092"}, "dispute-events-test"),
		testMetrics,
		locks,
	)
	return &testEnv{
		escrowRepo:  escrowRepo,
		disputeRepo: disputeRepo,
		intentRepo:  intentRepo,
		gateway:     gateway,
		escrowUc:    escrowUc,
		disputeUc:   disputeUc,
	}
}

func (env *testEnv) seedFundedEscrow() *domain.Escrow {
	now := time.Now().Add(-time.Hour)
	escrow := &domain.Escrow{
		ID:           "esc_test0000000001",
		ContractID:   "contract-1",
		Title:        "Landing page build",
		ClientID:     testClient.ID,
		FreelancerID: testFreelancer.ID,
		Amount:       50000,
		Currency:     "usd",
		Status:       domain.EscrowStatusFunded,
		HoldID:       "pi_test_1",
		FundedAt:     &now,
		CreatedAt:    now,
	}
	_ = env.escrowRepo.CreateEscrow(escrow)
	env.gateway.setHold(escrow.HoldID, domain.HoldStatusHeld)
	return escrow
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
	return nil, nil
}

type fakeDisputeRepo struct {
	mu       sync.Mutex
	disputes map[string]*domain.Dispute
}

func newFakeDisputeRepo() *fakeDisputeRepo {
	return &fakeDisputeRepo{disputes: make(map[string]*domain.Dispute)}
}

func (r *fakeDisputeRepo) CreateDispute(dispute *domain.Dispute) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *dispute
	r.disputes[dispute.ID] = &stored
	return nil
}

func (r *fakeDisputeRepo) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.disputes[disputeID]
	if !ok {
		return nil, domain.ErrDisputeNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeDisputeRepo) GetOpenDisputeByEscrowID(escrowID string) (*domain.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.disputes {
		if stored.EscrowID == escrowID && stored.Status == domain.DisputeOpen {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, domain.ErrDisputeNotFound
}

func (r *fakeDisputeRepo) ResolveDispute(disputeID, resolution, resolvedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.disputes[disputeID]
	if !ok || stored.Status != domain.DisputeOpen {
		return domain.ErrDisputeNotFound
	}
	now := time.Now()
	stored.Status = domain.DisputeResolved
	stored.Resolution = resolution
	stored.ResolvedBy = resolvedBy
	stored.ResolvedAt = &now
	return nil
}

func (r *fakeDisputeRepo) GetDisputes(filter domain.DisputeFilter, page, limit int64) ([]*domain.Dispute, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Dispute
	for _, stored := range r.disputes {
		if filter.EscrowID != nil && stored.EscrowID != *filter.EscrowID {
			continue
		}
		if filter.RaisedBy != nil && stored.RaisedBy != *filter.RaisedBy {
			continue
		}
		if filter.Status != nil && string(stored.Status) != *filter.Status {
			continue
		}
		copied := *stored
		matched = append(matched, &copied)
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
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
	return nil, nil
}

type fakeGateway struct {
	mu    sync.Mutex
	holds map[string]domain.HoldStatus

	captureErr error
	refundErr  error

	captureCalls int
	refundCalls  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{holds: make(map[string]domain.HoldStatus)}
}

func (g *fakeGateway) CreateHold(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.Hold, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.holds["pi_test_1"] = domain.HoldStatusHeld
	return &domain.Hold{ID: "pi_test_1", Amount: amount, Currency: currency, Status: domain.HoldStatusHeld}, nil
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
