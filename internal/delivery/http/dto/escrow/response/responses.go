package response

import (
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type EscrowResponse struct {
	ID           string     `json:"id"`
	ContractID   string     `json:"contract_id"`
	Title        string     `json:"title"`
	ClientID     string     `json:"client_id"`
	FreelancerID string     `json:"freelancer_id"`
	Amount       int64      `json:"amount"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	HoldID       string     `json:"hold_id,omitempty"`
	HoldStatus   string     `json:"hold_status,omitempty"`
	FundedAt     *time.Time `json:"funded_at,omitempty"`
	ReleasedAt   *time.Time `json:"released_at,omitempty"`
	DisputedAt   *time.Time `json:"disputed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromDomainEscrow(escrow *domain.Escrow) EscrowResponse {
	return EscrowResponse{
		ID:           escrow.ID,
		ContractID:   escrow.ContractID,
		Title:        escrow.Title,
		ClientID:     escrow.ClientID,
		FreelancerID: escrow.FreelancerID,
		Amount:       escrow.Amount,
		Currency:     escrow.Currency,
		Status:       string(escrow.Status),
		HoldID:       escrow.HoldID,
		HoldStatus:   string(escrow.HoldStatus),
		FundedAt:     escrow.FundedAt,
		ReleasedAt:   escrow.ReleasedAt,
		DisputedAt:   escrow.DisputedAt,
		CreatedAt:    escrow.CreatedAt,
	}
}

type FundingResponse struct {
	HoldID       string `json:"hold_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type DisputeResponse struct {
	ID         string     `json:"id"`
	EscrowID   string     `json:"escrow_id"`
	RaisedBy   string     `json:"raised_by"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	Resolution string     `json:"resolution,omitempty"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func FromDomainDispute(dispute *domain.Dispute) DisputeResponse {
	return DisputeResponse{
		ID:         dispute.ID,
		EscrowID:   dispute.EscrowID,
		RaisedBy:   dispute.RaisedBy,
		Reason:     dispute.Reason,
		Status:     string(dispute.Status),
		Resolution: dispute.Resolution,
		ResolvedBy: dispute.ResolvedBy,
		ResolvedAt: dispute.ResolvedAt,
		CreatedAt:  dispute.CreatedAt,
	}
}

type DisputeListResponse struct {
	Disputes    []DisputeResponse `json:"disputes"`
	CurrentPage int32             `json:"current_page"`
	TotalPages  int32             `json:"total_pages"`
	TotalItems  int32             `json:"total_items"`
}
