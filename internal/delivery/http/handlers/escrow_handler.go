package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gigvault/escrow-service/internal/auth"
	"github.com/gigvault/escrow-service/internal/delivery/http/dto/escrow/request"
	"github.com/gigvault/escrow-service/internal/delivery/http/dto/escrow/response"
	"github.com/gigvault/escrow-service/internal/domain"
	disputedto "github.com/gigvault/escrow-service/internal/usecase/dto/dispute"
	escrowdto "github.com/gigvault/escrow-service/internal/usecase/dto/escrow"
	disputeusecase "github.com/gigvault/escrow-service/internal/usecase/dispute"
	escrowusecase "github.com/gigvault/escrow-service/internal/usecase/escrow"
)

type EscrowHandler struct {
	escrowUc  escrowusecase.EscrowUsecase
	disputeUc disputeusecase.DisputeUsecase
	directory *auth.UserDirectory
}

func NewEscrowHandler(
	escrowUc escrowusecase.EscrowUsecase,
	disputeUc disputeusecase.DisputeUsecase,
	directory *auth.UserDirectory) *EscrowHandler {
	return &EscrowHandler{
		escrowUc:  escrowUc,
		disputeUc: disputeUc,
		directory: directory,
	}
}

func (h *EscrowHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /escrows", h.CreateEscrow)
	mux.HandleFunc("GET /escrows", h.ListEscrows)
	mux.HandleFunc("GET /escrows/{id}", h.GetEscrow)
	mux.HandleFunc("POST /escrows/{id}/payment", h.InitiateFunding)
	mux.HandleFunc("POST /escrows/{id}/fund", h.FundEscrow)
	mux.HandleFunc("POST /escrows/{id}/release", h.ReleaseEscrow)
	mux.HandleFunc("POST /escrows/{id}/dispute", h.RaiseDispute)
	mux.HandleFunc("POST /escrows/{id}/resolve", h.ResolveDispute)
	mux.HandleFunc("GET /disputes", h.ListDisputes)
}

func (h *EscrowHandler) CreateEscrow(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r, domain.RoleClient)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req request.CreateEscrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	escrow, err := h.escrowUc.CreateEscrow(&escrowdto.CreateEscrowInput{
		ContractID:   req.ContractID,
		Title:        req.Title,
		ClientID:     user.ID,
		FreelancerID: req.FreelancerID,
		Amount:       req.Amount,
		Currency:     req.Currency,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response.FromDomainEscrow(escrow))
}

func (h *EscrowHandler) ListEscrows(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r, "")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	escrows, err := h.escrowUc.ListUserEscrows(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	payload := make([]response.EscrowResponse, len(escrows))
	for i, escrow := range escrows {
		payload[i] = response.FromDomainEscrow(escrow)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *EscrowHandler) GetEscrow(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r, "")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	escrow, err := h.escrowUc.GetEscrowByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !escrow.IsParty(user.ID) && user.Role != domain.RoleAdmin {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, response.FromDomainEscrow(escrow))
}

func (h *EscrowHandler) InitiateFunding(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r, domain.RoleClient)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	hold, err := h.escrowUc.InitiateFunding(r.Context(), r.PathValue("id"), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.FundingResponse{
		HoldID:       hold.ID,
		ClientSecret: hold.ClientSecret,
		Amount:       hold.Amount,
		Currency:     hold.Currency,
	})
}

func (h *EscrowHandler) FundEscrow(w http.ResponseWriter, r *http.Request) {
	if _, err := h.resolveUser(r, ""); err != nil {
		writeDomainError(w, err)
		return
	}

	var req request.FundEscrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HoldID == "" {
		writeError(w, http.StatusBadRequest, "hold_id is required")
		return
	}

	escrow, err := h.escrowUc.FundEscrow(r.Context(), r.PathValue("id"), req.HoldID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.FromDomainEscrow(escrow))
}

func (h *EscrowHandler) ReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r, "")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	escrow, err := h.escrowUc.ReleaseEscrow(r.Context(), r.PathValue("id"), user)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.FromDomainEscrow(escrow))
}

func (h *EscrowHandler) RaiseDispute(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolveUser(r, "")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req request.RaiseDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dispute, err := h.disputeUc.RaiseDispute(r.Context(), &disputedto.RaiseDisputeInput{
		EscrowID: r.PathValue("id"),
		Reason:   req.Reason,
	}, user)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response.FromDomainDispute(dispute))
}

func (h *EscrowHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	admin, err := h.resolveUser(r, domain.RoleAdmin)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req request.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	decision := domain.DisputeDecision(req.Decision)
	if decision != domain.DecisionReleaseToFreelancer && decision != domain.DecisionRefundToClient {
		writeError(w, http.StatusBadRequest, "decision must be release_to_freelancer or refund_to_client")
		return
	}

	escrow, err := h.disputeUc.ResolveDispute(r.Context(), &disputedto.ResolveDisputeInput{
		EscrowID: r.PathValue("id"),
		Decision: decision,
		Notes:    req.Notes,
	}, admin)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.FromDomainEscrow(escrow))
}

func (h *EscrowHandler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	if _, err := h.resolveUser(r, domain.RoleAdmin); err != nil {
		writeDomainError(w, err)
		return
	}

	input := disputedto.GetDisputesInput{Page: 1, Limit: 20}
	if status := r.URL.Query().Get("status"); status != "" {
		input.Status = &status
	}
	if escrowID := r.URL.Query().Get("escrow_id"); escrowID != "" {
		input.EscrowID = &escrowID
	}

	output, err := h.disputeUc.GetDisputes(&input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	disputes := make([]response.DisputeResponse, len(output.Disputes))
	for i, dispute := range output.Disputes {
		disputes[i] = response.FromDomainDispute(dispute)
	}
	writeJSON(w, http.StatusOK, response.DisputeListResponse{
		Disputes:    disputes,
		CurrentPage: output.Pagination.CurrentPage,
		TotalPages:  output.Pagination.TotalPages,
		TotalItems:  output.Pagination.TotalItems,
	})
}

func (h *EscrowHandler) resolveUser(r *http.Request, requiredRole domain.UserRole) (*domain.User, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return h.directory.ResolveCurrentUser(token, requiredRole)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, response.ErrorResponse{Error: message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrEscrowNotFound),
		errors.Is(err, domain.ErrDisputeNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidStateTransition):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflictingDispute):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrPaymentGateway):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
