package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/application/usecase/request"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/internal/infra/web/middleware"
)

type Request struct {
	CreateRequestUseCase request.CreateUseCase
	AssignUseCase        request.AssignUseCase
	UpdateStatusUseCase  request.UpdateStatusUseCase
	Requests             outbound.ServiceRequestRepository
	Users                outbound.UserRepository
}

func NewRequestHandler(
	create request.CreateUseCase,
	assign request.AssignUseCase,
	updateStatus request.UpdateStatusUseCase,
	requests outbound.ServiceRequestRepository,
	users outbound.UserRepository,
) *Request {
	return &Request{
		CreateRequestUseCase: create,
		AssignUseCase:        assign,
		UpdateStatusUseCase:  updateStatus,
		Requests:             requests,
		Users:                users,
	}
}

func (h *Request) Create(w http.ResponseWriter, r *http.Request) {
	var dto request.CreateInput

	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, entity.NewValidationError("malformed request body"))
		return
	}

	if dto.CustomerID == 0 {
		dto.CustomerID = middleware.ActorFromContext(r.Context())
	}

	output, err := h.CreateRequestUseCase.Execute(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

func (h *Request) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var dto request.AssignInput
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, entity.NewValidationError("malformed request body"))
		return
	}
	dto.RequestID = id
	dto.ActingUserID = middleware.ActorFromContext(r.Context())

	// A specialist claiming work for themselves can leave the body empty.
	if dto.SpecialistID == 0 {
		dto.SpecialistID = dto.ActingUserID
	}

	output, err := h.AssignUseCase.Execute(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *Request) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var dto request.UpdateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, entity.NewValidationError("malformed request body"))
		return
	}
	dto.RequestID = id
	dto.ActingUserID = middleware.ActorFromContext(r.Context())

	output, err := h.UpdateStatusUseCase.Execute(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// List scopes results by role: customers see their own requests, specialists
// their assignments, admins everything (optionally filtered by query).
func (h *Request) List(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	var customerID, specialistID int64
	switch {
	case actor.HasRole(entity.RoleAdmin):
		customerID = queryID(r, "customer_id")
		specialistID = queryID(r, "specialist_id")
	case actor.HasRole(entity.RoleSpecialist):
		specialistID = actor.ID
	default:
		customerID = actor.ID
	}
	status := entity.RequestStatus(r.URL.Query().Get("status"))

	requests, err := h.Requests.List(r.Context(), customerID, specialistID, status)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]request.Output, len(requests))
	for i, req := range requests {
		out[i] = request.ToOutput(req)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get serves the read path: admins see any request, customers their own,
// specialists the ones assigned to them.
func (h *Request) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	actor, err := resolveActor(r, h.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	found, err := h.Requests.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	allowed := actor.HasRole(entity.RoleAdmin) ||
		found.CustomerID() == actor.ID ||
		found.AssignedTo(actor.ID)
	if !allowed {
		writeError(w, entity.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, request.ToOutput(found))
}
