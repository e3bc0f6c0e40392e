package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/application/usecase/order"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/internal/infra/web/middleware"
)

type Order struct {
	CreateOrderUseCase   order.CreateUseCase
	CancelOrderUseCase   order.CancelUseCase
	CompleteOrderUseCase order.CompleteUseCase
	Orders               outbound.OrderRepository
	Users                outbound.UserRepository
}

func NewOrderHandler(
	create order.CreateUseCase,
	cancel order.CancelUseCase,
	complete order.CompleteUseCase,
	orders outbound.OrderRepository,
	users outbound.UserRepository,
) *Order {
	return &Order{
		CreateOrderUseCase:   create,
		CancelOrderUseCase:   cancel,
		CompleteOrderUseCase: complete,
		Orders:               orders,
		Users:                users,
	}
}

func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	var dto order.CreateInput

	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, entity.NewValidationError("malformed request body"))
		return
	}

	// A customer orders for themselves; the customer_id field exists so an
	// admin can place an order on a customer's behalf.
	if dto.CustomerID == 0 {
		dto.CustomerID = middleware.ActorFromContext(r.Context())
	}

	output, err := h.CreateOrderUseCase.Execute(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

func (h *Order) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	output, err := h.CancelOrderUseCase.Execute(r.Context(), order.CancelInput{
		OrderID:      id,
		ActingUserID: middleware.ActorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *Order) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	output, err := h.CompleteOrderUseCase.Execute(r.Context(), order.CompleteInput{
		OrderID:      id,
		ActingUserID: middleware.ActorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// Get serves the read path: admins see any order, customers only their own.
func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
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

	found, err := h.Orders.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if !actor.HasRole(entity.RoleAdmin) && !found.OwnedBy(actor.ID) {
		writeError(w, entity.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, order.ToOutput(found))
}

// List shows a customer their own orders; admins can list any customer's
// with the customer_id query parameter, or everything without it.
func (h *Order) List(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Users)
	if err != nil {
		writeError(w, err)
		return
	}

	customerID := actor.ID
	if actor.HasRole(entity.RoleAdmin) {
		customerID = queryID(r, "customer_id")
	}
	status := entity.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.Orders.List(r.Context(), customerID, status)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]order.Output, len(orders))
	for i, o := range orders {
		out[i] = order.ToOutput(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, entity.NewValidationError("invalid id in path")
	}
	return id, nil
}

func queryID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return id
}

func resolveActor(r *http.Request, users outbound.UserRepository) (*entity.User, error) {
	actorID := middleware.ActorFromContext(r.Context())
	if actorID == 0 {
		return nil, entity.ErrUnauthorized
	}
	actor, err := users.FindByID(r.Context(), actorID)
	if err != nil {
		return nil, entity.ErrUnauthorized
	}
	return actor, nil
}
