package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"paysaga/internal/app/apperr"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/model"
	"paysaga/pkg/api"
)

type OrderService interface {
	Create(ctx context.Context, userID string, amount decimal.Decimal, description string) (*model.Order, error)
	List(ctx context.Context, userID string) ([]*model.Order, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error)
}

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{
		orders: orders,
	}
}

func orderResponse(m *model.Order) api.OrderResponse {
	return api.OrderResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Description: m.Description,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Order.Create")

	userID, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	in := &api.CreateOrderRequest{}
	if err := readBody(r, in); err != nil {
		l.Debug().Err(err).Msg("Body read failed")
		WriteError(w, err)
		return
	}
	if !validateData(w, in) {
		return
	}

	m, err := h.orders.Create(ctx, userID, *in.Amount, in.Description)
	if err != nil {
		l.Debug().Err(err).Msg("Order create failed")
		WriteError(w, err)
		return
	}

	WriteResponse(w, orderResponse(m), http.StatusCreated)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Order.List")

	userID, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	mm, err := h.orders.List(ctx, userID)
	if err != nil {
		l.Debug().Err(err).Send()
		WriteError(w, err)
		return
	}

	out := make([]api.OrderResponse, 0, len(mm))
	for _, m := range mm {
		out = append(out, orderResponse(m))
	}

	l.Debug().Msgf("response json: %s", jsonString(out))

	WriteResponse(w, out, http.StatusOK)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Order.Get")

	userID, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		WriteError(w, fmt.Errorf("%w: order id: %v", apperr.ErrInvalidInput, err))
		return
	}

	m, err := h.orders.Get(ctx, userID, id)
	if err != nil {
		l.Debug().Err(err).Str("order_id", id.String()).Send()
		WriteError(w, err)
		return
	}

	WriteResponse(w, orderResponse(m), http.StatusOK)
}
