package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/model"
	"paysaga/pkg/api"
)

type AccountService interface {
	Create(ctx context.Context, userID string) (*model.Account, error)
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*model.Account, *model.Transaction, error)
	Balance(ctx context.Context, userID string) (*model.Account, error)
	Transactions(ctx context.Context, userID string) ([]*model.Transaction, error)
}

type AccountHandler struct {
	accounts AccountService
}

func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Account.Create")

	userID, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.accounts.Create(ctx, userID)
	if err != nil {
		l.Debug().Err(err).Msg("Account create failed")
		WriteError(w, err)
		return
	}

	WriteResponse(w, api.AccountResponse{AccountID: m.ID, UserID: m.UserID, Balance: m.Balance}, http.StatusCreated)
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Account.Deposit")

	userID, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	in := &api.DepositRequest{}
	if err := readBody(r, in); err != nil {
		l.Debug().Err(err).Msg("Body read failed")
		WriteError(w, err)
		return
	}
	if !validateData(w, in) {
		return
	}

	acc, t, err := h.accounts.Deposit(ctx, userID, *in.Amount)
	if err != nil {
		l.Debug().Err(err).Msg("Deposit failed")
		WriteError(w, err)
		return
	}

	WriteResponse(w, api.DepositResponse{Balance: acc.Balance, TransactionID: t.ID}, http.StatusOK)
}

func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Account.Balance")

	userID, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	acc, err := h.accounts.Balance(ctx, userID)
	if err != nil {
		l.Debug().Err(err).Send()
		WriteError(w, err)
		return
	}

	WriteResponse(w, api.BalanceResponse{UserID: acc.UserID, Balance: acc.Balance}, http.StatusOK)
}

func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Account.Transactions")

	userID, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	mm, err := h.accounts.Transactions(ctx, userID)
	if err != nil {
		l.Debug().Err(err).Send()
		WriteError(w, err)
		return
	}

	out := make([]api.TransactionResponse, 0, len(mm))
	for _, m := range mm {
		tr := api.TransactionResponse{
			ID:        m.ID,
			Type:      m.TypeID.String(),
			Amount:    m.Amount,
			CreatedAt: m.CreatedAt,
		}
		if m.OrderID.Valid {
			id := m.OrderID.UUID
			tr.OrderID = &id
		}
		out = append(out, tr)
	}

	l.Debug().Msgf("sending transactions %s", jsonString(out))
	WriteResponse(w, out, http.StatusOK)
}
