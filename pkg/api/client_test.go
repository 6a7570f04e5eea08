package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateOrder(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "alice", r.Header.Get(HeaderUserID))

		in := &CreateOrderRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(in))
		assert.True(t, decimal.NewFromInt(40).Equal(*in.Amount))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(OrderResponse{ID: id, Status: "NEW", Amount: *in.Amount})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithLogger(zerolog.Nop()))
	out, err := c.CreateOrder(context.Background(), "alice", decimal.NewFromInt(40), "book")
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)
	assert.Equal(t, "NEW", out.Status)
}

func TestClient_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"conflict: account already exists"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()), WithLogger(zerolog.Nop()))
	_, err := c.CreateAccount(context.Background(), "alice")

	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusConflict, re.StatusCode)
	assert.Contains(t, re.ResponseBody, "already exists")
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", WithLogger(zerolog.Nop()))
	_, err := c.Balance(context.Background(), "alice")
	assert.Error(t, err)
}
