package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"paysaga/internal/app/apperr"
	"paysaga/pkg/api"
)

var validate = validator.New()

// readBody into json struct
func readBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return fmt.Errorf("%w: body read: %v", apperr.ErrInvalidInput, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: json decode: %v", apperr.ErrInvalidInput, err)
	}

	return nil
}

func jsonString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// statusCode maps the error taxonomy onto HTTP
func statusCode(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrConcurrencyConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WriteError formatted in json, internal errors are not exposed
func WriteError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	WriteResponse(w, &api.ErrorResponse{Error: msg}, code)
}

// WriteResponse formatted in json
func WriteResponse(w http.ResponseWriter, v interface{}, statusCode int) {
	resBody, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(resBody)
}

type ValidationErrorResponse struct {
	Error  string           `json:"error"`
	Errors ValidationErrors `json:"errors"`
}

type ValidationErrors []ValidationError

type ValidationError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
	Value string `json:"value"`
}

// validateData and send errors, returns true if no validation errors
func validateData(w http.ResponseWriter, v interface{}) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		WriteError(w, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return false
	}

	res := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		res = append(res, ValidationError{
			Msg:   fe.Error(),
			Param: fe.Field(),
			Value: fmt.Sprintf("%v", fe.Value()),
		})
	}
	WriteResponse(w, ValidationErrorResponse{Error: apperr.ErrInvalidInput.Error(), Errors: res}, http.StatusBadRequest)
	return false
}

type ContextKeyUser struct{}

// WithContextUser stores the caller identity in ctx
func WithContextUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUser{}, userID)
}

func ReadContextUser(ctx context.Context) (string, error) {
	if userID, ok := ctx.Value(ContextKeyUser{}).(string); ok && userID != "" {
		return userID, nil
	}

	return "", apperr.ErrMissingUserID
}
