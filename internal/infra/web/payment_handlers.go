package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
)

type checkoutRequest struct {
	UserID   string            `json:"user_id"`
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Plan     string            `json:"plan"`
	Role     string            `json:"role"`
	Method   string            `json:"method"`
	Metadata map[string]string `json:"metadata"`
}

// checkoutHandler runs a full checkout attempt and returns the terminal
// outcome. A recording failure still answers 502 so the caller knows the
// charge went through but was not applied; the sweeper retries it.
func (s *Server) checkoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := s.paymentUC.Pay(r.Context(), &model.PaymentRequest{
			UserID:   req.UserID,
			Amount:   req.Amount,
			Currency: req.Currency,
			Plan:     model.PlanCadence(req.Plan),
			Role:     model.Role(req.Role),
			Method:   model.PaymentMethod(req.Method),
			Metadata: req.Metadata,
		})
		if err != nil {
			if errors.Is(err, domain.ErrRecordingFailed) {
				writeJSON(w, http.StatusBadGateway, result)
				return
			}
			http.Error(w, "Checkout failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) paymentGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.paymentUC.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get payment", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) paymentsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 50
		}

		payments, err := s.paymentUC.ListByUser(r.Context(), chi.URLParam(r, "id"), limit)
		if err != nil {
			http.Error(w, "Failed to list payments", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.Payment `json:"data"`
		}{Data: payments}
		writeJSON(w, http.StatusOK, response)
	}
}
