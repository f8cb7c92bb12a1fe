package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ===== Users =====

type userCreateRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (s *Server) userCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := s.userUC.Register(r.Context(), req.Email, req.Name, req.Phone, model.Role(req.Role))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrAlreadyExists):
				http.Error(w, "Email already registered", http.StatusConflict)
			default:
				http.Error(w, "Failed to register user", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) userGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		user, err := s.userUC.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get user", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// usersListHandler returns a paginated user list for the admin surface.
func (s *Server) usersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 50 // Default page size
		}
		if offset < 0 {
			offset = 0
		}

		users, err := s.userUC.List(r.Context(), offset, limit)
		if err != nil {
			http.Error(w, "Failed to list users", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data   []*model.User `json:"data"`
			Limit  int           `json:"limit"`
			Offset int           `json:"offset"`
		}{
			Data:   users,
			Limit:  limit,
			Offset: offset,
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// ===== Properties =====

type propertyPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	ListingType string   `json:"listing_type"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        float64  `json:"area"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Address     string   `json:"address"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
	OwnerUserID string   `json:"owner_user_id"`
}

func (p *propertyPayload) apply(dst *model.Property) {
	dst.Title = p.Title
	dst.Description = p.Description
	dst.Type = p.Type
	dst.ListingType = model.ListingType(p.ListingType)
	dst.Bedrooms = p.Bedrooms
	dst.Bathrooms = p.Bathrooms
	dst.Area = p.Area
	dst.Price = p.Price
	dst.Location = p.Location
	dst.Address = p.Address
	dst.Images = p.Images
	dst.Features = p.Features
}

func (s *Server) propertyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req propertyPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		prop, err := model.NewProperty(req.OwnerUserID, req.Title, req.Price, model.ListingType(req.ListingType))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.apply(prop)

		created, err := s.propertyUC.Create(r.Context(), prop)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrNotFound):
				http.Error(w, "Owner not found", http.StatusNotFound)
			default:
				http.Error(w, "Failed to create property", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) propertyGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prop, err := s.propertyUC.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get property", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, prop)
	}
}

func (s *Server) propertiesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		if limit <= 0 {
			limit = 50
		}

		f := repository.PropertyFilter{
			Status:      model.PropertyStatus(q.Get("status")),
			ListingType: model.ListingType(q.Get("listing_type")),
			Location:    q.Get("location"),
			OwnerUserID: q.Get("owner"),
			Limit:       limit,
		}

		props, err := s.propertyUC.List(r.Context(), f)
		if err != nil {
			http.Error(w, "Failed to list properties", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.Property `json:"data"`
		}{Data: props}
		writeJSON(w, http.StatusOK, response)
	}
}

func (s *Server) propertyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req propertyPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		prop, err := s.propertyUC.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get property", http.StatusInternalServerError)
			return
		}
		req.apply(prop)

		if err := s.propertyUC.Update(r.Context(), prop); err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to update property", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, prop)
	}
}

func (s *Server) propertyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester := r.URL.Query().Get("requester")

		err := s.propertyUC.Delete(r.Context(), chi.URLParam(r, "id"), requester)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, "Forbidden", http.StatusForbidden)
			default:
				http.Error(w, "Failed to delete property", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ===== Reviews =====

type reviewCreateRequest struct {
	UserID  string `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reviewCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		review, err := s.reviewUC.Add(r.Context(), chi.URLParam(r, "id"), req.UserID, req.Rating, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrNotFound):
				http.Error(w, "Property not found", http.StatusNotFound)
			default:
				http.Error(w, "Failed to add review", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusCreated, review)
	}
}

func (s *Server) reviewsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 50
		}

		reviews, err := s.reviewUC.ListByProperty(r.Context(), chi.URLParam(r, "id"), limit)
		if err != nil {
			http.Error(w, "Failed to list reviews", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.Review `json:"data"`
		}{Data: reviews}
		writeJSON(w, http.StatusOK, response)
	}
}

// ===== Saved searches =====

type searchCreateRequest struct {
	Name    string            `json:"name"`
	Filters map[string]string `json:"filters"`
}

func (s *Server) searchCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		search, err := s.searchUC.Save(r.Context(), chi.URLParam(r, "id"), req.Name, req.Filters)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to save search", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, search)
	}
}

func (s *Server) searchesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		searches, err := s.searchUC.ListByUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Failed to list searches", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.SavedSearch `json:"data"`
		}{Data: searches}
		writeJSON(w, http.StatusOK, response)
	}
}

func (s *Server) searchDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.searchUC.Delete(r.Context(), chi.URLParam(r, "searchID"), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			default:
				http.Error(w, "Failed to delete search", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ===== Approvals =====

type approvalSubmitRequest struct {
	ApplicantName string `json:"applicant_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	Company       string `json:"company"`
	License       string `json:"license"`
	Experience    string `json:"experience"`
}

func (s *Server) approvalSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approvalSubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		a, err := model.NewApproval(req.ApplicantName, req.Email, req.Phone, model.Role(req.Role))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a.Company = req.Company
		a.License = req.License
		a.Experience = req.Experience

		submitted, err := s.approvalUC.Submit(r.Context(), a)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				http.Error(w, "Application already on file", http.StatusConflict)
				return
			}
			http.Error(w, "Failed to submit application", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, submitted)
	}
}

func (s *Server) approvalsPendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := s.approvalUC.ListPending(r.Context())
		if err != nil {
			http.Error(w, "Failed to list applications", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.Approval `json:"data"`
		}{Data: pending}
		writeJSON(w, http.StatusOK, response)
	}
}

func (s *Server) approvalApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.approvalUC.Approve(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, "Application is not pending", http.StatusConflict)
			default:
				http.Error(w, "Failed to approve application", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

type approvalRejectRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) approvalRejectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approvalRejectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		err := s.approvalUC.Reject(r.Context(), chi.URLParam(r, "id"), req.Reason)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, "Application is not pending", http.StatusConflict)
			default:
				http.Error(w, "Failed to reject application", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ===== Referrals =====

type referralCreateRequest struct {
	Code          string `json:"code"`
	ReferredEmail string `json:"referred_email"`
}

func (s *Server) referralCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req referralCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ref, err := s.referralUC.Record(r.Context(), req.Code, req.ReferredEmail)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, "code and referred_email are required", http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to record referral", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, ref)
	}
}

func (s *Server) referralsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "code query parameter is required", http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 100
		}

		refs, err := s.referralUC.ListByCode(r.Context(), code, limit)
		if err != nil {
			http.Error(w, "Failed to list referrals", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.Referral `json:"data"`
		}{Data: refs}
		writeJSON(w, http.StatusOK, response)
	}
}

// ===== Platform settings =====

func (s *Server) settingsGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := s.settingsUC.Get(r.Context())
		if err != nil {
			http.Error(w, "Failed to load settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

func (s *Server) settingsUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Decode over the defaults so omitted fields keep their default
		// values rather than zeroing out.
		settings := model.DefaultPlatformSettings()
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.settingsUC.Update(r.Context(), settings); err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, "Invalid settings values", http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to save settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// ===== Subscriptions =====

func (s *Server) subscriptionGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := s.subUC.GetByUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get subscription", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

func (s *Server) subscriptionsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 100
		}

		subs, err := s.subUC.List(r.Context(), limit)
		if err != nil {
			http.Error(w, "Failed to list subscriptions", http.StatusInternalServerError)
			return
		}

		response := struct {
			Data []*model.Subscription `json:"data"`
		}{Data: subs}
		writeJSON(w, http.StatusOK, response)
	}
}

// ===== Admin session =====

type adminLoginRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) adminLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if s.apiKey == "" || req.APIKey != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		token, err := s.auth.Mint(w)
		if err != nil {
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Token string `json:"token"`
		}{Token: token})
	}
}

func (s *Server) adminLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.auth.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ===== Stats =====

func (s *Server) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		totalUsers, activeByPlan, err := s.statsUC.Totals(ctx)
		if err != nil {
			http.Error(w, "Failed to get totals", http.StatusInternalServerError)
			return
		}

		week, month, year, err := s.statsUC.Revenue(ctx)
		if err != nil {
			http.Error(w, "Failed to get revenue", http.StatusInternalServerError)
			return
		}

		response := struct {
			TotalUsers       int            `json:"total_users"`
			ActiveSubsByPlan map[string]int `json:"active_subs_by_plan"`
			Revenue          struct {
				Week  float64 `json:"week"`
				Month float64 `json:"month"`
				Year  float64 `json:"year"`
			} `json:"revenue"`
		}{
			TotalUsers:       totalUsers,
			ActiveSubsByPlan: activeByPlan,
		}
		response.Revenue.Week = week
		response.Revenue.Month = month
		response.Revenue.Year = year

		writeJSON(w, http.StatusOK, response)
	}
}
