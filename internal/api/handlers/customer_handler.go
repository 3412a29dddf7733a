package handlers

import (
	"net/http"
	"strconv"

	"icecream-service/internal/models"
	"icecream-service/internal/repository"
)

type CustomerHandler struct {
	repo repository.CustomerRepository
}

func NewCustomerHandler(repo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

type CustomerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

type customerMessage struct {
	Message  string           `json:"message"`
	Customer *models.Customer `json:"customer,omitempty"`
}

func (h *CustomerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get customers", nil)
		return
	}

	if customers == nil {
		customers = []models.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid customer id", nil)
		return
	}

	customer, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "customer not found", "failed to get customer")
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	c := models.Customer{
		Name:          req.Name,
		Email:         req.Email,
		LoyaltyPoints: req.LoyaltyPoints,
	}

	if err := h.repo.Create(r.Context(), &c); err != nil {
		writeRepoError(w, err, "customer not found", "failed to create customer")
		return
	}

	w.Header().Set("Location", "/api/customers/"+strconv.Itoa(c.ID))
	writeJSON(w, http.StatusCreated, customerMessage{Message: "customer created", Customer: &c})
}

func (h *CustomerHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid customer id", nil)
		return
	}

	var req CustomerRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	c := models.Customer{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		LoyaltyPoints: req.LoyaltyPoints,
	}

	if err := h.repo.Replace(r.Context(), &c); err != nil {
		writeRepoError(w, err, "customer not found", "failed to replace customer")
		return
	}

	writeJSON(w, http.StatusOK, customerMessage{Message: "customer replaced", Customer: &c})
}

func (h *CustomerHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid customer id", nil)
		return
	}

	fields, ok := decodePatch(w, r)
	if !ok {
		return
	}

	customer, err := h.repo.Patch(r.Context(), id, fields)
	if err != nil {
		writeRepoError(w, err, "customer not found", "failed to patch customer")
		return
	}

	writeJSON(w, http.StatusOK, customerMessage{Message: "customer updated", Customer: customer})
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid customer id", nil)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "customer not found", "failed to delete customer")
		return
	}

	writeJSON(w, http.StatusOK, customerMessage{Message: "customer deleted"})
}
