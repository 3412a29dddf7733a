package handlers

import (
	"net/http"

	"icecream-service/internal/models"
	"icecream-service/internal/repository"
)

type OrderHandler struct {
	repo repository.OrderRepository
}

func NewOrderHandler(repo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

type OrderCreateRequest struct {
	CustomerID int `json:"customer_id"`
	FlavourID  int `json:"flavour_id"`
	Quantity   int `json:"quantity"`
}

type orderCreatedResponse struct {
	Message    string  `json:"message"`
	OrderID    int     `json:"order_id"`
	TotalPrice float64 `json:"total_price"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderCreateRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	o := models.Order{
		CustomerID: req.CustomerID,
		FlavourID:  req.FlavourID,
		Quantity:   req.Quantity,
	}

	if err := h.repo.Create(r.Context(), &o); err != nil {
		writeRepoError(w, err, err.Error(), "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, orderCreatedResponse{
		Message:    "order created",
		OrderID:    o.ID,
		TotalPrice: o.TotalPrice,
	})
}

func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get orders", nil)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid order id", nil)
		return
	}

	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "order not found", "failed to get order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// GetByCustomer lists a customer's order history with flavour names joined
// in. A customer with no orders gets an empty array, not a 404.
func (h *OrderHandler) GetByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid customer id", nil)
		return
	}

	orders, err := h.repo.GetByCustomerID(r.Context(), customerID)
	if err != nil {
		writeRepoError(w, err, "customer not found", "failed to get customer orders")
		return
	}

	if orders == nil {
		orders = []models.CustomerOrder{}
	}
	writeJSON(w, http.StatusOK, orders)
}
