package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"icecream-service/internal/models"
	"icecream-service/internal/repository"
)

const rankedLimit = 3

type FlavourHandler struct {
	repo repository.FlavourRepository
}

func NewFlavourHandler(repo repository.FlavourRepository) *FlavourHandler {
	return &FlavourHandler{repo: repo}
}

type FlavourRequest struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	PricePerServing float64 `json:"price_per_serving"`
}

type flavourMessage struct {
	Message string          `json:"message"`
	Flavour *models.Flavour `json:"flavour,omitempty"`
}

// flavourPriceView renders prices as fixed two-decimal strings for the
// price-range listing.
type flavourPriceView struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	PricePerServing string `json:"price_per_serving"`
}

func (h *FlavourHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	flavours, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get flavours", nil)
		return
	}

	if flavours == nil {
		flavours = []models.Flavour{}
	}
	writeJSON(w, http.StatusOK, flavours)
}

func (h *FlavourHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid flavour id", nil)
		return
	}

	flavour, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "flavour not found", "failed to get flavour")
		return
	}

	writeJSON(w, http.StatusOK, flavour)
}

func (h *FlavourHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req FlavourRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	f := models.Flavour{
		Name:            req.Name,
		Type:            req.Type,
		PricePerServing: req.PricePerServing,
	}

	if err := h.repo.Create(r.Context(), &f); err != nil {
		writeRepoError(w, err, "flavour not found", "failed to create flavour")
		return
	}

	w.Header().Set("Location", "/api/flavours/"+strconv.Itoa(f.ID))
	writeJSON(w, http.StatusCreated, flavourMessage{Message: "flavour created", Flavour: &f})
}

func (h *FlavourHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid flavour id", nil)
		return
	}

	var req FlavourRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	f := models.Flavour{
		ID:              id,
		Name:            req.Name,
		Type:            req.Type,
		PricePerServing: req.PricePerServing,
	}

	if err := h.repo.Replace(r.Context(), &f); err != nil {
		writeRepoError(w, err, "flavour not found", "failed to replace flavour")
		return
	}

	writeJSON(w, http.StatusOK, flavourMessage{Message: "flavour replaced", Flavour: &f})
}

func (h *FlavourHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid flavour id", nil)
		return
	}

	fields, ok := decodePatch(w, r)
	if !ok {
		return
	}

	flavour, err := h.repo.Patch(r.Context(), id, fields)
	if err != nil {
		writeRepoError(w, err, "flavour not found", "failed to patch flavour")
		return
	}

	writeJSON(w, http.StatusOK, flavourMessage{Message: "flavour updated", Flavour: flavour})
}

func (h *FlavourHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid flavour id", nil)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "flavour not found", "failed to delete flavour")
		return
	}

	writeJSON(w, http.StatusOK, flavourMessage{Message: "flavour deleted"})
}

func (h *FlavourHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	flavourType := chi.URLParam(r, "type")
	if flavourType == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "type is required", nil)
		return
	}

	flavours, err := h.repo.GetByType(r.Context(), flavourType)
	if err != nil {
		writeRepoError(w, err, "no flavours of this type", "failed to get flavours")
		return
	}

	// A filter that matches nothing is a 404, unlike the plain listing.
	if len(flavours) == 0 {
		writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("no flavours of type %q found", flavourType), nil)
		return
	}

	writeJSON(w, http.StatusOK, flavours)
}

func (h *FlavourHandler) GetByPriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, err := strconv.ParseFloat(chi.URLParam(r, "min"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid min price", nil)
		return
	}
	maxPrice, err := strconv.ParseFloat(chi.URLParam(r, "max"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid max price", nil)
		return
	}

	flavours, err := h.repo.GetByPriceRange(r.Context(), minPrice, maxPrice)
	if err != nil {
		writeRepoError(w, err, "no flavours in this price range", "failed to get flavours")
		return
	}

	if len(flavours) == 0 {
		writeError(w, http.StatusNotFound, "not_found",
			fmt.Sprintf("no flavours between %.2f and %.2f found", minPrice, maxPrice), nil)
		return
	}

	views := make([]flavourPriceView, 0, len(flavours))
	for _, f := range flavours {
		views = append(views, flavourPriceView{
			ID:              f.ID,
			Name:            f.Name,
			Type:            f.Type,
			PricePerServing: fmt.Sprintf("%.2f", f.PricePerServing),
		})
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *FlavourHandler) GetCheapest(w http.ResponseWriter, r *http.Request) {
	h.getRanked(w, r, false)
}

func (h *FlavourHandler) GetPriciest(w http.ResponseWriter, r *http.Request) {
	h.getRanked(w, r, true)
}

func (h *FlavourHandler) getRanked(w http.ResponseWriter, r *http.Request, priciest bool) {
	var flavours []models.Flavour
	var err error

	if priciest {
		flavours, err = h.repo.GetPriciest(r.Context(), rankedLimit)
	} else {
		flavours, err = h.repo.GetCheapest(r.Context(), rankedLimit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get flavours", nil)
		return
	}

	if flavours == nil {
		flavours = []models.Flavour{}
	}
	writeJSON(w, http.StatusOK, flavours)
}

func (h *FlavourHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get flavour stats", nil)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
