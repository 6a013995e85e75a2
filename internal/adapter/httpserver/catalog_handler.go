package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secondchance/catalog-service/internal/catalog/domain"
	"github.com/secondchance/catalog-service/internal/catalog/usecase"
	"github.com/secondchance/catalog-service/internal/platform/metrics"
	"go.uber.org/zap"
)

const maxUploadSize = 32 << 20

type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, m *metrics.Manager, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, metrics: m, logger: log}
}

// Search filters items by the optional query criteria. A malformed
// age_years bound fails open: the criterion is dropped, the search runs.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Name:      q.Get("name"),
		Category:  q.Get("category"),
		Condition: q.Get("condition"),
	}
	if raw := q.Get("age_years"); raw != "" {
		if bound, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxAgeYears = &bound
		}
	}

	items, err := h.catalog.Search(r.Context(), filter)
	if err != nil {
		h.writeError(w, "search", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		h.writeError(w, "list", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	item, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "get", err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// Create accepts a multipart form with the item fields and an optional
// file field "image".
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	ageDays := 0
	if raw := r.FormValue("age_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "age_days must be an integer")
			return
		}
		ageDays = parsed
	}

	input := domain.NewItem{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Condition:   r.FormValue("condition"),
		AgeDays:     ageDays,
		Description: r.FormValue("description"),
	}

	upload, err := h.imageUpload(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Failed to read image upload")
		return
	}

	item, err := h.catalog.Create(r.Context(), input, upload)
	if err != nil {
		h.writeError(w, "create", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req struct {
		Category    string `json:"category"`
		Condition   string `json:"condition"`
		AgeDays     int    `json:"age_days"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := domain.ItemUpdate{
		Category:    req.Category,
		Condition:   req.Condition,
		AgeDays:     req.AgeDays,
		Description: req.Description,
	}
	if err := h.catalog.Update(r.Context(), id, update); err != nil {
		h.writeError(w, "update", err)
		return
	}
	respondMessage(w, http.StatusOK, "Item updated successfully")
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.writeError(w, "delete", err)
		return
	}
	respondMessage(w, http.StatusOK, "Item deleted successfully")
}

func (h *CatalogHandler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid item id")
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) imageUpload(r *http.Request) (*usecase.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &usecase.ImageUpload{FileName: header.Filename, Data: data}, nil
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	var kind string
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		kind = "not_found"
		respondMessage(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, domain.ErrInvalidItemData):
		kind = "validation"
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		kind = "internal"
		h.logger.Error("catalog request failed", zap.String("handler", handlerName), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
	if h.metrics != nil {
		h.metrics.APIErrorsTotal.WithLabelValues(handlerName, kind).Inc()
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}
