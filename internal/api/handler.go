package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"stalltrack/m/domain"
	"stalltrack/m/internal/export"
	"stalltrack/m/internal/sales"
	"stalltrack/m/internal/store"
)

// Handler bundles dependencies for HTTP handlers and owns the working
// session state: the catalog and sales history loaded from the stores at
// startup, mutated in place by requests and persisted on the commit points
// (sale submission and catalog commit). The mutex serializes requests over
// that state; the persisted files themselves assume a single active editor.
type Handler struct {
	catalog *store.CatalogStore
	ledger  *store.LedgerStore
	applier *sales.Applier
	now     func() time.Time

	mu       sync.Mutex
	products []domain.Product
	history  []domain.SaleEvent
}

// New constructs a Handler with the session state loaded from both stores.
func New(catalog *store.CatalogStore, ledger *store.LedgerStore) (*Handler, error) {
	h := &Handler{
		catalog: catalog,
		ledger:  ledger,
		applier: sales.NewApplier(catalog, ledger),
		now:     time.Now,
	}
	if err := h.reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// reload replaces the working state with what is on disk. Callers other than
// New must hold the mutex.
func (h *Handler) reload() error {
	products, err := h.catalog.Load()
	if err != nil {
		return err
	}
	history, err := h.ledger.Load()
	if err != nil {
		return err
	}
	h.products = products
	h.history = history
	return nil
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", h.health)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.getCatalog)
		r.Post("/", h.appendProduct)
		r.Put("/{index}", h.editCell)
		r.Post("/commit", h.commitCatalog)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", h.submitSale)
		r.Post("/preview", h.previewCart)
		r.Get("/history", h.salesHistory)
	})

	r.Get("/reports/summary", h.summary)
	r.Get("/export", h.exportCatalog)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Catalog handlers

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondJSON(w, http.StatusOK, h.products)
}

type appendProductRequest struct {
	Name              string `json:"name"`
	TotalQuantity     int64  `json:"total_quantity"`
	SoldQuantity      int64  `json:"sold_quantity"`
	RemainingQuantity int64  `json:"remaining_quantity"`
	Price             int64  `json:"price"`
}

func (h *Handler) appendProduct(w http.ResponseWriter, r *http.Request) {
	var req appendProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.products = store.AppendRow(h.products, domain.Product{
		Name:              req.Name,
		TotalQuantity:     req.TotalQuantity,
		SoldQuantity:      req.SoldQuantity,
		RemainingQuantity: req.RemainingQuantity,
		Price:             req.Price,
	})
	respondJSON(w, http.StatusCreated, h.products[len(h.products)-1])
}

type editCellRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) editCell(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid row index")
		return
	}
	var req editCellRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := store.ApplyEdit(h.products, index, req.Field, req.Value); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.products[index])
}

func (h *Handler) commitCatalog(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	store.RecomputeRevenue(h.products)
	if err := h.catalog.Save(h.products); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save catalog: "+err.Error())
		return
	}
	if err := h.reload(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to reload state: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Sales handlers

type cartRequest struct {
	Items []domain.CartLine `json:"items"`
}

func (h *Handler) submitSale(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "no items in sale")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	report, err := h.applier.Submit(h.products, h.history, req.Items)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to record sale: "+err.Error())
		return
	}
	// Read-your-writes via full reload, same as the persisted-state model.
	if err := h.reload(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to reload state: "+err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

func (h *Handler) previewCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]int64{"total_revenue": sales.PreviewCart(h.products, req.Items)})
}

func (h *Handler) salesHistory(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondJSON(w, http.StatusOK, h.history)
}

// Reports

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]int64{"total_revenue": sales.TotalRevenue(h.products)})
}

func (h *Handler) exportCatalog(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	rows := make([]domain.Product, len(h.products))
	copy(rows, h.products)
	h.mu.Unlock()

	name, data, err := export.Workbook(rows, h.now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build export: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
