package http

import (
	"fmt"
	"net/http"
	"strconv"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/service"

	"github.com/gorilla/mux"
)

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

type assetRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Location     string  `json:"location"`
	PurchaseDate string  `json:"purchaseDate"`
	Margin       float64 `json:"margin"`
	// HourlyRate is accepted for compatibility and ignored; rates are derived.
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
}

type assetPatchRequest struct {
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	Location     *string  `json:"location"`
	PurchaseDate *string  `json:"purchaseDate"`
	Margin       *float64 `json:"margin"`
	Availability *bool    `json:"availability"`
}

type maintenanceRequest struct {
	ServiceType string `json:"serviceType"`
	Cost        int    `json:"cost"`
	ServiceDate string `json:"serviceDate"`
	Notes       string `json:"notes"`
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.AssetFilter{
		OperatorID: q.Get("operatorId"),
		Type:       q.Get("type"),
		Category:   categoryParam(q.Get("category")),
	}
	if v := q.Get("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			fail(w, r, fmt.Errorf("%w: available must be true or false", service.ErrInvalidInput))
			return
		}
		filter.AvailableOnly = available
	}

	assets, err := h.assetService.ListAssets(r.Context(), filter)
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, assets)
}

// ListAll is the admin view over every asset.
func (h *AssetHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.ListAssets(r.Context(), domain.AssetFilter{})
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, assets)
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetService.GetAsset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, asset)
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	operatorID, _ := caller(r.Context())

	asset, err := h.assetService.CreateAsset(r.Context(), operatorID, service.AssetInput{
		Name:         req.Name,
		Type:         req.Type,
		Category:     categoryParam(req.Category),
		Description:  req.Description,
		Location:     req.Location,
		PurchaseDate: req.PurchaseDate,
		Margin:       req.Margin,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, asset)
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req assetPatchRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	operatorID, _ := caller(r.Context())
	if req.Category != nil {
		c := categoryParam(*req.Category)
		req.Category = &c
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), operatorID, mux.Vars(r)["id"], service.AssetPatch{
		Name:         req.Name,
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		Location:     req.Location,
		PurchaseDate: req.PurchaseDate,
		Margin:       req.Margin,
		Availability: req.Availability,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, asset)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	operatorID, _ := caller(r.Context())
	if err := h.assetService.DeleteAsset(r.Context(), operatorID, mux.Vars(r)["id"]); err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}

func (h *AssetHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	operatorID, _ := caller(r.Context())
	logs, err := h.assetService.ListMaintenanceLogs(r.Context(), operatorID, mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, logs)
}

func (h *AssetHandler) AddMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	operatorID, _ := caller(r.Context())

	log, err := h.assetService.AddMaintenanceLog(r.Context(), operatorID, mux.Vars(r)["id"], service.MaintenanceInput{
		ServiceType: req.ServiceType,
		CostRupees:  req.Cost,
		ServiceDate: req.ServiceDate,
		Notes:       req.Notes,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, log)
}
