package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/service"
	"dhara-backend/internal/utils"
)

type PricingHandler struct {
	assetService service.AssetService
}

func NewPricingHandler(assetService service.AssetService) *PricingHandler {
	return &PricingHandler{assetService: assetService}
}

// Quote previews the hourly rate for unsaved asset form values.
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	margin := utils.DefaultMargin
	if v := q.Get("margin"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fail(w, r, fmt.Errorf("%w: margin must be a number", service.ErrInvalidInput))
			return
		}
		margin = m
	}

	quote, err := h.assetService.QuotePrice(categoryParam(q.Get("category")), q.Get("purchaseDate"), margin)
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, quote)
}

func (h *PricingHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, domain.Categories())
}

// categoryParam folds client input onto the enum spelling. Past this point
// categories must match exactly.
func categoryParam(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
