package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/importwise/landedcost/internal/api/metrics"
	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/ports"
)

// CalculateHandler handles the stateless calculation endpoints: nothing here
// is persisted, no auth is required, and the response is the LandedCostResult
// exactly as the engine produced it.
type CalculateHandler struct {
	service ports.QuoteService
}

func NewCalculateHandler(service ports.QuoteService) *CalculateHandler {
	return &CalculateHandler{service: service}
}

type compareRequest struct {
	Scenarios []domain.ShipmentInput `json:"scenarios"`
}

type compareResponse struct {
	Results []*domain.LandedCostResult `json:"results"`
	// CheapestIndex points at the scenario with the lowest total landed cost.
	CheapestIndex int `json:"cheapestIndex"`
}

// Calculate handles POST /api/landed-cost/calculate.
//
// @Summary      Calculate the landed cost of a shipment
// @Tags         landed-cost
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ShipmentInput  true  "Shipment description"
// @Success      200   {object}  domain.LandedCostResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/landed-cost/calculate [post]
func (h *CalculateHandler) Calculate(c echo.Context) error {
	start := time.Now()

	var input domain.ShipmentInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	result, err := h.service.Calculate(c.Request().Context(), input)
	if err != nil {
		metrics.CalculationErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	metrics.CalculationsTotal.WithLabelValues(string(input.ShippingMethod), input.DestinationCountry).Inc()
	metrics.CalculationDuration.WithLabelValues("calculate").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, result)
}

// Compare handles POST /api/landed-cost/compare.
//
// @Summary      Compare landed costs across sourcing scenarios
// @Tags         landed-cost
// @Accept       json
// @Produce      json
// @Param        body  body      compareRequest  true  "2 to 10 shipment scenarios"
// @Success      200   {object}  compareResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/landed-cost/compare [post]
func (h *CalculateHandler) Compare(c echo.Context) error {
	start := time.Now()

	var req compareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	results, err := h.service.Compare(c.Request().Context(), req.Scenarios)
	if err != nil {
		metrics.CalculationErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	cheapest := 0
	for i, r := range results {
		if r.Totals.TotalLandedCost < results[cheapest].Totals.TotalLandedCost {
			cheapest = i
		}
	}

	metrics.CalculationDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, compareResponse{Results: results, CheapestIndex: cheapest})
}

// errorReason buckets an error for the calculation_errors_total metric.
func errorReason(err error) string {
	var ue *domain.UnsupportedShippingMethodError
	if errors.As(err, &ue) {
		return "unsupported_method"
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return "validation"
	}
	return "internal"
}
