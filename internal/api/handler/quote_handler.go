package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/importwise/landedcost/internal/api/metrics"
	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/ports"
)

// QuoteHandler handles the authenticated saved-quote endpoints.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// --- Request / Response types ---

type saveQuoteResponse struct {
	QuoteID   string                   `json:"quoteId"`
	CreatedAt string                   `json:"createdAt"`
	Result    *domain.LandedCostResult `json:"result"`
}

type quoteDetailResponse struct {
	Quote  domain.Quote    `json:"quote"`
	Result json.RawMessage `json:"result"`
}

type listQuotesResponse struct {
	Items      []domain.Quote `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// Save handles POST /v1/quotes.
//
// @Summary      Calculate and persist a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ShipmentInput  true  "Shipment description"
// @Success      201   {object}  saveQuoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/quotes [post]
func (h *QuoteHandler) Save(c echo.Context) error {
	start := time.Now()

	_, buyerID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var input domain.ShipmentInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	result, err := h.service.SaveQuote(c.Request().Context(), ports.SaveQuoteInput{
		Shipment: input,
		BuyerID:  buyerID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.CalculationErrorsTotal.WithLabelValues(errorReason(err)).Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	metrics.QuotesSavedTotal.WithLabelValues(input.DestinationCountry).Inc()
	metrics.CalculationDuration.WithLabelValues("save_quote").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, saveQuoteResponse{
		QuoteID:   result.QuoteID,
		CreatedAt: result.CreatedAt.UTC().Format(time.RFC3339),
		Result:    result.Result,
	})
}

// Get handles GET /v1/quotes/:id.
//
// @Summary      Get a stored quote by ID
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quote ID (e.g. LCQ-0000000001AB)"
// @Success      200  {object}  quoteDetailResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/quotes/{id} [get]
func (h *QuoteHandler) Get(c echo.Context) error {
	role, buyerID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetQuote(c.Request().Context(), ports.GetQuoteInput{
		QuoteID: c.Param("id"),
		Role:    role,
		BuyerID: buyerID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, quoteDetailResponse{
		Quote:  detail.Quote,
		Result: detail.Result,
	})
}

// List handles GET /v1/quotes.
//
// @Summary      List stored quotes
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        destination  query     string  false  "Filter by destination country code"
// @Param        method       query     string  false  "Filter by shipping method"
// @Param        search       query     string  false  "Match against product name or HS code"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  listQuotesResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/quotes [get]
func (h *QuoteHandler) List(c echo.Context) error {
	role, buyerID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListQuotes(c.Request().Context(), ports.ListQuotesInput{
		Role:               role,
		BuyerID:            buyerID,
		DestinationCountry: c.QueryParam("destination"),
		ShippingMethod:     c.QueryParam("method"),
		Search:             c.QueryParam("search"),
		Page:               page,
		Limit:              limit,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	items := result.Items
	if items == nil {
		items = []domain.Quote{}
	}

	return c.JSON(http.StatusOK, listQuotesResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
