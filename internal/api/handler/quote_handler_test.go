package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/ports"
)

func TestQuoteHandler_Save_Success(t *testing.T) {
	e := echo.New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubQuoteService{
		saveQuoteFn: func(ctx context.Context, input ports.SaveQuoteInput) (*ports.SaveQuoteResult, error) {
			if input.BuyerID != "buyer_1" {
				t.Fatalf("expected buyer_1, got %q", input.BuyerID)
			}
			return &ports.SaveQuoteResult{
				QuoteID:   "LCQ-0000000000AB",
				CreatedAt: created,
				Result:    resultWithTotal(4025.52),
			}, nil
		},
	}
	handler := NewQuoteHandler(stub)

	body := strings.NewReader(`{"baseCost":1000,"quantity":100,"destinationCountry":"US","shippingMethod":"sea_fcl"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleBuyer)
	c.Set("buyer_id", "buyer_1")

	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["quoteId"] != "LCQ-0000000000AB" {
		t.Fatalf("unexpected quoteId: %v", resp["quoteId"])
	}
	if resp["createdAt"] != "2026-03-01T12:00:00Z" {
		t.Fatalf("unexpected createdAt: %v", resp["createdAt"])
	}
}

func TestQuoteHandler_Save_MissingClaims(t *testing.T) {
	e := echo.New()
	stub := &stubQuoteService{
		saveQuoteFn: func(ctx context.Context, input ports.SaveQuoteInput) (*ports.SaveQuoteResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewQuoteHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Save(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestQuoteHandler_Save_BuyerWithoutIdentity(t *testing.T) {
	e := echo.New()
	stub := &stubQuoteService{
		saveQuoteFn: func(ctx context.Context, input ports.SaveQuoteInput) (*ports.SaveQuoteResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewQuoteHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleBuyer)

	if err := handler.Save(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestQuoteHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubQuoteService{
		getQuoteFn: func(ctx context.Context, input ports.GetQuoteInput) (*ports.QuoteDetail, error) {
			return nil, domain.ErrQuoteNotFound
		},
	}
	handler := NewQuoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/quotes/LCQ-MISSING", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("LCQ-MISSING")
	c.Set("role", domain.RoleBuyer)
	c.Set("buyer_id", "buyer_1")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestQuoteHandler_Get_ReturnsFrozenResult(t *testing.T) {
	e := echo.New()
	stub := &stubQuoteService{
		getQuoteFn: func(ctx context.Context, input ports.GetQuoteInput) (*ports.QuoteDetail, error) {
			if input.QuoteID != "LCQ-0000000000AB" || input.Role != domain.RoleAdmin {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.QuoteDetail{
				Quote:  domain.Quote{ID: "LCQ-0000000000AB", TotalLandedCost: 4025.52},
				Result: json.RawMessage(`{"totals":{"totalLandedCost":4025.52}}`),
			}, nil
		},
	}
	handler := NewQuoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/quotes/LCQ-0000000000AB", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("LCQ-0000000000AB")
	c.Set("role", domain.RoleAdmin)

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Quote  domain.Quote   `json:"quote"`
		Result map[string]any `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Quote.ID != "LCQ-0000000000AB" {
		t.Fatalf("unexpected quote: %+v", resp.Quote)
	}
	if resp.Result["totals"] == nil {
		t.Fatalf("expected frozen result passthrough, got %+v", resp.Result)
	}
}

func TestQuoteHandler_List_PassesFiltersAndPaging(t *testing.T) {
	e := echo.New()
	stub := &stubQuoteService{
		listQuotesFn: func(ctx context.Context, input ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
			if input.DestinationCountry != "US" || input.ShippingMethod != "air" || input.Search != "laptop" {
				t.Fatalf("unexpected filters: %+v", input)
			}
			if input.Page != 2 || input.Limit != 5 {
				t.Fatalf("unexpected paging: page=%d limit=%d", input.Page, input.Limit)
			}
			return &ports.ListQuotesResult{
				Items:      []domain.Quote{{ID: "LCQ-1"}},
				Total:      6,
				Page:       2,
				Limit:      5,
				TotalPages: 2,
			}, nil
		},
	}
	handler := NewQuoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/quotes?destination=US&method=air&search=laptop&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleBuyer)
	c.Set("buyer_id", "buyer_1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listQuotesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 6 || resp.TotalPages != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestQuoteHandler_List_EmptyPageIsNotNull(t *testing.T) {
	e := echo.New()
	stub := &stubQuoteService{
		listQuotesFn: func(ctx context.Context, input ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
			return &ports.ListQuotesResult{Page: 1, Limit: 20}, nil
		},
	}
	handler := NewQuoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/quotes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleAdmin)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}
