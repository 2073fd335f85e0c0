package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubQuoteRepo struct {
	byID      map[string]*domain.Quote
	order     []string
	createErr error
}

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{byID: make(map[string]*domain.Quote)}
}

func (r *stubQuoteRepo) Create(_ context.Context, q *domain.Quote) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *q
	r.byID[q.ID] = &clone
	r.order = append(r.order, q.ID)
	return nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, id, buyerID string) (*domain.Quote, error) {
	q, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	// Enforce buyer filter (mirrors the real Mongo query).
	if buyerID != "" && q.BuyerID != buyerID {
		return nil, domain.ErrQuoteNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuoteRepo) List(_ context.Context, f ports.ListQuotesFilter) ([]*domain.Quote, int64, error) {
	var matched []*domain.Quote
	for _, id := range r.order {
		q := r.byID[id]
		if f.BuyerID != "" && q.BuyerID != f.BuyerID {
			continue
		}
		if f.DestinationCountry != "" && q.DestinationCountry != f.DestinationCountry {
			continue
		}
		if f.ShippingMethod != "" && string(q.ShippingMethod) != f.ShippingMethod {
			continue
		}
		if f.Search != "" {
			nameMatch := strings.Contains(strings.ToLower(q.ProductName), strings.ToLower(f.Search))
			hsMatch := strings.Contains(q.HSCode, f.Search)
			if !nameMatch && !hsMatch {
				continue
			}
		}
		clone := *q
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Quote{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

type stubRateSource struct {
	overrides *domain.FreightOverrides
	err       error
	calls     int
}

func (s *stubRateSource) Rates(_ context.Context, _, _ string, _ domain.ShippingMethod) (*domain.FreightOverrides, error) {
	s.calls++
	return s.overrides, s.err
}

func newQuoteService(repo ports.QuoteRepository, rates ports.FreightRateSource) *QuoteService {
	return NewQuoteService(newTestCalculator(), repo, rates, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// SaveQuote
// ---------------------------------------------------------------------------

func TestQuoteService_SaveQuote_Success(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteService(repo, nil)

	out, err := svc.SaveQuote(context.Background(), ports.SaveQuoteInput{
		Shipment: baseInput(),
		BuyerID:  "buyer_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out.QuoteID, "LCQ-") {
		t.Errorf("quote id format wrong: %s", out.QuoteID)
	}
	if out.Result == nil || !approx(out.Result.Totals.TotalLandedCost, 4025.521875, 1e-6) {
		t.Errorf("unexpected result: %+v", out.Result)
	}

	stored := repo.byID[out.QuoteID]
	if stored == nil {
		t.Fatal("quote not stored")
	}
	if stored.BuyerID != "buyer_1" {
		t.Errorf("buyer_id: want buyer_1, got %s", stored.BuyerID)
	}
	if !approx(stored.TotalLandedCost, 4025.521875, 1e-6) {
		t.Errorf("stored total wrong: %v", stored.TotalLandedCost)
	}
	if len(stored.Result) == 0 || len(stored.Input) == 0 {
		t.Error("stored quote must freeze both input and result JSON")
	}
}

func TestQuoteService_SaveQuote_AppliesBenchmarkRates(t *testing.T) {
	repo := newStubQuoteRepo()
	rates := &stubRateSource{overrides: &domain.FreightOverrides{Container40ft: ptr(3200)}}
	svc := newQuoteService(repo, rates)

	out, err := svc.SaveQuote(context.Background(), ports.SaveQuoteInput{Shipment: baseInput(), BuyerID: "buyer_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates.calls != 1 {
		t.Errorf("rate source calls: want 1, got %d", rates.calls)
	}
	if out.Result.Freight.SelectedCost != 3200 {
		t.Errorf("benchmark rate not applied: got %v", out.Result.Freight.SelectedCost)
	}
}

func TestQuoteService_SaveQuote_CallerOverridesWinOverBenchmark(t *testing.T) {
	repo := newStubQuoteRepo()
	rates := &stubRateSource{overrides: &domain.FreightOverrides{Container40ft: ptr(3200)}}
	svc := newQuoteService(repo, rates)

	in := baseInput()
	in.FreightOverrides = &domain.FreightOverrides{Container40ft: ptr(2800)}

	out, err := svc.SaveQuote(context.Background(), ports.SaveQuoteInput{Shipment: in, BuyerID: "buyer_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates.calls != 0 {
		t.Errorf("rate source must not be consulted when caller supplied overrides, got %d calls", rates.calls)
	}
	if out.Result.Freight.SelectedCost != 2800 {
		t.Errorf("caller override lost: got %v", out.Result.Freight.SelectedCost)
	}
}

func TestQuoteService_SaveQuote_RateSourceFailureFallsBackToDefaults(t *testing.T) {
	repo := newStubQuoteRepo()
	rates := &stubRateSource{err: errors.New("benchmark unavailable")}
	svc := newQuoteService(repo, rates)

	out, err := svc.SaveQuote(context.Background(), ports.SaveQuoteInput{Shipment: baseInput(), BuyerID: "buyer_1"})
	if err != nil {
		t.Fatalf("rate source failure must not fail the quote: %v", err)
	}
	if out.Result.Freight.SelectedCost != 2500 {
		t.Errorf("expected default rate 2500, got %v", out.Result.Freight.SelectedCost)
	}
}

func TestQuoteService_SaveQuote_ValidationErrorNotStored(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteService(repo, nil)

	in := baseInput()
	in.BaseCost = 0

	_, err := svc.SaveQuote(context.Background(), ports.SaveQuoteInput{Shipment: in, BuyerID: "buyer_1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("nothing must be stored on validation failure")
	}
}

func TestQuoteService_SaveQuote_RepoError(t *testing.T) {
	repo := newStubQuoteRepo()
	repo.createErr = errors.New("db unavailable")
	svc := newQuoteService(repo, nil)

	_, err := svc.SaveQuote(context.Background(), ports.SaveQuoteInput{Shipment: baseInput(), BuyerID: "buyer_1"})
	if err == nil {
		t.Fatal("expected error when repo fails")
	}
}

// ---------------------------------------------------------------------------
// Compare
// ---------------------------------------------------------------------------

func TestQuoteService_Compare_PreservesOrder(t *testing.T) {
	svc := newQuoteService(newStubQuoteRepo(), nil)

	sea := baseInput()
	air := baseInput()
	air.ShippingMethod = domain.MethodAir
	air.WeightKg = 500
	air.VolumeCBM = 2
	express := baseInput()
	express.ShippingMethod = domain.MethodExpress
	express.WeightKg = 500

	results, err := svc.Compare(context.Background(), []domain.ShipmentInput{sea, air, express})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	methods := []domain.ShippingMethod{domain.MethodSeaFCL, domain.MethodAir, domain.MethodExpress}
	for i, want := range methods {
		if got := results[i].Freight.Detail.Method(); got != want {
			t.Errorf("result %d: method want %s, got %s", i, want, got)
		}
	}
}

func TestQuoteService_Compare_InvalidScenarioNamesIndex(t *testing.T) {
	svc := newQuoteService(newStubQuoteRepo(), nil)

	good := baseInput()
	bad := baseInput()
	bad.Quantity = 0

	_, err := svc.Compare(context.Background(), []domain.ShipmentInput{good, bad})
	if err == nil {
		t.Fatal("expected error for invalid scenario")
	}
	if !strings.Contains(err.Error(), "scenario 1") {
		t.Errorf("error must name the failing scenario index, got %q", err.Error())
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Error("error must unwrap to ErrInvalidInput")
	}
}

func TestQuoteService_Compare_Bounds(t *testing.T) {
	svc := newQuoteService(newStubQuoteRepo(), nil)

	if _, err := svc.Compare(context.Background(), nil); err == nil {
		t.Error("empty scenario list must be rejected")
	}

	many := make([]domain.ShipmentInput, maxCompareScenarios+1)
	for i := range many {
		many[i] = baseInput()
	}
	if _, err := svc.Compare(context.Background(), many); err == nil {
		t.Errorf("more than %d scenarios must be rejected", maxCompareScenarios)
	}
}

// ---------------------------------------------------------------------------
// GetQuote / ListQuotes RBAC + pagination
// ---------------------------------------------------------------------------

func seedQuote(t *testing.T, svc *QuoteService, buyerID string, mutate func(*domain.ShipmentInput)) string {
	t.Helper()
	in := baseInput()
	if mutate != nil {
		mutate(&in)
	}
	out, err := svc.SaveQuote(context.Background(), ports.SaveQuoteInput{Shipment: in, BuyerID: buyerID})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return out.QuoteID
}

func TestQuoteService_Get_AdminSeesAll(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteService(repo, nil)
	id := seedQuote(t, svc, "buyer_1", nil)

	detail, err := svc.GetQuote(context.Background(), ports.GetQuoteInput{QuoteID: id, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin should see any quote: %v", err)
	}
	if len(detail.Result) == 0 {
		t.Error("expected frozen result JSON")
	}
}

func TestQuoteService_Get_BuyerCannotSeeOthers(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteService(repo, nil)
	id := seedQuote(t, svc, "buyer_1", nil)

	_, err := svc.GetQuote(context.Background(), ports.GetQuoteInput{QuoteID: id, Role: domain.RoleBuyer, BuyerID: "buyer_2"})
	if !errors.Is(err, domain.ErrQuoteNotFound) {
		t.Errorf("expected ErrQuoteNotFound for foreign buyer, got %v", err)
	}
}

func TestQuoteService_List_ScopesAndFilters(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteService(repo, nil)

	seedQuote(t, svc, "buyer_1", nil)
	seedQuote(t, svc, "buyer_1", func(in *domain.ShipmentInput) {
		in.DestinationCountry = "DE"
		in.ShippingMethod = domain.MethodAir
		in.WeightKg = 40
	})
	seedQuote(t, svc, "buyer_2", nil)

	adminAll, err := svc.ListQuotes(context.Background(), ports.ListQuotesInput{Role: domain.RoleAdmin, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if adminAll.Total != 3 {
		t.Errorf("admin total: want 3, got %d", adminAll.Total)
	}

	buyerOwn, err := svc.ListQuotes(context.Background(), ports.ListQuotesInput{Role: domain.RoleBuyer, BuyerID: "buyer_1", Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if buyerOwn.Total != 2 {
		t.Errorf("buyer total: want 2, got %d", buyerOwn.Total)
	}

	byCountry, err := svc.ListQuotes(context.Background(), ports.ListQuotesInput{
		Role: domain.RoleAdmin, DestinationCountry: "DE", Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if byCountry.Total != 1 {
		t.Errorf("filter by DE: want 1, got %d", byCountry.Total)
	}
}

func TestQuoteService_List_PaginationDefaults(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteService(repo, nil)

	res, err := svc.ListQuotes(context.Background(), ports.ListQuotesInput{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != defaultListLimit {
		t.Errorf("default limit: want %d, got %d", defaultListLimit, res.Limit)
	}
	if res.Page != 1 {
		t.Errorf("default page: want 1, got %d", res.Page)
	}

	res, err = svc.ListQuotes(context.Background(), ports.ListQuotesInput{Role: domain.RoleAdmin, Limit: 999})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != maxListLimit {
		t.Errorf("limit cap: want %d, got %d", maxListLimit, res.Limit)
	}
}

func TestQuoteService_List_PaginationMath(t *testing.T) {
	repo := newStubQuoteRepo()
	svc := newQuoteService(repo, nil)

	for i := 0; i < 5; i++ {
		seedQuote(t, svc, "buyer_1", nil)
	}

	res, err := svc.ListQuotes(context.Background(), ports.ListQuotesInput{Role: domain.RoleAdmin, Limit: 2, Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 5 {
		t.Errorf("total: want 5, got %d", res.Total)
	}
	if res.TotalPages != 3 {
		t.Errorf("total_pages: want 3, got %d", res.TotalPages)
	}
	if len(res.Items) != 2 {
		t.Errorf("items: want 2, got %d", len(res.Items))
	}
}
