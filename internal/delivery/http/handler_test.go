package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/couponhub/offer-engine/internal/domain"
	"github.com/go-chi/chi/v5"
)

type stubOffers struct {
	createFn     func(ctx context.Context, actor domain.Actor, draft domain.OfferDraft) (*domain.Offer, error)
	approveFn    func(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error)
	rejectFn     func(ctx context.Context, actor domain.Actor, offerID int64, reason string) (*domain.Offer, error)
	editFn       func(ctx context.Context, actor domain.Actor, offerID int64, patch domain.OfferPatch) (*domain.Offer, error)
	getFn        func(ctx context.Context, offerID int64) (*domain.Offer, error)
	listPublicFn func(ctx context.Context) ([]*domain.Offer, error)
	listOwnedFn  func(ctx context.Context, actor domain.Actor) ([]*domain.Offer, error)
	statsFn      func(ctx context.Context, actor domain.Actor, offerID int64) (*domain.OfferStats, error)
}

func (s *stubOffers) Create(ctx context.Context, actor domain.Actor, draft domain.OfferDraft) (*domain.Offer, error) {
	return s.createFn(ctx, actor, draft)
}

func (s *stubOffers) Approve(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error) {
	return s.approveFn(ctx, actor, offerID)
}

func (s *stubOffers) Reject(ctx context.Context, actor domain.Actor, offerID int64, reason string) (*domain.Offer, error) {
	return s.rejectFn(ctx, actor, offerID, reason)
}

func (s *stubOffers) Edit(ctx context.Context, actor domain.Actor, offerID int64, patch domain.OfferPatch) (*domain.Offer, error) {
	return s.editFn(ctx, actor, offerID, patch)
}

func (s *stubOffers) Get(ctx context.Context, offerID int64) (*domain.Offer, error) {
	return s.getFn(ctx, offerID)
}

func (s *stubOffers) ListPublic(ctx context.Context) ([]*domain.Offer, error) {
	return s.listPublicFn(ctx)
}

func (s *stubOffers) ListOwned(ctx context.Context, actor domain.Actor) ([]*domain.Offer, error) {
	return s.listOwnedFn(ctx, actor)
}

func (s *stubOffers) Stats(ctx context.Context, actor domain.Actor, offerID int64) (*domain.OfferStats, error) {
	return s.statsFn(ctx, actor, offerID)
}

type stubPurchases struct {
	purchaseFn    func(ctx context.Context, actor domain.Actor, offerID int64) (string, error)
	getCouponFn   func(ctx context.Context, actor domain.Actor, code string) (*domain.Coupon, error)
	listCouponsFn func(ctx context.Context, actor domain.Actor) ([]*domain.Coupon, error)
}

func (s *stubPurchases) Purchase(ctx context.Context, actor domain.Actor, offerID int64) (string, error) {
	return s.purchaseFn(ctx, actor, offerID)
}

func (s *stubPurchases) GetCoupon(ctx context.Context, actor domain.Actor, code string) (*domain.Coupon, error) {
	return s.getCouponFn(ctx, actor, code)
}

func (s *stubPurchases) ListCoupons(ctx context.Context, actor domain.Actor) ([]*domain.Coupon, error) {
	return s.listCouponsFn(ctx, actor)
}

func newTestRouter(offers *stubOffers, purchases *stubPurchases) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(offers, purchases).Routes(r)
	return r
}

func testOffer(id int64, state domain.State) *domain.Offer {
	limit := int32(5)
	return &domain.Offer{
		ID:                 id,
		EnterpriseID:       10,
		Title:              "lunch deal",
		OriginalPriceCents: 2000,
		DiscountPriceCents: 1000,
		ValidFrom:          time.Now().Add(-time.Hour),
		ValidUntil:         time.Now().Add(time.Hour),
		QuantityLimit:      &limit,
		State:              state,
	}
}

func asEnterprise(req *http.Request) *http.Request {
	req.Header.Set("X-Caller-ID", "2")
	req.Header.Set("X-Caller-Role", "ENTERPRISE")
	req.Header.Set("X-Enterprise-ID", "10")
	return req
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set("X-Caller-ID", "1")
	req.Header.Set("X-Caller-Role", "ADMIN")
	return req
}

func asClient(req *http.Request, id int64) *http.Request {
	req.Header.Set("X-Caller-ID", strconv.FormatInt(id, 10))
	req.Header.Set("X-Caller-Role", "CLIENT")
	return req
}

func TestCreateOffer_Created(t *testing.T) {
	var gotActor domain.Actor
	offers := &stubOffers{
		createFn: func(ctx context.Context, actor domain.Actor, draft domain.OfferDraft) (*domain.Offer, error) {
			gotActor = actor
			return testOffer(1, domain.StatePending), nil
		},
	}
	r := newTestRouter(offers, &stubPurchases{})

	body, _ := json.Marshal(CreateOfferRequest{
		Title:              "lunch deal",
		OriginalPriceCents: 2000,
		DiscountPriceCents: 1000,
		ValidFrom:          time.Now(),
		ValidUntil:         time.Now().Add(time.Hour),
	})
	req := asEnterprise(httptest.NewRequest(http.MethodPost, "/api/offers", bytes.NewReader(body)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotActor.EnterpriseID != 10 || gotActor.Role != domain.RoleEnterprise {
		t.Fatalf("expected enterprise actor from headers, got %+v", gotActor)
	}

	var resp OfferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.State != "PENDING" {
		t.Fatalf("expected PENDING, got %s", resp.State)
	}
}

func TestCreateOffer_MissingIdentity(t *testing.T) {
	r := newTestRouter(&stubOffers{}, &stubPurchases{})

	req := httptest.NewRequest(http.MethodPost, "/api/offers", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestApproveOffer_Conflict(t *testing.T) {
	offers := &stubOffers{
		approveFn: func(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error) {
			return nil, domain.ErrInvalidState
		},
	}
	r := newTestRouter(offers, &stubPurchases{})

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/offers/1/approve", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRejectOffer_PassesReason(t *testing.T) {
	var gotReason string
	offers := &stubOffers{
		rejectFn: func(ctx context.Context, actor domain.Actor, offerID int64, reason string) (*domain.Offer, error) {
			gotReason = reason
			offer := testOffer(offerID, domain.StateRejected)
			offer.RejectedReason = reason
			return offer, nil
		},
	}
	r := newTestRouter(offers, &stubPurchases{})

	body, _ := json.Marshal(RejectOfferRequest{Reason: "misleading pricing"})
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/offers/1/reject", bytes.NewReader(body)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotReason != "misleading pricing" {
		t.Fatalf("expected reason to reach the service, got %q", gotReason)
	}
}

func TestPurchaseOffer_ReturnsCode(t *testing.T) {
	purchases := &stubPurchases{
		purchaseFn: func(ctx context.Context, actor domain.Actor, offerID int64) (string, error) {
			return "ENT1234567", nil
		},
	}
	r := newTestRouter(&stubOffers{}, purchases)

	req := asClient(httptest.NewRequest(http.MethodPost, "/api/offers/1/purchase", nil), 3)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp PurchaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Code != "ENT1234567" {
		t.Fatalf("expected coupon code, got %q", resp.Code)
	}
}

func TestPurchaseOffer_OutOfStock(t *testing.T) {
	purchases := &stubPurchases{
		purchaseFn: func(ctx context.Context, actor domain.Actor, offerID int64) (string, error) {
			return "", domain.ErrOutOfStock
		},
	}
	r := newTestRouter(&stubOffers{}, purchases)

	req := asClient(httptest.NewRequest(http.MethodPost, "/api/offers/1/purchase", nil), 3)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestPurchaseOffer_NotPurchasable(t *testing.T) {
	purchases := &stubPurchases{
		purchaseFn: func(ctx context.Context, actor domain.Actor, offerID int64) (string, error) {
			return "", domain.ErrNotPurchasable
		},
	}
	r := newTestRouter(&stubOffers{}, purchases)

	req := asClient(httptest.NewRequest(http.MethodPost, "/api/offers/1/purchase", nil), 3)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListOffers_Public(t *testing.T) {
	offers := &stubOffers{
		listPublicFn: func(ctx context.Context) ([]*domain.Offer, error) {
			return []*domain.Offer{testOffer(1, domain.StateApproved), testOffer(2, domain.StateApproved)}, nil
		},
	}
	r := newTestRouter(offers, &stubPurchases{})

	req := httptest.NewRequest(http.MethodGet, "/api/offers", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []OfferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(resp))
	}
	// Inside the validity window an approved offer is presented as ACTIVE.
	if resp[0].State != "ACTIVE" {
		t.Fatalf("expected derived ACTIVE state, got %s", resp[0].State)
	}
	if !resp[0].Purchasable {
		t.Fatal("expected active offer with stock to be purchasable")
	}
}

func TestGetOfferStats_OK(t *testing.T) {
	offers := &stubOffers{
		statsFn: func(ctx context.Context, actor domain.Actor, offerID int64) (*domain.OfferStats, error) {
			return &domain.OfferStats{OfferID: offerID, Sold: 4, IssuedCoupons: 4}, nil
		},
	}
	r := newTestRouter(offers, &stubPurchases{})

	req := asAdmin(httptest.NewRequest(http.MethodGet, "/api/offers/1/stats", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp OfferStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Sold != 4 || resp.IssuedCoupons != 4 {
		t.Fatalf("expected sold=4 issued=4, got %d/%d", resp.Sold, resp.IssuedCoupons)
	}
}

func TestListOwnCoupons_OK(t *testing.T) {
	purchases := &stubPurchases{
		listCouponsFn: func(ctx context.Context, actor domain.Actor) ([]*domain.Coupon, error) {
			return []*domain.Coupon{
				{ID: 1, Code: "ENT1000001", OfferID: 1, ClientID: actor.ID, State: domain.CouponValid},
			}, nil
		},
	}
	r := newTestRouter(&stubOffers{}, purchases)

	req := asClient(httptest.NewRequest(http.MethodGet, "/api/clients/me/coupons", nil), 3)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []CouponResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp) != 1 || resp[0].Code != "ENT1000001" {
		t.Fatalf("unexpected coupons: %+v", resp)
	}
}

func TestGetCoupon_NotFound(t *testing.T) {
	purchases := &stubPurchases{
		getCouponFn: func(ctx context.Context, actor domain.Actor, code string) (*domain.Coupon, error) {
			return nil, domain.ErrCouponNotFound
		},
	}
	r := newTestRouter(&stubOffers{}, purchases)

	req := asClient(httptest.NewRequest(http.MethodGet, "/api/coupons/ENT0000000", nil), 3)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
