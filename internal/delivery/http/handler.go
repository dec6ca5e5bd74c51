package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/couponhub/offer-engine/internal/domain"
	"github.com/couponhub/offer-engine/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type CreateOfferRequest struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	OriginalPriceCents int64     `json:"original_price_cents"`
	DiscountPriceCents int64     `json:"discount_price_cents"`
	ValidFrom          time.Time `json:"valid_from"`
	ValidUntil         time.Time `json:"valid_until"`
	QuantityLimit      *int32    `json:"quantity_limit"`
}

type EditOfferRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	OriginalPriceCents *int64     `json:"original_price_cents"`
	DiscountPriceCents *int64     `json:"discount_price_cents"`
	ValidFrom          *time.Time `json:"valid_from"`
	ValidUntil         *time.Time `json:"valid_until"`
	QuantityLimit      *int32     `json:"quantity_limit"`
}

type RejectOfferRequest struct {
	Reason string `json:"reason"`
}

type OfferResponse struct {
	ID                 int64      `json:"id"`
	EnterpriseID       int64      `json:"enterprise_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	OriginalPriceCents int64      `json:"original_price_cents"`
	DiscountPriceCents int64      `json:"discount_price_cents"`
	ValidFrom          time.Time  `json:"valid_from"`
	ValidUntil         time.Time  `json:"valid_until"`
	QuantityLimit      *int32     `json:"quantity_limit"`
	Sold               int32      `json:"sold"`
	State              string     `json:"state"`
	Purchasable        bool       `json:"purchasable"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	RejectedReason     string     `json:"rejected_reason,omitempty"`
}

type OfferStatsResponse struct {
	OfferID       int64 `json:"offer_id"`
	Sold          int32 `json:"sold"`
	IssuedCoupons int64 `json:"issued_coupons"`
}

type PurchaseResponse struct {
	Code string `json:"code"`
}

type CouponResponse struct {
	Code      string    `json:"code"`
	OfferID   int64     `json:"offer_id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type Handler struct {
	offers    usecase.OfferGateway
	purchases usecase.PurchaseGateway
}

func NewHandler(offers usecase.OfferGateway, purchases usecase.PurchaseGateway) *Handler {
	return &Handler{offers: offers, purchases: purchases}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/offers", h.ListOffers)
		r.Get("/offers/{id}", h.GetOffer)

		r.Group(func(r chi.Router) {
			r.Use(Actor)
			r.Post("/offers", h.CreateOffer)
			r.Patch("/offers/{id}", h.EditOffer)
			r.Post("/offers/{id}/approve", h.ApproveOffer)
			r.Post("/offers/{id}/reject", h.RejectOffer)
			r.Post("/offers/{id}/purchase", h.PurchaseOffer)
			r.Get("/offers/{id}/stats", h.GetOfferStats)
			r.Get("/enterprises/me/offers", h.ListOwnOffers)
			r.Get("/clients/me/coupons", h.ListOwnCoupons)
			r.Get("/coupons/{code}", h.GetCoupon)
		})
	})
}

func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	offer, err := h.offers.Create(r.Context(), actorFrom(r.Context()), domain.OfferDraft{
		Title:              req.Title,
		Description:        req.Description,
		OriginalPriceCents: req.OriginalPriceCents,
		DiscountPriceCents: req.DiscountPriceCents,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		QuantityLimit:      req.QuantityLimit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offerResponse(offer))
}

func (h *Handler) ApproveOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDParam(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	offer, err := h.offers.Approve(r.Context(), actorFrom(r.Context()), offerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerResponse(offer))
}

func (h *Handler) RejectOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDParam(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	var req RejectOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	offer, err := h.offers.Reject(r.Context(), actorFrom(r.Context()), offerID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerResponse(offer))
}

func (h *Handler) EditOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDParam(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	var req EditOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	offer, err := h.offers.Edit(r.Context(), actorFrom(r.Context()), offerID, domain.OfferPatch{
		Title:              req.Title,
		Description:        req.Description,
		OriginalPriceCents: req.OriginalPriceCents,
		DiscountPriceCents: req.DiscountPriceCents,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		QuantityLimit:      req.QuantityLimit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerResponse(offer))
}

func (h *Handler) PurchaseOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDParam(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	code, err := h.purchases.Purchase(r.Context(), actorFrom(r.Context()), offerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, PurchaseResponse{Code: code})
}

func (h *Handler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDParam(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	offer, err := h.offers.Get(r.Context(), offerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerResponse(offer))
}

func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offers.ListPublic(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerResponses(offers))
}

func (h *Handler) ListOwnOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offers.ListOwned(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerResponses(offers))
}

func (h *Handler) GetOfferStats(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDParam(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}

	stats, err := h.offers.Stats(r.Context(), actorFrom(r.Context()), offerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OfferStatsResponse{
		OfferID:       stats.OfferID,
		Sold:          stats.Sold,
		IssuedCoupons: stats.IssuedCoupons,
	})
}

func (h *Handler) ListOwnCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.purchases.ListCoupons(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]CouponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		resp = append(resp, couponResponse(coupon))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	coupon, err := h.purchases.GetCoupon(r.Context(), actorFrom(r.Context()), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, couponResponse(coupon))
}

func offerIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func couponResponse(coupon *domain.Coupon) CouponResponse {
	return CouponResponse{
		Code:      coupon.Code,
		OfferID:   coupon.OfferID,
		State:     string(coupon.State),
		CreatedAt: coupon.CreatedAt,
	}
}

func offerResponse(offer *domain.Offer) OfferResponse {
	now := time.Now()
	return OfferResponse{
		ID:                 offer.ID,
		EnterpriseID:       offer.EnterpriseID,
		Title:              offer.Title,
		Description:        offer.Description,
		OriginalPriceCents: offer.OriginalPriceCents,
		DiscountPriceCents: offer.DiscountPriceCents,
		ValidFrom:          offer.ValidFrom,
		ValidUntil:         offer.ValidUntil,
		QuantityLimit:      offer.QuantityLimit,
		Sold:               offer.Sold,
		State:              string(offer.EffectiveState(now)),
		Purchasable:        offer.IsPurchasable(now),
		ApprovedAt:         offer.ApprovedAt,
		RejectedReason:     offer.RejectedReason,
	}
}

func offerResponses(offers []*domain.Offer) []OfferResponse {
	resp := make([]OfferResponse, 0, len(offers))
	for _, offer := range offers {
		resp = append(resp, offerResponse(offer))
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCouponNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNotPurchasable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrOutOfStock):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
