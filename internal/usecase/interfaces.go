package usecase

import (
	"context"

	"github.com/couponhub/offer-engine/internal/domain"
)

type OfferGateway interface {
	Create(ctx context.Context, actor domain.Actor, draft domain.OfferDraft) (*domain.Offer, error)
	Approve(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error)
	Reject(ctx context.Context, actor domain.Actor, offerID int64, reason string) (*domain.Offer, error)
	Edit(ctx context.Context, actor domain.Actor, offerID int64, patch domain.OfferPatch) (*domain.Offer, error)
	Get(ctx context.Context, offerID int64) (*domain.Offer, error)
	ListPublic(ctx context.Context) ([]*domain.Offer, error)
	ListOwned(ctx context.Context, actor domain.Actor) ([]*domain.Offer, error)
	Stats(ctx context.Context, actor domain.Actor, offerID int64) (*domain.OfferStats, error)
}

type PurchaseGateway interface {
	Purchase(ctx context.Context, actor domain.Actor, offerID int64) (string, error)
	GetCoupon(ctx context.Context, actor domain.Actor, code string) (*domain.Coupon, error)
	ListCoupons(ctx context.Context, actor domain.Actor) ([]*domain.Coupon, error)
}

// EventPublisher receives lifecycle notifications after the corresponding
// state change has been committed. Publish failures must not fail the request.
type EventPublisher interface {
	OfferApproved(ctx context.Context, offer *domain.Offer) error
	OfferRejected(ctx context.Context, offer *domain.Offer) error
	CouponIssued(ctx context.Context, offerID, clientID int64, code string) error
}
