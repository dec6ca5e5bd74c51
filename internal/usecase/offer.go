package usecase

import (
	"context"
	"errors"
	"time"

	db "github.com/couponhub/offer-engine/db/gen"
	"github.com/couponhub/offer-engine/internal/domain"
	"github.com/couponhub/offer-engine/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// OfferService owns the offer moderation state machine. PENDING-gated
// transitions are enforced by conditional UPDATEs, so at most one of two
// concurrent approve/reject calls can win.
type OfferService struct {
	store  repository.Store
	events EventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewOfferService(store repository.Store, events EventPublisher, logger zerolog.Logger) *OfferService {
	return &OfferService{
		store:  store,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

func (s *OfferService) Create(ctx context.Context, actor domain.Actor, draft domain.OfferDraft) (*domain.Offer, error) {
	if actor.Role != domain.RoleEnterprise {
		return nil, domain.ErrForbidden
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	// The owning enterprise always comes from the verified actor, never from
	// the payload. State is forced to PENDING by the insert itself.
	row, err := s.store.CreateOffer(ctx, db.CreateOfferParams{
		EnterpriseID:       actor.EnterpriseID,
		Title:              draft.Title,
		Description:        draft.Description,
		OriginalPriceCents: draft.OriginalPriceCents,
		DiscountPriceCents: draft.DiscountPriceCents,
		ValidFrom:          timestamptz(draft.ValidFrom),
		ValidUntil:         timestamptz(draft.ValidUntil),
		QuantityLimit:      int4FromPtr(draft.QuantityLimit),
	})
	if err != nil {
		return nil, err
	}
	return offerFromRow(row), nil
}

func (s *OfferService) Approve(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	row, err := s.store.ApproveOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.transitionConflict(ctx, offerID)
		}
		return nil, err
	}

	offer := offerFromRow(row)
	if err := s.events.OfferApproved(ctx, offer); err != nil {
		s.logger.Warn().Err(err).Int64("offer_id", offer.ID).Msg("failed to publish offer.approved")
	}
	return offer, nil
}

func (s *OfferService) Reject(ctx context.Context, actor domain.Actor, offerID int64, reason string) (*domain.Offer, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	row, err := s.store.RejectOffer(ctx, db.RejectOfferParams{
		ID:             offerID,
		RejectedReason: text(reason),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.transitionConflict(ctx, offerID)
		}
		return nil, err
	}

	offer := offerFromRow(row)
	if err := s.events.OfferRejected(ctx, offer); err != nil {
		s.logger.Warn().Err(err).Int64("offer_id", offer.ID).Msg("failed to publish offer.rejected")
	}
	return offer, nil
}

func (s *OfferService) Edit(ctx context.Context, actor domain.Actor, offerID int64, patch domain.OfferPatch) (*domain.Offer, error) {
	if actor.Role != domain.RoleEnterprise {
		return nil, domain.ErrForbidden
	}

	current, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if current.EnterpriseID != actor.EnterpriseID {
		return nil, domain.ErrForbidden
	}

	draft := offerFromRow(current).Apply(patch)
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	// Any edit voids a previously granted approval: the UPDATE resets state to
	// PENDING and clears approved_at/rejected_reason unconditionally.
	row, err := s.store.UpdateOffer(ctx, db.UpdateOfferParams{
		ID:                 offerID,
		EnterpriseID:       actor.EnterpriseID,
		Title:              draft.Title,
		Description:        draft.Description,
		OriginalPriceCents: draft.OriginalPriceCents,
		DiscountPriceCents: draft.DiscountPriceCents,
		ValidFrom:          timestamptz(draft.ValidFrom),
		ValidUntil:         timestamptz(draft.ValidUntil),
		QuantityLimit:      int4FromPtr(draft.QuantityLimit),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return offerFromRow(row), nil
}

func (s *OfferService) Get(ctx context.Context, offerID int64) (*domain.Offer, error) {
	row, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return offerFromRow(row), nil
}

func (s *OfferService) ListPublic(ctx context.Context) ([]*domain.Offer, error) {
	rows, err := s.store.ListPurchasableOffers(ctx, timestamptz(s.now()))
	if err != nil {
		return nil, err
	}
	offers := make([]*domain.Offer, 0, len(rows))
	for _, row := range rows {
		offers = append(offers, offerFromRow(row))
	}
	return offers, nil
}

func (s *OfferService) ListOwned(ctx context.Context, actor domain.Actor) ([]*domain.Offer, error) {
	if actor.Role != domain.RoleEnterprise {
		return nil, domain.ErrForbidden
	}
	rows, err := s.store.ListOffersByEnterprise(ctx, actor.EnterpriseID)
	if err != nil {
		return nil, err
	}
	offers := make([]*domain.Offer, 0, len(rows))
	for _, row := range rows {
		offers = append(offers, offerFromRow(row))
	}
	return offers, nil
}

// Stats reconciles the offer's sold counter against the number of coupons on
// record. Visible to admins and the owning enterprise.
func (s *OfferService) Stats(ctx context.Context, actor domain.Actor, offerID int64) (*domain.OfferStats, error) {
	row, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin &&
		!(actor.Role == domain.RoleEnterprise && actor.EnterpriseID == row.EnterpriseID) {
		return nil, domain.ErrForbidden
	}

	issued, err := s.store.CountCouponsByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return &domain.OfferStats{
		OfferID:       offerID,
		Sold:          row.Sold.Int32,
		IssuedCoupons: issued,
	}, nil
}

// transitionConflict tells a missing offer apart from one that lost the
// PENDING-only conditional update.
func (s *OfferService) transitionConflict(ctx context.Context, offerID int64) error {
	_, err := s.store.GetOffer(ctx, offerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrInvalidState
}

var _ OfferGateway = (*OfferService)(nil)
