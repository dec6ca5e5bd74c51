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

const DefaultMaxCodeAttempts = 5

// PurchaseService converts one unit of offer inventory into a coupon. The
// whole issuance runs in a single transaction: if any step after the inventory
// decrement fails, the decrement is rolled back with it.
type PurchaseService struct {
	store       repository.Store
	gen         *CodeGenerator
	maxAttempts int
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

func NewPurchaseService(store repository.Store, gen *CodeGenerator, maxAttempts int, events EventPublisher, logger zerolog.Logger) *PurchaseService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCodeAttempts
	}
	return &PurchaseService{
		store:       store,
		gen:         gen,
		maxAttempts: maxAttempts,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *PurchaseService) Purchase(ctx context.Context, actor domain.Actor, offerID int64) (string, error) {
	if actor.Role != domain.RoleClient {
		return "", domain.ErrForbidden
	}

	var code string
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		row, err := q.GetOffer(ctx, offerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}

		// Only state and window are checked here. Stock is owned by the
		// conditional decrement below; checking the read copy would race and
		// would report sold-out offers as not purchasable.
		offer := offerFromRow(row)
		if offer.EffectiveState(s.now()) != domain.StateActive {
			return domain.ErrNotPurchasable
		}

		// The conditional decrement is the serialization point: of N
		// concurrent purchases against remaining stock R, at most R reach the
		// insert below.
		if _, err := q.ReserveUnit(ctx, offerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrOutOfStock
			}
			return err
		}

		ent, err := q.GetEnterprise(ctx, offer.EnterpriseID)
		if err != nil {
			return err
		}

		for attempt := 0; attempt < s.maxAttempts; attempt++ {
			candidate := s.gen.Generate(ent.Code)
			inserted, err := q.InsertCoupon(ctx, db.InsertCouponParams{
				Code:     candidate,
				OfferID:  offerID,
				ClientID: actor.ID,
			})
			if err != nil {
				return err
			}
			if inserted > 0 {
				code = candidate
				return nil
			}
		}
		return domain.ErrCodeGeneration
	})
	if err != nil {
		if errors.Is(err, domain.ErrCodeGeneration) {
			s.logger.Error().Int64("offer_id", offerID).Int("attempts", s.maxAttempts).
				Msg("exhausted coupon code attempts")
		}
		return "", err
	}

	if err := s.events.CouponIssued(ctx, offerID, actor.ID, code); err != nil {
		s.logger.Warn().Err(err).Int64("offer_id", offerID).Msg("failed to publish coupon.issued")
	}
	return code, nil
}

func (s *PurchaseService) ListCoupons(ctx context.Context, actor domain.Actor) ([]*domain.Coupon, error) {
	if actor.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	rows, err := s.store.ListCouponsByClient(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	coupons := make([]*domain.Coupon, 0, len(rows))
	for _, row := range rows {
		coupons = append(coupons, couponFromRow(row))
	}
	return coupons, nil
}

func (s *PurchaseService) GetCoupon(ctx context.Context, actor domain.Actor, code string) (*domain.Coupon, error) {
	row, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, err
	}
	coupon := couponFromRow(row)
	if actor.Role != domain.RoleAdmin && coupon.ClientID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return coupon, nil
}

var _ PurchaseGateway = (*PurchaseService)(nil)
