package repository

import (
	"context"
	"fmt"

	db "github.com/couponhub/offer-engine/db/gen"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	ExecTx(ctx context.Context, fn func(Querier) error) error
	CreateOffer(ctx context.Context, arg db.CreateOfferParams) (db.Offer, error)
	GetOffer(ctx context.Context, id int64) (db.Offer, error)
	ApproveOffer(ctx context.Context, id int64) (db.Offer, error)
	RejectOffer(ctx context.Context, arg db.RejectOfferParams) (db.Offer, error)
	UpdateOffer(ctx context.Context, arg db.UpdateOfferParams) (db.Offer, error)
	ListPurchasableOffers(ctx context.Context, now pgtype.Timestamptz) ([]db.Offer, error)
	ListOffersByEnterprise(ctx context.Context, enterpriseID int64) ([]db.Offer, error)
	GetEnterprise(ctx context.Context, id int64) (db.Enterprise, error)
	GetCouponByCode(ctx context.Context, code string) (db.Coupon, error)
	ListCouponsByClient(ctx context.Context, clientID int64) ([]db.Coupon, error)
	CountCouponsByOffer(ctx context.Context, offerID int64) (int64, error)
}

// Querier is the subset of queries available inside the issuance transaction.
type Querier interface {
	GetOffer(ctx context.Context, id int64) (db.Offer, error)
	GetEnterprise(ctx context.Context, id int64) (db.Enterprise, error)
	ReserveUnit(ctx context.Context, id int64) (db.Offer, error)
	InsertCoupon(ctx context.Context, arg db.InsertCouponParams) (int64, error)
}

type store struct {
	pool    *pgxpool.Pool
	queries *db.Queries
}

func New(pool *pgxpool.Pool) Store {
	return &store{
		pool:    pool,
		queries: db.New(pool),
	}
}

func (s *store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	q := s.queries.WithTx(tx)
	if err := fn(q); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *store) CreateOffer(ctx context.Context, arg db.CreateOfferParams) (db.Offer, error) {
	return s.queries.CreateOffer(ctx, arg)
}

func (s *store) GetOffer(ctx context.Context, id int64) (db.Offer, error) {
	return s.queries.GetOffer(ctx, id)
}

func (s *store) ApproveOffer(ctx context.Context, id int64) (db.Offer, error) {
	return s.queries.ApproveOffer(ctx, id)
}

func (s *store) RejectOffer(ctx context.Context, arg db.RejectOfferParams) (db.Offer, error) {
	return s.queries.RejectOffer(ctx, arg)
}

func (s *store) UpdateOffer(ctx context.Context, arg db.UpdateOfferParams) (db.Offer, error) {
	return s.queries.UpdateOffer(ctx, arg)
}

func (s *store) ListPurchasableOffers(ctx context.Context, now pgtype.Timestamptz) ([]db.Offer, error) {
	return s.queries.ListPurchasableOffers(ctx, now)
}

func (s *store) ListOffersByEnterprise(ctx context.Context, enterpriseID int64) ([]db.Offer, error) {
	return s.queries.ListOffersByEnterprise(ctx, enterpriseID)
}

func (s *store) GetEnterprise(ctx context.Context, id int64) (db.Enterprise, error) {
	return s.queries.GetEnterprise(ctx, id)
}

func (s *store) GetCouponByCode(ctx context.Context, code string) (db.Coupon, error) {
	return s.queries.GetCouponByCode(ctx, code)
}

func (s *store) ListCouponsByClient(ctx context.Context, clientID int64) ([]db.Coupon, error) {
	return s.queries.ListCouponsByClient(ctx, clientID)
}

func (s *store) CountCouponsByOffer(ctx context.Context, offerID int64) (int64, error) {
	return s.queries.CountCouponsByOffer(ctx, offerID)
}
