package usecase

import (
	"time"

	db "github.com/couponhub/offer-engine/db/gen"
	"github.com/couponhub/offer-engine/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

func offerFromRow(row db.Offer) *domain.Offer {
	o := &domain.Offer{
		ID:                 row.ID,
		EnterpriseID:       row.EnterpriseID,
		Title:              row.Title,
		Description:        row.Description,
		OriginalPriceCents: row.OriginalPriceCents,
		DiscountPriceCents: row.DiscountPriceCents,
		ValidFrom:          row.ValidFrom.Time,
		ValidUntil:         row.ValidUntil.Time,
		State:              domain.State(row.State),
		RejectedReason:     row.RejectedReason.String,
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
	if row.QuantityLimit.Valid {
		v := row.QuantityLimit.Int32
		o.QuantityLimit = &v
	}
	if row.Sold.Valid {
		o.Sold = row.Sold.Int32
	}
	if row.ApprovedAt.Valid {
		t := row.ApprovedAt.Time
		o.ApprovedAt = &t
	}
	return o
}

func couponFromRow(row db.Coupon) *domain.Coupon {
	return &domain.Coupon{
		ID:        row.ID,
		Code:      row.Code,
		OfferID:   row.OfferID,
		ClientID:  row.ClientID,
		State:     domain.CouponState(row.State),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func int4FromPtr(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}
