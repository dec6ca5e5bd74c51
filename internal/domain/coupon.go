package domain

import "time"

type CouponState string

const (
	CouponValid   CouponState = "VALID"
	CouponUsed    CouponState = "USED"
	CouponExpired CouponState = "EXPIRED"
)

// Coupon is a uniquely coded redemption unit minted against one unit of an
// offer's inventory. It is immutable after creation except for its state.
type Coupon struct {
	ID        int64
	Code      string
	OfferID   int64
	ClientID  int64
	State     CouponState
	CreatedAt time.Time
	UpdatedAt time.Time
}
