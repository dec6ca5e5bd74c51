package domain

import "errors"

var (
	ErrNotFound       = errors.New("offer not found")
	ErrForbidden      = errors.New("caller may not perform this action")
	ErrInvalidState   = errors.New("offer is not in a state that allows this transition")
	ErrNotPurchasable = errors.New("offer is not currently purchasable")
	ErrOutOfStock     = errors.New("offer is out of stock")
	ErrCodeGeneration = errors.New("could not generate a unique coupon code")
	ErrValidation     = errors.New("invalid offer data")

	ErrCouponNotFound = errors.New("coupon not found")
)
