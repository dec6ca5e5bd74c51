package domain

import (
	"fmt"
	"time"
)

// State is the persisted moderation state of an offer. ACTIVE and EXPIRED are
// never stored; they are derived from an APPROVED offer's validity window at
// read time (see EffectiveState).
type State string

const (
	StatePending   State = "PENDING"
	StateApproved  State = "APPROVED"
	StateActive    State = "ACTIVE"
	StateExpired   State = "EXPIRED"
	StateRejected  State = "REJECTED"
	StateDiscarded State = "DISCARDED"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleEnterprise Role = "ENTERPRISE"
	RoleClient     Role = "CLIENT"
)

// Actor is the verified caller identity supplied by the auth collaborator.
type Actor struct {
	ID           int64
	Role         Role
	EnterpriseID int64
}

type Offer struct {
	ID                 int64
	EnterpriseID       int64
	Title              string
	Description        string
	OriginalPriceCents int64
	DiscountPriceCents int64
	ValidFrom          time.Time
	ValidUntil         time.Time
	// QuantityLimit is the remaining redeemable quantity. nil means unlimited.
	QuantityLimit  *int32
	Sold           int32
	State          State
	ApprovedAt     *time.Time
	RejectedReason string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveState derives the caller-visible state. An APPROVED offer reads as
// ACTIVE inside its validity window and EXPIRED once the window has passed.
func (o *Offer) EffectiveState(now time.Time) State {
	if o.State != StateApproved {
		return o.State
	}
	if now.Before(o.ValidFrom) {
		return StateApproved
	}
	if now.After(o.ValidUntil) {
		return StateExpired
	}
	return StateActive
}

// IsPurchasable reports whether a unit of this offer can be sold right now.
// The inventory check here is advisory; the authoritative guard is the
// conditional decrement in the ledger.
func (o *Offer) IsPurchasable(now time.Time) bool {
	if o.EffectiveState(now) != StateActive {
		return false
	}
	return o.QuantityLimit == nil || *o.QuantityLimit > 0
}

// OfferStats pairs the ledger's sold counter with the number of coupons
// actually minted for the offer. Every reservation commits together with its
// coupon insert, so the two counts must agree.
type OfferStats struct {
	OfferID       int64
	Sold          int32
	IssuedCoupons int64
}

type OfferDraft struct {
	Title              string
	Description        string
	OriginalPriceCents int64
	DiscountPriceCents int64
	ValidFrom          time.Time
	ValidUntil         time.Time
	QuantityLimit      *int32
}

func (d *OfferDraft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if d.OriginalPriceCents < 0 || d.DiscountPriceCents < 0 {
		return fmt.Errorf("%w: prices must be non-negative", ErrValidation)
	}
	if d.DiscountPriceCents > d.OriginalPriceCents {
		return fmt.Errorf("%w: discount price exceeds original price", ErrValidation)
	}
	if d.ValidFrom.IsZero() || d.ValidUntil.IsZero() {
		return fmt.Errorf("%w: validity window is required", ErrValidation)
	}
	if !d.ValidFrom.Before(d.ValidUntil) {
		return fmt.Errorf("%w: valid_from must precede valid_until", ErrValidation)
	}
	if d.QuantityLimit != nil && *d.QuantityLimit < 0 {
		return fmt.Errorf("%w: quantity_limit must be non-negative", ErrValidation)
	}
	return nil
}

// OfferPatch is a partial update. nil fields are left unchanged.
type OfferPatch struct {
	Title              *string
	Description        *string
	OriginalPriceCents *int64
	DiscountPriceCents *int64
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	QuantityLimit      *int32
}

// Apply merges the patch over the offer's current fields and returns the
// resulting draft for re-validation.
func (o *Offer) Apply(patch OfferPatch) OfferDraft {
	draft := OfferDraft{
		Title:              o.Title,
		Description:        o.Description,
		OriginalPriceCents: o.OriginalPriceCents,
		DiscountPriceCents: o.DiscountPriceCents,
		ValidFrom:          o.ValidFrom,
		ValidUntil:         o.ValidUntil,
		QuantityLimit:      o.QuantityLimit,
	}
	if patch.Title != nil {
		draft.Title = *patch.Title
	}
	if patch.Description != nil {
		draft.Description = *patch.Description
	}
	if patch.OriginalPriceCents != nil {
		draft.OriginalPriceCents = *patch.OriginalPriceCents
	}
	if patch.DiscountPriceCents != nil {
		draft.DiscountPriceCents = *patch.DiscountPriceCents
	}
	if patch.ValidFrom != nil {
		draft.ValidFrom = *patch.ValidFrom
	}
	if patch.ValidUntil != nil {
		draft.ValidUntil = *patch.ValidUntil
	}
	if patch.QuantityLimit != nil {
		draft.QuantityLimit = patch.QuantityLimit
	}
	return draft
}
