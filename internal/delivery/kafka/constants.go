package kafka

const (
	TopicOfferApproved = "offer.lifecycle.approved"
	TopicOfferRejected = "offer.lifecycle.rejected"
	TopicCouponIssued  = "coupon.lifecycle.issued"
)
