package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/couponhub/offer-engine/internal/domain"
	"github.com/couponhub/offer-engine/internal/usecase"
	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

type OfferEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	OfferID       int64     `json:"offer_id"`
	EnterpriseID  int64     `json:"enterprise_id"`
	State         string    `json:"state"`
	Reason        string    `json:"reason,omitempty"`
}

type CouponEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	OfferID       int64     `json:"offer_id"`
	ClientID      int64     `json:"client_id"`
	Code          string    `json:"code"`
}

// Publisher emits lifecycle events after the corresponding state change has
// been committed. Records are keyed by offer id so per-offer ordering holds.
type Publisher struct {
	client *kgo.Client
}

func NewPublisher(client *kgo.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) OfferApproved(ctx context.Context, offer *domain.Offer) error {
	return p.produce(ctx, TopicOfferApproved, offer.ID, OfferEvent{
		SchemaVersion: 1,
		EventID:       uuid.New().String(),
		OccurredAt:    time.Now().UTC(),
		OfferID:       offer.ID,
		EnterpriseID:  offer.EnterpriseID,
		State:         string(offer.State),
	})
}

func (p *Publisher) OfferRejected(ctx context.Context, offer *domain.Offer) error {
	return p.produce(ctx, TopicOfferRejected, offer.ID, OfferEvent{
		SchemaVersion: 1,
		EventID:       uuid.New().String(),
		OccurredAt:    time.Now().UTC(),
		OfferID:       offer.ID,
		EnterpriseID:  offer.EnterpriseID,
		State:         string(offer.State),
		Reason:        offer.RejectedReason,
	})
}

func (p *Publisher) CouponIssued(ctx context.Context, offerID, clientID int64, code string) error {
	return p.produce(ctx, TopicCouponIssued, offerID, CouponEvent{
		SchemaVersion: 1,
		EventID:       uuid.New().String(),
		OccurredAt:    time.Now().UTC(),
		OfferID:       offerID,
		ClientID:      clientID,
		Code:          code,
	})
}

func (p *Publisher) produce(ctx context.Context, topic string, offerID int64, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(offerID, 10)),
		Value: payload,
	}
	return p.client.ProduceSync(ctx, record).FirstErr()
}

var _ usecase.EventPublisher = (*Publisher)(nil)

// NopPublisher is used when event publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) OfferApproved(context.Context, *domain.Offer) error { return nil }

func (NopPublisher) OfferRejected(context.Context, *domain.Offer) error { return nil }

func (NopPublisher) CouponIssued(context.Context, int64, int64, string) error { return nil }

var _ usecase.EventPublisher = NopPublisher{}
