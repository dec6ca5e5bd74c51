package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

func EnsureTopics(ctx context.Context, client *kgo.Client) error {
	adm := kadm.NewClient(client)

	topics := []string{
		TopicOfferApproved,
		TopicOfferRejected,
		TopicCouponIssued,
	}

	for _, topic := range topics {
		resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
		if err != nil {
			return fmt.Errorf("failed to create topic %s: %w", topic, err)
		}
		for _, detail := range resp {
			if detail.Err != nil && !strings.Contains(detail.Err.Error(), "already exists") {
				return fmt.Errorf("failed to create topic %s: %w", detail.Topic, detail.Err)
			}
		}
	}

	return nil
}
