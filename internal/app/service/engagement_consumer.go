package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/linktrove/linktrove/internal/app/model"
	apprepository "github.com/linktrove/linktrove/internal/app/repository"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// EngagementConsumer consumes view and click events from NATS JetStream and
// writes them to the event logs.
type EngagementConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	repo   apprepository.EventRepository
}

// NewEngagementConsumer creates a new engagement event consumer.
func NewEngagementConsumer(js nats.JetStreamContext, logger *zap.Logger, repo apprepository.EventRepository) *EngagementConsumer {
	return &EngagementConsumer{js: js, logger: logger, repo: repo}
}

// Start ensures the stream and durable consumer exist, then begins consuming.
func (c *EngagementConsumer) Start() error {
	_, err := c.js.StreamInfo(model.EngagementStreamName)
	if err != nil {
		_, err = c.js.AddStream(&nats.StreamConfig{
			Name: model.EngagementStreamName,
			Subjects: []string{
				model.EngagementViewSubject,
				model.EngagementClickSubject,
			},
			MaxBytes: model.EngagementStreamMaxSize,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
	}

	_, err = c.js.ConsumerInfo(model.EngagementStreamName, model.EngagementConsumerName)
	if err != nil {
		_, err = c.js.AddConsumer(model.EngagementStreamName, &nats.ConsumerConfig{
			Durable:       model.EngagementConsumerName,
			AckPolicy:     nats.AckExplicitPolicy,
			FilterSubject: model.EngagementSubjectPrefix,
		})
		if err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
	}

	sub, err := c.js.PullSubscribe(model.EngagementSubjectPrefix, model.EngagementConsumerName)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	go c.consume(sub)
	return nil
}

func (c *EngagementConsumer) consume(sub *nats.Subscription) {
	ctx := context.Background()
	for {
		msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
		if err != nil && err != nats.ErrTimeout {
			c.logger.Error("failed to fetch messages", zap.Error(err))
			continue
		}

		for _, msg := range msgs {
			if err := c.store(ctx, msg); err != nil {
				c.logger.Error("failed to store engagement event",
					zap.String("subject", msg.Subject),
					zap.Error(err))
				msg.Nak()
				continue
			}
			msg.Ack()
		}
	}
}

func (c *EngagementConsumer) store(ctx context.Context, msg *nats.Msg) error {
	switch msg.Subject {
	case model.EngagementViewSubject:
		var event model.LinktreeView
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return fmt.Errorf("unmarshal view event: %w", err)
		}
		if err := c.repo.CreateLinktreeView(ctx, &event); err != nil {
			return err
		}
		c.logger.Debug("linktree view stored",
			zap.String("id", event.ID),
			zap.Uint("linktree_id", event.LinktreeID),
			zap.Time("timestamp", event.Timestamp),
		)
		return nil

	case model.EngagementClickSubject:
		var event model.LinkClick
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return fmt.Errorf("unmarshal click event: %w", err)
		}
		if err := c.repo.CreateLinkClick(ctx, &event); err != nil {
			return err
		}
		c.logger.Debug("link click stored",
			zap.String("id", event.ID),
			zap.Uint("link_id", event.LinkID),
			zap.Time("timestamp", event.Timestamp),
		)
		return nil

	default:
		return fmt.Errorf("unknown subject %q", msg.Subject)
	}
}
