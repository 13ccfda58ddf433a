package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/linktrove/linktrove/internal/app/model"
	infraprom "github.com/linktrove/linktrove/internal/infra/prometheus"
	"github.com/nats-io/nats.go"
)

// EngagementPublisher publishes linktree views and link clicks to NATS
// JetStream. Article views do not pass through here; they are written
// synchronously because of the per-day dedup window.
type EngagementPublisher struct {
	js nats.JetStreamContext
}

// NewEngagementPublisher creates a new engagement event publisher.
func NewEngagementPublisher(js nats.JetStreamContext) *EngagementPublisher {
	return &EngagementPublisher{js: js}
}

// PublishView publishes a linktree page view to the stream.
func (p *EngagementPublisher) PublishView(linktreeID uint, ip, userAgent string) error {
	event := model.LinktreeView{
		ID:         uuid.New().String(),
		LinktreeID: linktreeID,
		IP:         ip,
		UserAgent:  userAgent,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := p.js.Publish(model.EngagementViewSubject, data); err != nil {
		return err
	}
	infraprom.ViewsRecorded.WithLabelValues("linktree").Inc()
	return nil
}

// PublishClick publishes a link click to the stream.
func (p *EngagementPublisher) PublishClick(linkID uint, ip, userAgent, referrer string) error {
	event := model.LinkClick{
		ID:        uuid.New().String(),
		LinkID:    linkID,
		IP:        ip,
		UserAgent: userAgent,
		Referrer:  referrer,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := p.js.Publish(model.EngagementClickSubject, data); err != nil {
		return err
	}
	infraprom.ClicksRecorded.Inc()
	return nil
}
