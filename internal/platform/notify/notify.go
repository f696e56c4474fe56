// Package notify delivers notification facts. Delivery is fire-and-forget: callers never wait for
// it and never see its failures.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"google.golang.org/api/option"
)

const publishTimeout = 30 * time.Second

// Recorder counts notification outcomes.
type Recorder interface {
	NotificationSent(kind, outcome string)
}

// Publisher publishes one encoded message and blocks until the broker acknowledges it.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Notifier hands notifications to a publisher in the background, falling back to logging.
type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
	recorder  Recorder
}

// New creates a Notifier. A nil publisher logs every notification instead of publishing it.
func New(publisher Publisher, logger *slog.Logger, recorder Recorder) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{publisher: publisher, logger: logger, recorder: recorder}
}

// Notify enqueues n and returns immediately.
func (n *Notifier) Notify(ctx context.Context, note domain.Notification) {
	if note.OccurredAt.IsZero() {
		note.OccurredAt = time.Now().UTC()
	}
	if n.publisher == nil {
		n.logger.Info("notification",
			slog.String("kind", string(note.Kind)),
			slog.String("boutique_id", note.BoutiqueID),
			slog.String("recipient_id", note.RecipientID),
			slog.String("title", note.Title))
		n.record(note.Kind, "logged")
		return
	}

	data, err := json.Marshal(note)
	if err != nil {
		n.logger.Error("failed to encode notification", slog.String("kind", string(note.Kind)), slog.String("error", err.Error()))
		n.record(note.Kind, "failed")
		return
	}
	attrs := map[string]string{"kind": string(note.Kind), "boutique_id": note.BoutiqueID}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		id, err := n.publisher.Publish(pubCtx, data, attrs)
		if err != nil {
			n.logger.Warn("failed to publish notification",
				slog.String("kind", string(note.Kind)),
				slog.String("recipient_id", note.RecipientID),
				slog.String("error", err.Error()))
			n.record(note.Kind, "failed")
			return
		}
		n.logger.Debug("notification published", slog.String("kind", string(note.Kind)), slog.String("message_id", id))
		n.record(note.Kind, "published")
	}()
}

// Close stops the publisher.
func (n *Notifier) Close() error {
	if n.publisher == nil {
		return nil
	}
	return n.publisher.Close()
}

func (n *Notifier) record(kind domain.NotificationKind, outcome string) {
	if n.recorder != nil {
		n.recorder.NotificationSent(string(kind), outcome)
	}
}

// PubSubPublisher publishes to a Google Cloud Pub/Sub topic.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubPublisher connects to projectID and binds topicName. Explicit credentials JSON is used
// when given, otherwise Application Default Credentials.
func NewPubSubPublisher(ctx context.Context, projectID, topicName, credentialsJSON string) (*PubSubPublisher, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	return &PubSubPublisher{client: client, topic: client.Topic(topicName)}, nil
}

// Publish sends data and waits for the server-assigned message id.
func (p *PubSubPublisher) Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error) {
	result := p.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs})
	return result.Get(ctx)
}

// Close flushes pending messages and closes the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
