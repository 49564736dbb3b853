package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PubSubConfig struct {
	ProjectID    string `mapstructure:"project_id"`
	Subscription string `mapstructure:"subscription"`
	ResultTopic  string `mapstructure:"result_topic"`
}

// MessageHandler processes one inbound payload and returns the payload to
// publish on the result topic. It must always return a payload; failures
// are encoded inside it rather than raised.
type MessageHandler func(ctx context.Context, data []byte, attributes map[string]string) []byte

type PubSubService struct {
	client       *pubsub.Client
	subscription *pubsub.Subscription
	resultTopic  *pubsub.Topic
	config       *PubSubConfig
}

func NewPubSubService(ctx context.Context, cfg *PubSubConfig) (*PubSubService, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("PubSub project ID is required")
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create PubSub client: %w", err)
	}

	// The request subscription is provisioned out of band; failing fast
	// beats consuming from a subscription that was never bound.
	subscription := client.Subscription(cfg.Subscription)
	exists, err := subscription.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to check if subscription exists: %w", err)
	}
	if !exists {
		client.Close()
		return nil, fmt.Errorf("subscription %s does not exist", cfg.Subscription)
	}

	resultTopic := client.Topic(cfg.ResultTopic)
	exists, err = resultTopic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to check if topic exists: %w", err)
	}
	if !exists {
		logger.Base().Info("result topic does not exist, creating", zap.String("topic", cfg.ResultTopic))
		resultTopic, err = client.CreateTopic(ctx, cfg.ResultTopic)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to create topic %s: %w", cfg.ResultTopic, err)
		}
		logger.Base().Info("result topic created successfully", zap.String("topic", cfg.ResultTopic))
	}

	return &PubSubService{
		client:       client,
		subscription: subscription,
		resultTopic:  resultTopic,
		config:       cfg,
	}, nil
}

// Receive pulls messages until ctx is canceled, handing each payload to
// handle and publishing its return value on the result topic. A message is
// acked only after its result is published; publish failures nack so the
// message redelivers.
func (p *PubSubService) Receive(ctx context.Context, handle MessageHandler) error {
	logger.Base().Info("consuming translation requests",
		zap.String("subscription", p.config.Subscription),
		zap.String("result_topic", p.config.ResultTopic),
	)

	return p.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		requestID := msg.Attributes["request_id"]
		if requestID == "" {
			requestID = msg.ID
		}

		out := handle(ctx, msg.Data, msg.Attributes)

		err := p.PublishResult(ctx, out, map[string]string{
			"request_id": requestID,
			"task_id":    uuid.New().String(),
		})
		if err != nil {
			logger.Base().Error("failed to publish result, message will redeliver",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			msg.Nack()
			return
		}

		msg.Ack()
	})
}

// PublishResult publishes one result payload with the given attributes.
func (p *PubSubService) PublishResult(ctx context.Context, data []byte, attributes map[string]string) error {
	result := p.resultTopic.Publish(ctx, &pubsub.Message{
		Attributes: attributes,
		Data:       data,
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (p *PubSubService) Close() error {
	if p.resultTopic != nil {
		p.resultTopic.Stop()
	}
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
