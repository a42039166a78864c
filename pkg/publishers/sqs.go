package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSConfig holds AWS SQS settings. A queue URL ending in .fifo enables
// per-feed ordering and revision-based deduplication.
type SQSConfig struct {
	QueueURL string `json:"uri" yaml:"uri"`
	Region   string `json:"region" yaml:"region"`
}

func (c *SQSConfig) normalize() {
	c.QueueURL = strings.TrimSpace(c.QueueURL)
	c.Region = strings.TrimSpace(c.Region)
}

func (c *SQSConfig) validate() error {
	if c.QueueURL == "" {
		return errors.New("sqs.uri is required")
	}
	if c.Region == "" {
		return errors.New("sqs.region is required")
	}
	return nil
}

// sqsClient defines the minimal subset of the SQS client used by sqsPublisher.
type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type sqsPublisher struct {
	id       string
	queueURL string
	fifo     bool
	client   sqsClient
	log      logger.Logger
}

func newSQSPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg.SQS.Region)
	if err != nil {
		return nil, err
	}
	return newSQSPublisherWithClient(cfg.ID, cfg.SQS.QueueURL, sqs.NewFromConfig(awsCfg), log), nil
}

func newSQSPublisherWithClient(id, queueURL string, client sqsClient, log logger.Logger) *sqsPublisher {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &sqsPublisher{
		id:       id,
		queueURL: queueURL,
		fifo:     isFIFO(queueURL),
		client:   client,
		log:      log,
	}
}

func (s *sqsPublisher) ID() string   { return s.id }
func (s *sqsPublisher) Type() string { return TypeSQS }

// Publish sends the event to the configured SQS queue.
func (s *sqsPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(payload)),
		MessageAttributes: stringAttributes(evt.attributes(), func(v string) types.MessageAttributeValue {
			return types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
		}),
	}
	if s.fifo {
		input.MessageGroupId = aws.String(evt.FeedID)
		input.MessageDeduplicationId = aws.String(evt.dedupeID())
	}

	out, err := s.client.SendMessage(ctx, input)
	if err != nil {
		s.log.ErrorObj("sqs publisher send failed", "publisher_sqs_error", map[string]any{
			"publisher_id": s.id,
			"key":          evt.Key,
			"error":        err.Error(),
		})
		return fmt.Errorf("send message to sqs: %w", err)
	}
	s.log.DebugObj("sqs publisher delivered event", "publisher_sqs_delivery", map[string]any{
		"publisher_id": s.id,
		"key":          evt.Key,
		"revision":     evt.Revision,
		"message_id":   aws.ToString(out.MessageId),
	})
	return nil
}
