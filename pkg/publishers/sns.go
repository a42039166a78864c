package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSConfig holds AWS SNS settings. FIFO topics get the same grouping and
// deduplication as FIFO queues.
type SNSConfig struct {
	TopicARN string `json:"topic_arn" yaml:"topic_arn"`
	Region   string `json:"region" yaml:"region"`
}

func (c *SNSConfig) normalize() {
	c.TopicARN = strings.TrimSpace(c.TopicARN)
	c.Region = strings.TrimSpace(c.Region)
}

func (c *SNSConfig) validate() error {
	if !strings.HasPrefix(c.TopicARN, "arn:") {
		return fmt.Errorf("sns.topic_arn %q is not an ARN", c.TopicARN)
	}
	if c.Region == "" {
		return errors.New("sns.region is required")
	}
	return nil
}

// snsClient defines the minimal subset of the SNS client used by snsPublisher.
type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type snsPublisher struct {
	id       string
	topicARN string
	fifo     bool
	client   snsClient
	log      logger.Logger
}

func newSNSPublisher(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg.SNS.Region)
	if err != nil {
		return nil, err
	}
	return newSNSPublisherWithClient(cfg.ID, cfg.SNS.TopicARN, sns.NewFromConfig(awsCfg), log), nil
}

func newSNSPublisherWithClient(id, topicARN string, client snsClient, log logger.Logger) *snsPublisher {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &snsPublisher{
		id:       id,
		topicARN: topicARN,
		fifo:     isFIFO(topicARN),
		client:   client,
		log:      log,
	}
}

func (s *snsPublisher) ID() string   { return s.id }
func (s *snsPublisher) Type() string { return TypeSNS }

// Publish sends the event to the configured SNS topic.
func (s *snsPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(payload)),
		MessageAttributes: stringAttributes(evt.attributes(), func(v string) types.MessageAttributeValue {
			return types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
		}),
	}
	if s.fifo {
		input.MessageGroupId = aws.String(evt.FeedID)
		input.MessageDeduplicationId = aws.String(evt.dedupeID())
	}

	out, err := s.client.Publish(ctx, input)
	if err != nil {
		s.log.ErrorObj("sns publisher send failed", "publisher_sns_error", map[string]any{
			"publisher_id": s.id,
			"key":          evt.Key,
			"error":        err.Error(),
		})
		return fmt.Errorf("publish to sns: %w", err)
	}
	s.log.DebugObj("sns publisher delivered event", "publisher_sns_delivery", map[string]any{
		"publisher_id": s.id,
		"key":          evt.Key,
		"revision":     evt.Revision,
		"message_id":   aws.ToString(out.MessageId),
	})
	return nil
}
