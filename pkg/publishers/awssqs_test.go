package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSPublisherSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	pub := newSQSPublisherWithClient("queue", "https://example.com/queue", client, nil)

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["feed_id"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "feed-1" {
		t.Fatalf("feed_id attribute missing or wrong: %#v", attr)
	}
	if attr.DataType == nil || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if kind := client.input.MessageAttributes["kind"]; aws.ToString(kind.StringValue) != "posts" {
		t.Fatalf("kind attribute missing or wrong: %#v", kind)
	}
	if client.input.MessageGroupId != nil || client.input.MessageDeduplicationId != nil {
		t.Fatalf("standard queue must not get FIFO fields: %#v", client.input)
	}
	if body := aws.ToString(client.input.MessageBody); !strings.Contains(body, `"feed_id":"feed-1"`) || !strings.Contains(body, `"title":"Hello"`) {
		t.Fatalf("MessageBody missing event fields: %s", body)
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := newSQSPublisherWithClient("queue", "https://example.com/queue", &fakeSQSClient{err: errors.New("boom")}, nil)

	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestSQSPublisherFIFODedupesByRevision(t *testing.T) {
	client := &fakeSQSClient{}
	pub := newSQSPublisherWithClient("queue", "https://sqs.eu-west-1.amazonaws.com/1/events.fifo", client, nil)

	evt := sampleEvent()
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.MessageGroupId); got != "feed-1" {
		t.Fatalf("MessageGroupId = %q", got)
	}
	first := aws.ToString(client.input.MessageDeduplicationId)
	if first == "" {
		t.Fatalf("expected deduplication id on fifo queue")
	}

	// A fresh event ID for the same revision keeps the dedupe id.
	evt.ID = "evt-2"
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.MessageDeduplicationId); got != first {
		t.Fatalf("dedupe id changed for same revision: %q vs %q", got, first)
	}

	evt.Revision = "rev-2"
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.MessageDeduplicationId); got == first {
		t.Fatalf("expected new dedupe id for new revision")
	}
}
