package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	kafkaclient "github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/kafka"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// fakeClient records produced messages and fails delivery when deliveryErr is set
type fakeClient struct {
	messages    []kafkaclient.Message
	deliveryErr error
}

func (f *fakeClient) Produce(_ context.Context, msg kafkaclient.Message) error {
	f.messages = append(f.messages, msg)
	return f.deliveryErr
}

func (f *fakeClient) ProduceAsync(_ context.Context, msg kafkaclient.Message, onError func(error)) {
	f.messages = append(f.messages, msg)
	if f.deliveryErr != nil {
		onError(f.deliveryErr)
	}
}

func (f *fakeClient) Consume(context.Context, kafkaclient.RecordHandler, ...string) error { return nil }
func (f *fakeClient) Ping(context.Context) error                                         { return nil }
func (f *fakeClient) Close() error                                                       { return nil }
func (f *fakeClient) GetClient() *kgo.Client                                             { return nil }

type failureCounter map[string]int

func (f failureCounter) PublishFailed(topic string) { f[topic]++ }

var topics = Topics{Resolved: "validating-carrier.resolved", Trace: "validating-carrier.trace"}

func TestPublishResolved(t *testing.T) {
	client := &fakeClient{}
	pub := NewEventPublisher(client, topics, logger.NoOpLogger(), nil)

	event := model.ResolvedEvent{
		EventID: "01HZ0000000000000000000009",
		Request: model.ResolveRequest{Country: "BM", HostID: "1S"},
		Outcome: model.Outcome{
			PlanOutcome: model.PlanOutcome{Result: model.ValidSingleGsaSwap, ValidatingCxrs: []string{"DL"}},
			HashKey:     "AFKL|",
		},
	}
	pub.PublishResolved(context.Background(), event)

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "validating-carrier.resolved", msg.Topic)
	assert.Equal(t, []byte("AFKL|"), msg.Key)
	assert.Equal(t, "BM", msg.Headers[HeaderCountry])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	outcome := decoded["outcome"].(map[string]any)
	assert.Equal(t, "VALID_SINGLE_GSA_SWAP", outcome["result"])
	assert.Equal(t, "01HZ0000000000000000000009", decoded["event_id"])
}

func TestPublishTrace(t *testing.T) {
	client := &fakeClient{}
	pub := NewEventPublisher(client, topics, logger.NoOpLogger(), nil)

	pub.PublishTrace(context.Background(), "LH|", model.TraceEvent{Kind: model.TraceGsaCandidates, Carrier: "LH", Carriers: []string{"TG", "UA"}})

	require.Len(t, client.messages, 1)
	assert.Equal(t, "validating-carrier.trace", client.messages[0].Topic)
	assert.JSONEq(t, `{"kind":"gsa_candidates","carrier":"LH","carriers":["TG","UA"],"passed":false}`, string(client.messages[0].Value))
}

func TestPublishTrace_NoTopic(t *testing.T) {
	client := &fakeClient{}
	pub := NewEventPublisher(client, Topics{Resolved: "r"}, logger.NoOpLogger(), nil)

	pub.PublishTrace(context.Background(), "LH|", model.TraceEvent{Kind: model.TracePlanResolved})
	assert.Empty(t, client.messages)
}

func TestPublish_DeliveryFailureCounted(t *testing.T) {
	client := &fakeClient{deliveryErr: errors.New("broker unavailable")}
	failures := failureCounter{}
	pub := NewEventPublisher(client, topics, logger.NoOpLogger(), failures)

	pub.PublishResolved(context.Background(), model.ResolvedEvent{})
	pub.PublishTrace(context.Background(), "", model.TraceEvent{Kind: model.TracePlanResolved})

	assert.Equal(t, 1, failures["validating-carrier.resolved"])
	assert.Equal(t, 1, failures["validating-carrier.trace"])
}
