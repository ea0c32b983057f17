package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/wavefan/wavefan/internal/controller"
)

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client      paho.Client
	topicPrefix string
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string, clientId string, topicPrefix string) (*RealPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientId).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{
		client:      client,
		topicPrefix: topicPrefix,
	}, nil
}

// PublishSnapshot sends a channel snapshot to the broker.
func (p *RealPublisher) PublishSnapshot(snapshot controller.Snapshot) error {
	payload, err := FormatSnapshotPayload(snapshot, time.Now())
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	topic := fmt.Sprintf("%s/channel/%s", p.topicPrefix, snapshot.ChannelId)
	// QoS 0 (at-most-once), retained so late subscribers see the last state
	token := p.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
