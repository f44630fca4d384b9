package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/questx-lab/rewards/pkg/pubsub"
)

type publisher struct {
	clientID    string
	brokerAddrs []string
	producer    sarama.SyncProducer
}

func NewPublisher(clientID string, brokerAddrs []string) (*publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, err
	}

	return &publisher{
		clientID:    clientID,
		brokerAddrs: brokerAddrs,
		producer:    producer,
	}, nil
}

func (p *publisher) Stop(ctx context.Context) error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(pack.Key),
		Value: sarama.ByteEncoder(pack.Msg),
	}

	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("cannot send message: %w", err)
	}

	return nil
}
