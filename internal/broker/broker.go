package broker

import "context"

type Producer interface {
	SendMessage(ctx context.Context, value []byte) error
	Close() error
}

// NopProducer is used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) SendMessage(context.Context, []byte) error { return nil }

func (NopProducer) Close() error { return nil }
