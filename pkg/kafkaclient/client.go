// Package kafkaclient wraps segmentio/kafka-go with the small consume and
// publish surfaces the archive pipeline needs.
package kafkaclient

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Reader is the subset of the kafka-go Reader the consumer relies on,
// extracted for mocking in unit tests.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer runs a Kafka read loop and exposes the messages on a channel.
// Offsets are committed manually by the caller once a message is processed.
type Consumer struct {
	reader      Reader
	doneChan    chan struct{}
	wg          sync.WaitGroup
	messageChan chan kafka.Message
}

// NewConsumer builds a consumer for one topic and group.
func NewConsumer(topic, groupID, broker string) (*Consumer, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// Disable auto-commit; offsets advance only after the archived
		// object behind a message was actually loaded.
		CommitInterval: 0,
		MinBytes:       10e3,
		MaxBytes:       10e6,
	})
	return &Consumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}, nil
}

// Messages returns the channel the read loop publishes to. It is closed
// when the consumer stops.
func (c *Consumer) Messages() <-chan kafka.Message {
	return c.messageChan
}

// CommitOffset acknowledges one processed message.
func (c *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	log.Printf("Committing offset for topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
	return c.reader.CommitMessages(ctx, msg)
}

// StartConsuming begins the read loop in its own goroutine. The loop exits
// on context cancellation, on Stop, or when the reader is closed.
func (c *Consumer) StartConsuming(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.messageChan)

		log.Println("Starting Kafka consumer loop...")

		for {
			select {
			case <-ctx.Done():
				log.Println("Context canceled, stopping consumer loop.")
				return
			case <-c.doneChan:
				log.Println("Shutdown signal received, stopping consumer loop.")
				return
			default:
				msg, err := c.reader.ReadMessage(ctx)
				if err != nil {
					log.Printf("Error reading message: %v", err)
					if err.Error() == "kafka: reader closed" {
						return
					}
					// Backoff to prevent a tight error loop.
					time.Sleep(1 * time.Second)
					continue
				}

				select {
				case c.messageChan <- msg:
					log.Printf("Message received: topic=%s, partition=%d, offset=%d\n", msg.Topic, msg.Partition, msg.Offset)
				case <-ctx.Done():
					log.Println("Context canceled, stopping consumer before sending message.")
					return
				case <-c.doneChan:
					log.Println("Shutdown signal received, stopping consumer before sending message.")
					return
				}
			}
		}
	}()
}

// Stop shuts the consumer down and waits for the read loop to exit.
func (c *Consumer) Stop() {
	log.Println("Attempting to stop Kafka consumer...")
	close(c.doneChan)
	c.wg.Wait()
	if err := c.reader.Close(); err != nil {
		log.Printf("Failed to close Kafka reader: %v", err)
	}
	log.Println("Kafka consumer stopped gracefully.")
}

// Producer publishes archive events to one topic.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a producer for the broker and topic.
func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish writes one keyed message.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

// Close flushes pending writes and releases the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
