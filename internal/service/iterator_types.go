package service

import (
	"context"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// MessageIterator is the contract for consuming archive events from Kafka.
// It abstracts pkg/kafkaclient so the iterator can be tested with a fake
// source.
//
// Implementations own the lifecycle of the underlying consumer connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped or the
	// underlying source is exhausted.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been successfully
	// processed. Implementations can make this a no-op when auto-commit is
	// in use.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes an object of type T from the object store,
// given the bucket and key named by a storage event. Implementations should
// be read-only and honor the context for cancellation.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// FetchedObject pairs an object loaded from the archive with the storage
// notification event that announced it.
type FetchedObject[T any] struct {
	// Data is the decoded object, e.g. *models.ArchivedArticle.
	Data T
	// Event is the MinIO/S3 notification that triggered the fetch.
	Event notification.Info
}
