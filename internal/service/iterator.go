// Package service streams archived objects out of the archive. Its Iterator
// consumes storage events from a message source (Kafka via pkg/kafkaclient),
// loads the referenced objects from S3/MinIO through a pluggable LoaderFunc,
// and yields the decoded results.
package service

import (
	"context"
	"encoding/json"
	"log"
	"net/url"

	"github.com/minio/minio-go/v7/pkg/notification"
)

// Iterator consumes messages from a MessageIterator, interprets each message
// as a MinIO/S3 notification, loads the referenced object via LoaderFunc,
// and yields FetchedObject items on a channel. It is generic over the loaded
// item type T.
//
// The Iterator does not manage the lifecycle of the underlying message
// source; callers start and stop their consumer outside.
type Iterator[T any] struct {
	msgIterator MessageIterator
	loader      LoaderFunc[T]
}

// NewIterator constructs an Iterator for the provided message source and
// object loader. The iterator is stateless; each Objects() call spawns one
// goroutine to stream results.
func NewIterator[T any](iterator MessageIterator, loader LoaderFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		loader:      loader,
	}
}

// Objects starts a goroutine that receives messages, decodes each as a
// MinIO notification event, loads the referenced object and emits it. The
// offset is committed only after a successful load, so unprocessed events
// survive a crash. Malformed events and load failures are logged and
// skipped; the output channel closes when the message channel does.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *FetchedObject[T] {
	out := make(chan *FetchedObject[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			var event notification.Info
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("Error unmarshalling JSON: %v", err)
				continue
			}
			if len(event.Records) == 0 {
				log.Printf("Skipping event with no records: topic=%s offset=%d", msg.Topic, msg.Offset)
				continue
			}
			s3 := event.Records[0].S3
			objectKey, err := url.QueryUnescape(s3.Object.Key)
			if err != nil {
				log.Printf("Error decoding object key %q: %v", s3.Object.Key, err)
				continue
			}
			data, err := it.loader(ctx, s3.Bucket.Name, objectKey)
			if err != nil {
				log.Printf("Error loading object: %v", err)
				continue
			}

			out <- &FetchedObject[T]{Data: data, Event: event}

			if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
				log.Printf("Failed to commit offset: %v", err)
			}
		}
	}()
	return out
}
