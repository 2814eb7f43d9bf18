package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"wikifeed/internal/models"
)

// fakeSource feeds pre-baked Kafka messages and records commits.
type fakeSource struct {
	msgs      chan kafka.Message
	committed []kafka.Message
}

func (f *fakeSource) Messages() <-chan kafka.Message { return f.msgs }

func (f *fakeSource) CommitOffset(_ context.Context, msg kafka.Message) error {
	f.committed = append(f.committed, msg)
	return nil
}

func storageEvent(bucket, key string) []byte {
	return []byte(fmt.Sprintf(
		`{"Records":[{"s3":{"bucket":{"name":%q},"object":{"key":%q}}}]}`, bucket, key))
}

func TestIterator_Objects(t *testing.T) {
	src := &fakeSource{msgs: make(chan kafka.Message, 4)}
	src.msgs <- kafka.Message{Offset: 0, Value: storageEvent("archive", "featured/2024-01-15/en/earth.json")}
	src.msgs <- kafka.Message{Offset: 1, Value: []byte("not json")}
	src.msgs <- kafka.Message{Offset: 2, Value: storageEvent("archive", "featured/2024-01-15/en/missing.json")}
	src.msgs <- kafka.Message{Offset: 3, Value: storageEvent("archive", "featured/2024-01-15/en/moon.json")}
	close(src.msgs)

	loader := func(ctx context.Context, bucket, key string) (*models.ArchivedArticle, error) {
		switch key {
		case "featured/2024-01-15/en/earth.json":
			return &models.ArchivedArticle{Title: "Earth", Date: "2024-01-15", Lang: "en"}, nil
		case "featured/2024-01-15/en/moon.json":
			return &models.ArchivedArticle{Title: "Moon", Date: "2024-01-15", Lang: "en"}, nil
		default:
			return nil, fmt.Errorf("no such object %q", key)
		}
	}

	it := NewIterator(src, loader)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var titles []string
	for obj := range it.Objects(ctx) {
		titles = append(titles, obj.Data.Title)
	}

	// Malformed and unloadable events are skipped, the rest flow through in
	// order.
	if len(titles) != 2 || titles[0] != "Earth" || titles[1] != "Moon" {
		t.Errorf("unexpected titles: %v", titles)
	}
	// Only successfully loaded messages get their offsets committed.
	if len(src.committed) != 2 {
		t.Fatalf("committed %d offsets, want 2", len(src.committed))
	}
	if src.committed[0].Offset != 0 || src.committed[1].Offset != 3 {
		t.Errorf("unexpected committed offsets: %+v", src.committed)
	}
}
