package main

import (
	"context"
	"fmt"
	"log"

	"wikifeed/internal/env"
	"wikifeed/internal/keys"
	"wikifeed/internal/models"
	"wikifeed/internal/service"
	"wikifeed/internal/storage"
	"wikifeed/pkg/graceful"
	"wikifeed/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	kafkaBroker := env.MustGetEnv("KAFKA_BROKER")
	kafkaTopic := env.MustGetEnv("KAFKA_TOPIC")
	kafkaGroupID := env.MustGetEnv("KAFKA_GROUP_ID")

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", kafkaBroker, kafkaTopic, kafkaGroupID)

	consumer, err := kafkaclient.NewConsumer(kafkaTopic, kafkaGroupID, kafkaBroker)
	if err != nil {
		log.Fatalf("Failed to create kafka consumer %v", err)
	}

	archive, err := storage.NewArchiveService(keys.Article)
	if err != nil {
		log.Fatal(err)
	}

	consumer.StartConsuming(ctx)
	iterator := service.NewIterator(consumer, func(ctx context.Context, bucket, key string) (*models.ArchivedArticle, error) {
		return archive.GetObject(ctx, bucket, key)
	})
	for obj := range iterator.Objects(ctx) {
		fmt.Printf("%s [%s] %s (%d views)\n", obj.Data.Date, obj.Data.Lang, obj.Data.Title, obj.Data.Views)
	}

	consumer.Stop()
	log.Println("Main method finished, application exiting.")
}
