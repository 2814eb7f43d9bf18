package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"wikifeed/internal/enrich"
	"wikifeed/internal/env"
	"wikifeed/internal/keys"
	"wikifeed/internal/models"
	"wikifeed/internal/storage"
	"wikifeed/pkg/graceful"
	"wikifeed/pkg/kafkaclient"
	"wikifeed/pkg/wikimedia"
)

// archiveEvent mirrors the bucket-notification shape the reader consumes, so
// keys published by the archiver and keys announced by MinIO itself look the
// same on the topic.
func archiveEvent(bucket, key string) []byte {
	return []byte(fmt.Sprintf(
		`{"Records":[{"s3":{"bucket":{"name":%q},"object":{"key":%q}}}]}`, bucket, key))
}

// collectArticles flattens one day of featured content into archive records.
func collectArticles(featured *wikimedia.FeaturedContent, date, lang string) []models.ArchivedArticle {
	var articles []models.ArchivedArticle

	appendSummary := func(s wikimedia.PageSummary, views int64) {
		a := models.ArchivedArticle{
			Date:  date,
			Lang:  lang,
			Title: s.Title,
			Views: views,
		}
		if s.Description != nil {
			a.Description = *s.Description
		}
		if s.Extract != nil {
			a.Extract = *s.Extract
		}
		if s.Thumbnail != nil {
			a.ThumbnailURL = s.Thumbnail.Source
		}
		articles = append(articles, a)
	}

	if featured.TFA != nil {
		appendSummary(*featured.TFA, 0)
	}
	if featured.MostRead != nil {
		for _, article := range featured.MostRead.Articles {
			var views int64
			if article.Views != nil {
				views = *article.Views
			}
			appendSummary(article.PageSummary, views)
		}
	}
	return articles
}

func main() {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	bucket := env.MustGetEnv("ARCHIVE_BUCKET")
	dsn := env.MustGetEnv("POSTGRES_DSN")
	kafkaBroker := env.MustGetEnv("KAFKA_BROKER")
	kafkaTopic := env.MustGetEnv("KAFKA_TOPIC")
	lang := env.GetEnv("WIKI_LANG", "en")
	token := env.GetEnv("WIKI_ACCESS_TOKEN", "")

	start := time.Now()
	date := start.UTC().Format("2006-01-02")
	log.Printf("Archiving featured content for %s (%s)", date, lang)

	client := wikimedia.NewClient(token, wikimedia.Language(lang))
	feed := wikimedia.NewFeedService(client)
	core := wikimedia.NewCoreService(client)

	featured, err := feed.Featured(ctx, start.UTC())
	if err != nil {
		log.Fatalf("Failed to fetch featured content: %v", err)
	}
	articles := collectArticles(featured, date, lang)
	log.Printf("Collected %d articles for %s", len(articles), date)

	// Fill in descriptions the feed left out before the articles hit storage.
	fillDescription := func(ctx context.Context, a *models.ArchivedArticle) error {
		if a.Description != "" {
			return nil
		}
		description, err := core.Description(ctx, a.Title)
		if err != nil {
			return fmt.Errorf("describe %q: %w", a.Title, err)
		}
		a.Description = description
		return nil
	}
	pipeline := enrich.NewPipeline(enrich.NewStage(fillDescription))

	archive, err := storage.NewArchiveService(keys.Article)
	if err != nil {
		log.Fatal(err)
	}
	if err := archive.EnsureBucket(ctx, bucket, ""); err != nil {
		log.Fatal(err)
	}

	index, err := storage.NewIndexStore(dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer index.Close()

	producer := kafkaclient.NewProducer(kafkaBroker, kafkaTopic)
	defer producer.Close()

	// Keys depend only on date, lang and title, so the lookup table can be
	// built up front; the pipeline mutates other fields in place.
	byKey := make(map[string]*models.ArchivedArticle, len(articles))
	in := make(chan *models.ArchivedArticle, len(articles))
	for i := range articles {
		byKey[keys.Article(articles[i])] = &articles[i]
		in <- &articles[i]
	}
	close(in)

	toStore := make(chan models.ArchivedArticle)
	go func() {
		defer close(toStore)
		for a := range pipeline.Process(ctx, in) {
			toStore <- *a
		}
	}()

	for key := range archive.StoreFromChannel(ctx, bucket, toStore) {
		if err := index.Record(ctx, *byKey[key], key); err != nil {
			log.Printf("Failed to index %q: %v", key, err)
		}
		if err := producer.Publish(ctx, []byte(key), archiveEvent(bucket, key)); err != nil {
			log.Printf("Failed to publish event for %q: %v", key, err)
		}
	}

	log.Printf("Archive run for %s finished, took %s", date, time.Since(start))
}
