package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"wikifeed/internal/models"
)

// KeyFunc maps an archived article to its object-store key.
type KeyFunc func(models.ArchivedArticle) string

// ArchiveService stores archived articles in S3-compatible object storage.
type ArchiveService struct {
	client *minio.Client
	keyFn  KeyFunc
	count  int
}

// NewArchiveService connects to the MinIO endpoint configured through
// MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_USE_SSL.
func NewArchiveService(keyFn KeyFunc) (*ArchiveService, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", endpoint)
	return &ArchiveService{client: client, keyFn: keyFn}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *ArchiveService) EnsureBucket(ctx context.Context, bucket, location string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %v", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: location}); err != nil {
			return err
		}
	}
	return nil
}

// StoreFromChannel drains the article channel into the bucket, one object
// per article, and reports each stored key on the returned channel so the
// caller can fan the keys out to the index and the event bus. The returned
// channel is closed once the input channel is drained.
func (s *ArchiveService) StoreFromChannel(ctx context.Context, bucket string, articles <-chan models.ArchivedArticle) <-chan string {
	stored := make(chan string)
	go func() {
		defer close(stored)
		var wg sync.WaitGroup
		for article := range articles {
			wg.Add(1)
			go func(a models.ArchivedArticle) {
				defer wg.Done()
				key, err := s.storeArticle(ctx, bucket, a)
				s.count++
				if err != nil {
					log.Printf("Error storing article '%s': %v", a.Title, err)
					return
				}
				stored <- key
			}(article)
		}
		wg.Wait()
		log.Printf("Finished storing all articles from the channel. Count %d \n", s.count)
	}()
	return stored
}

// storeArticle writes one article as JSON, skipping the write when an
// object with the same key already exists.
func (s *ArchiveService) storeArticle(ctx context.Context, bucket string, article models.ArchivedArticle) (string, error) {
	key := s.keyFn(article)

	_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err == nil {
		log.Printf("Article '%s' already archived in bucket '%s'. Ignoring write operation.", article.Title, bucket)
		return key, nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return "", fmt.Errorf("failed to check for existing object: %v", err)
	}

	data, err := json.Marshal(article)
	if err != nil {
		return "", fmt.Errorf("failed to marshal article to JSON: %v", err)
	}

	_, err = s.client.PutObject(
		ctx,
		bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to store object in S3: %v", err)
	}

	log.Printf("Archived article '%s' in bucket '%s' with key '%s'", article.Title, bucket, key)
	return key, nil
}

// GetObject retrieves and decodes one archived article by key.
func (s *ArchiveService) GetObject(ctx context.Context, bucket, key string) (*models.ArchivedArticle, error) {
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %v", err)
	}
	defer object.Close()

	var article models.ArchivedArticle
	if err := json.NewDecoder(object).Decode(&article); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from stream: %v", err)
	}
	return &article, nil
}
