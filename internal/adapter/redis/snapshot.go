// Package redis keeps the overwritten snapshots of the latest run: the
// summary document and the outlook image.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
)

const (
	imageDataField        = "data"
	imageContentTypeField = "content_type"
)

// SnapshotStore implements analyzer.SnapshotStore on Redis. The summary is a
// JSON string; the image is a hash carrying the bytes and their content type.
type SnapshotStore struct {
	client     *goredis.Client
	summaryKey string
	imageKey   string
}

// NewSnapshotStore connects to Redis and verifies the connection.
func NewSnapshotStore(ctx context.Context, addr, summaryKey, imageKey string) (*SnapshotStore, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &SnapshotStore{client: client, summaryKey: summaryKey, imageKey: imageKey}, nil
}

// PutSummary overwrites the summary snapshot.
func (s *SnapshotStore) PutSummary(ctx context.Context, doc domain.SummaryDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := s.client.Set(ctx, s.summaryKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set summary: %w", err)
	}
	return nil
}

// GetSummary reads the summary snapshot. found is false when no run has
// written one yet.
func (s *SnapshotStore) GetSummary(ctx context.Context) (doc domain.SummaryDocument, found bool, err error) {
	data, err := s.client.Get(ctx, s.summaryKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.SummaryDocument{}, false, nil
	}
	if err != nil {
		return domain.SummaryDocument{}, false, fmt.Errorf("get summary: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.SummaryDocument{}, false, fmt.Errorf("decode summary: %w", err)
	}
	return doc, true, nil
}

// PutOutlookImage overwrites the stored outlook graphic.
func (s *SnapshotStore) PutOutlookImage(ctx context.Context, data []byte, contentType string) error {
	if err := s.client.HSet(ctx, s.imageKey,
		imageDataField, data,
		imageContentTypeField, contentType,
	).Err(); err != nil {
		return fmt.Errorf("set outlook image: %w", err)
	}
	return nil
}

// GetOutlookImage reads the stored outlook graphic. found is false when no
// image has been stored yet.
func (s *SnapshotStore) GetOutlookImage(ctx context.Context) (data []byte, contentType string, found bool, err error) {
	fields, err := s.client.HGetAll(ctx, s.imageKey).Result()
	if err != nil {
		return nil, "", false, fmt.Errorf("get outlook image: %w", err)
	}
	raw, ok := fields[imageDataField]
	if !ok {
		return nil, "", false, nil
	}
	return []byte(raw), fields[imageContentTypeField], true, nil
}

func (s *SnapshotStore) Close() error {
	return s.client.Close()
}
