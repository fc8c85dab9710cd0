package valkeystore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/valkeycompat"
	"go.uber.org/zap"

	"gameplay-analysis-api/config"
)

// keyPrefix namespaces analysis records inside the store.
const keyPrefix = "analysis:"

// scanCount is the page size for key enumeration.
const scanCount = 100

// ErrNotFound is returned by GetRecord when no record exists for the video.
var ErrNotFound = errors.New("analysis record not found")

// Store persists serialized analysis records in valkey, keyed by video name.
// Enumeration is cursor-paginated (SCAN) and driven to exhaustion internally;
// the store offers no bulk list primitive.
type Store struct {
	client valkeycompat.Cmdable
	raw    valkey.Client
	logger *zap.Logger
}

// New connects to valkey and verifies the connection with a ping.
func New(cfg config.ValkeyConfig, logger *zap.Logger) (*Store, error) {
	vk, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}

	client := valkeycompat.NewAdapter(vk)
	if err := client.Ping(context.Background()).Err(); err != nil {
		vk.Close()
		return nil, fmt.Errorf("ping valkey: %w", err)
	}

	logger.Info("Record store initialized", zap.String("host", cfg.Host))
	return &Store{client: client, raw: vk, logger: logger}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() {
	if s.raw != nil {
		s.raw.Close()
	}
}

// PutRecord stores the serialized analysis for a video. Records are never
// mutated after creation, so no expiry is set.
func (s *Store) PutRecord(ctx context.Context, videoName string, data []byte) error {
	if err := s.client.Set(ctx, keyPrefix+videoName, string(data), 0).Err(); err != nil {
		return fmt.Errorf("store analysis for %s: %w", videoName, err)
	}
	s.logger.Info("Analysis stored", zap.String("video", videoName))
	return nil
}

// GetRecord fetches the serialized analysis for a video.
func (s *Store) GetRecord(ctx context.Context, videoName string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+videoName).Result()
	if err != nil {
		if errors.Is(err, valkeycompat.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieve analysis for %s: %w", videoName, err)
	}
	return []byte(data), nil
}

// ListVideos enumerates every stored video name by walking the SCAN cursor to
// exhaustion. The full-keyspace walk is the store's only enumeration
// primitive; a large deployment would keep a separate index instead.
func (s *Store) ListVideos(ctx context.Context) ([]string, error) {
	var names []string
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, keyPrefix+"*", scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("scan analysis keys: %w", err)
		}
		for _, k := range keys {
			names = append(names, strings.TrimPrefix(k, keyPrefix))
		}
		if next == 0 {
			return names, nil
		}
		cursor = next
	}
}
