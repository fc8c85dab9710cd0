package valkeystore

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.uber.org/zap"

	"gameplay-analysis-api/config"
)

func testStore(t *testing.T) *Store {
	cfg := config.ValkeyConfig{
		Host: os.Getenv("VALKEY_HOST"),
		Port: os.Getenv("VALKEY_PORT"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	store, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Skip("valkey not available")
	}
	t.Cleanup(store.Close)
	return store
}

func TestRecordRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	name := "video_9999999999.mp4"
	payload := []byte(`{"game":"EA FC 24","key_focus_areas":[],"mistakes":[],"repeated_errors":[],"missed_opportunities":[]}`)

	if err := store.PutRecord(ctx, name, payload); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.GetRecord(ctx, name)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("stored record differs")
	}

	names, err := store.ListVideos(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, n := range names {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Fatalf("stored video missing from listing: %v", names)
	}
}

func TestGetMissingRecord(t *testing.T) {
	store := testStore(t)
	_, err := store.GetRecord(context.Background(), "video_does_not_exist.mp4")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
