package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/consort-app/consort/internal/cache"
)

func TestStorage(t *testing.T) {
	server := miniredis.RunT(t)
	store := cache.New(cache.Options{Addr: server.Addr()})
	defer store.Close()

	storage := store.StorageWithPrefix("test:")

	value, err := storage.Get("nope")
	if err != nil || value != nil {
		t.Errorf("Expected nil, nil for a missing key, got %v, %v", value, err)
	}

	if err := storage.Set("id", []byte("data"), time.Minute); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !server.Exists("test:id") {
		t.Error("Expected value to be stored under the prefix")
	}

	value, err = storage.Get("id")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(value) != "data" {
		t.Errorf("Wrong value, expected 'data', got '%s'", value)
	}

	if err := storage.Delete("id"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if server.Exists("test:id") {
		t.Error("Expected value to be deleted")
	}
}

func TestStorageResetOnlyRemovesPrefixedKeys(t *testing.T) {
	server := miniredis.RunT(t)
	store := cache.New(cache.Options{Addr: server.Addr()})
	defer store.Close()

	server.Set("other", "keep")
	storage := store.StorageWithPrefix("test:")
	for _, key := range []string{"a", "b", "c"} {
		if err := storage.Set(key, []byte(key), 0); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if err := storage.Reset(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, key := range []string{"test:a", "test:b", "test:c"} {
		if server.Exists(key) {
			t.Errorf("Expected %s to be removed", key)
		}
	}
	if !server.Exists("other") {
		t.Error("Expected keys outside the prefix to survive a reset")
	}
}

func TestStorageCloseKeepsClientOpen(t *testing.T) {
	server := miniredis.RunT(t)
	store := cache.New(cache.Options{Addr: server.Addr()})
	defer store.Close()

	if err := store.Storage().Close(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := store.Set(context.Background(), "still", "open", 0); err != nil {
		t.Errorf("Expected client to remain usable, got %v", err)
	}
}
