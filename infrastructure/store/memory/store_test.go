// ABOUTME: Tests for the in-memory content store
// ABOUTME: Covers round-trips, isolation of stored bytes and glob listing

package memory

import (
	"context"
	"testing"

	coreerrors "natureshare-pipeline/core/errors"
)

func TestStorePutAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Put(ctx, "alice/profile.yaml", []byte("name: Alice\n")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	data, err := store.Get(ctx, "alice/profile.yaml")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(data) != "name: Alice\n" {
		t.Errorf("unexpected document %q", data)
	}
}

func TestStoreGetMissingIsNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.Get(context.Background(), "missing.yaml")
	if !coreerrors.IsNotFound(err) {
		t.Errorf("missing documents must map to NotFoundError, got %v", err)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	original := []byte("name: Alice\n")
	store.Put(ctx, "alice/profile.yaml", original)
	original[0] = 'X'

	data, _ := store.Get(ctx, "alice/profile.yaml")
	if string(data) != "name: Alice\n" {
		t.Error("Put must copy its input")
	}

	data[0] = 'Y'
	again, _ := store.Get(ctx, "alice/profile.yaml")
	if string(again) != "name: Alice\n" {
		t.Error("Get must return a copy")
	}
}

func TestStoreListGlob(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	store.Put(ctx, "alice/items/flickr/2021/a.yaml", []byte("a"))
	store.Put(ctx, "bob/items/dropbox/2020/b.yaml", []byte("b"))
	store.Put(ctx, "alice/collections/foxes.yaml", []byte("c"))

	paths, err := store.List(ctx, "*/items/*/*/*.yaml")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "alice/items/flickr/2021/a.yaml" {
		t.Errorf("unexpected listing %v", paths)
	}
}
