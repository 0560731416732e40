package artifact_repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFSPutReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	r := NewFSArtifactRepository(root)

	if err := r.Put(ctx, "publish_files/index.json", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := r.Put(ctx, "publish_files/index.json", []byte("v2")); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, err := r.Get(ctx, "publish_files/index.json")
	if err != nil || string(data) != "v2" {
		t.Fatalf("expected v2, got %q %v", data, err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "publish_files"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestFSPutFailsOnBlockedPath(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	// обычный файл на месте каталога
	if err := os.WriteFile(filepath.Join(root, "publish_files"), []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	r := NewFSArtifactRepository(root)
	if err := r.Put(ctx, "publish_files/books_base.jsonl", []byte("{}")); err == nil {
		t.Fatalf("expected error when the directory cannot be created")
	}
}
