package artifact_repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slot_math/internal/repository"
)

type fsRepo struct {
	root string
}

// NewFSArtifactRepository файлы публикуются в каталог root
func NewFSArtifactRepository(root string) repository.ArtifactRepository {
	return &fsRepo{root: root}
}

// Put пишет во временный файл рядом с целевым и переименовывает его,
// так что читатель видит либо старый, либо новый файл целиком
func (r *fsRepo) Put(_ context.Context, name string, data []byte) error {
	path := r.Location(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (r *fsRepo) Get(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(r.Location(name))
}

func (r *fsRepo) Location(name string) string {
	return filepath.Join(r.root, filepath.FromSlash(name))
}
