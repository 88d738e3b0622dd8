package document

import (
	"io"
	"os"
	"path/filepath"
)

// Storage writes and reads document bytes. The only implementation is
// the local filesystem; paths handed back are relative to the root so
// the root can move without rewriting rows.
type Storage interface {
	Save(relPath string, src io.Reader) (int64, error)
	Open(relPath string) (io.ReadCloser, error)
}

type diskStorage struct {
	root string
}

func NewDiskStorage(root string) Storage {
	return &diskStorage{root: root}
}

func (s *diskStorage) Save(relPath string, src io.Reader) (int64, error) {
	full := filepath.Join(s.root, filepath.Clean(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, err
	}

	dst, err := os.Create(full)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	return io.Copy(dst, src)
}

func (s *diskStorage) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, filepath.Clean(relPath)))
}
