package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps the mapping as a JSON object in a single file. Updates are written to a
// temporary file and renamed over the original, under an exclusive lock on '<file>.lock'
// so that concurrent processes do not lose each other's entries.
type FileStore struct {
	sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("missing file store path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory (%w)", err)
	}

	return &FileStore{
		path: path,
	}, nil
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.Lock()
	defer f.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}

	v, ok := values[key]

	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.Lock()
	defer f.Unlock()

	unlock, err := lock(f.path + ".lock")
	if err != nil {
		return fmt.Errorf("failed to lock %s (%w)", f.path, err)
	}

	defer unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	values[key] = value

	return f.save(values)
}

func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) load() (map[string]string, error) {
	values := map[string]string{}

	bytes, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s (%w)", f.path, err)
	}

	if len(bytes) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(bytes, &values); err != nil {
		return nil, fmt.Errorf("invalid store file %s (%w)", f.path, err)
	}

	return values, nil
}

func (f *FileStore) save(values map[string]string) error {
	bytes, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(bytes); err != nil {
		return err
	}

	if err := tmp.Chmod(0600); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to update %s (%w)", f.path, err)
	}

	return nil
}
