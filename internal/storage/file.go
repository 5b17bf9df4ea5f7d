package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"task-tracker/internal/models"
)

// Compile-time check to ensure FileStore implements the Store interface.
var _ Store = (*FileStore)(nil)

// FileStore keeps the task list as a single JSON array file.
type FileStore struct {
	path   string
	pretty bool
}

func NewFileStore(path string, pretty bool) *FileStore {
	return &FileStore{
		path:   path,
		pretty: pretty,
	}
}

// LoadAll reads the whole task list from the backing file. A missing
// file and a file that does not parse as a task array both load as an
// empty list; only other I/O failures are reported.
func (s *FileStore) LoadAll() ([]models.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, err
	}

	var tasks []models.Task
	err = json.Unmarshal(data, &tasks)
	if err != nil || tasks == nil {
		return []models.Task{}, nil
	}

	return tasks, nil
}

// SaveAll rewrites the backing file with the full task list. The data
// is written to a temporary file and renamed over the target, so a
// failed write never leaves a truncated store behind.
func (s *FileStore) SaveAll(tasks []models.Task) error {
	var (
		data []byte
		err  error
	)
	if s.pretty {
		data, err = json.MarshalIndent(tasks, "", "  ")
	} else {
		data, err = json.Marshal(tasks)
	}
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
