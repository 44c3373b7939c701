package sink

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/tungetti/daylog/internal/constants"
	"github.com/tungetti/daylog/internal/errors"
	"github.com/tungetti/daylog/internal/record"
)

// Store loads and persists the full content of one day.
type Store interface {
	// Load returns the entries of day, creating an empty file if none
	// exists.
	Load(day string) ([]record.Entry, error)
	// Save replaces the content of day with entries.
	Save(day string, entries []record.Entry) error
}

// FileStore keeps one file per day under a directory.
type FileStore struct {
	dir   string
	codec Codec
}

// NewFileStore returns a store writing codec-encoded files into dir. The
// directory must exist; see EnsureDir.
func NewFileStore(dir string, codec Codec) *FileStore {
	return &FileStore{dir: dir, codec: codec}
}

// Dir returns the directory holding the day files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path of day, e.g. <dir>/20240131-log.json.
func (s *FileStore) Path(day string) string {
	return filepath.Join(s.dir, day+constants.DayFileSuffix+"."+s.codec.Ext())
}

// Load implements Store.
func (s *FileStore) Load(day string) ([]record.Entry, error) {
	path := s.Path(day)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(errors.OpenFile, err, "failed to open %s", path).WithOp("sink.load")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(errors.ReadFile, err, "failed to read %s", path).WithOp("sink.load")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	entries, err := s.codec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(errors.Deserialize, err, "failed to decode %s", path).WithOp("sink.load")
	}
	return entries, nil
}

// Save implements Store. The file is truncated and rewritten in place.
func (s *FileStore) Save(day string, entries []record.Entry) error {
	path := s.Path(day)
	data, err := s.codec.Encode(entries)
	if err != nil {
		return errors.Wrapf(errors.Serialize, err, "failed to encode %s", path).WithOp("sink.persist")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(errors.OpenFile, err, "failed to open %s", path).WithOp("sink.persist")
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(errors.WriteFile, err, "failed to write %s", path).WithOp("sink.persist")
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(errors.WriteFile, err, "failed to close %s", path).WithOp("sink.persist")
	}
	return nil
}

// ReadDay reads an existing day file without creating it. It returns an
// error with code NotFound when the file does not exist.
func (s *FileStore) ReadDay(day string) ([]record.Entry, error) {
	path := s.Path(day)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.NotFound, err, "no log file for %s", day).WithOp("sink.ReadDay")
		}
		return nil, errors.Wrapf(errors.ReadFile, err, "failed to read %s", path).WithOp("sink.ReadDay")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	entries, err := s.codec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(errors.Deserialize, err, "failed to decode %s", path).WithOp("sink.ReadDay")
	}
	return entries, nil
}

// ResolveDir makes dir absolute. Relative directories are taken relative to
// the directory of the running executable.
func ResolveDir(dir string) (string, error) {
	return resolveDir(dir, os.Executable)
}

func resolveDir(dir string, executable func() (string, error)) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	exe, err := executable()
	if err != nil {
		return "", errors.Wrap(errors.CreateDir, "failed to locate the executable", err).WithOp("sink.ResolveDir")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), dir), nil
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(errors.CreateDir, err, "failed to create %s", dir).WithOp("sink.EnsureDir")
	}
	return nil
}
