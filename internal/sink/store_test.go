package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/daylog/internal/errors"
	testutil "github.com/tungetti/daylog/internal/testing"
)

func newJSONStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), JSONCodec{})
}

func TestFileStore_Path(t *testing.T) {
	s := NewFileStore("/var/log/app", CSVCodec{})
	assert.Equal(t, filepath.Join("/var/log/app", "20240115-log.csv"), s.Path("20240115"))
	assert.Equal(t, "/var/log/app", s.Dir())
}

func TestFileStore_LoadCreatesEmptyFile(t *testing.T) {
	s := newJSONStore(t)

	entries, err := s.Load(testutil.Day1Bucket)
	require.NoError(t, err)
	assert.Empty(t, entries)
	testutil.AssertFileExists(t, s.Path(testutil.Day1Bucket))
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	for _, codec := range []Codec{JSONCodec{}, CSVCodec{}} {
		t.Run(codec.Ext(), func(t *testing.T) {
			s := NewFileStore(t.TempDir(), codec)
			entries := testutil.SampleEntries(testutil.Day1)

			require.NoError(t, s.Save(testutil.Day1Bucket, entries))
			loaded, err := s.Load(testutil.Day1Bucket)
			require.NoError(t, err)
			assert.Equal(t, entries, loaded)
		})
	}
}

func TestFileStore_SaveTruncates(t *testing.T) {
	s := newJSONStore(t)
	entries := testutil.SampleEntries(testutil.Day1)

	require.NoError(t, s.Save(testutil.Day1Bucket, entries))
	require.NoError(t, s.Save(testutil.Day1Bucket, entries[:1]))

	loaded, err := s.Load(testutil.Day1Bucket)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	s := newJSONStore(t)
	testutil.WriteFile(t, s.Dir(), "20240115-log.json", `{"logs": [`)

	_, err := s.Load(testutil.Day1Bucket)
	testutil.AssertErrorCode(t, err, errors.Deserialize)
	testutil.AssertErrorContains(t, err, "sink.load")
}

func TestFileStore_LoadWhitespaceIsEmpty(t *testing.T) {
	s := newJSONStore(t)
	testutil.WriteFile(t, s.Dir(), "20240115-log.json", "\n  \n")

	entries, err := s.Load(testutil.Day1Bucket)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing"), JSONCodec{})

	_, err := s.Load(testutil.Day1Bucket)
	testutil.AssertErrorCode(t, err, errors.OpenFile)

	err = s.Save(testutil.Day1Bucket, nil)
	testutil.AssertErrorCode(t, err, errors.OpenFile)
	testutil.AssertErrorContains(t, err, "sink.persist")
}

func TestFileStore_ReadDay(t *testing.T) {
	s := newJSONStore(t)

	_, err := s.ReadDay(testutil.DayFileBucket)
	testutil.AssertErrorCode(t, err, errors.NotFound)
	testutil.AssertFileNotExists(t, s.Path(testutil.DayFileBucket))

	testutil.WriteFile(t, s.Dir(), "20231114-log.json", testutil.DayFileJSON)
	entries, err := s.ReadDay(testutil.DayFileBucket)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestResolveDir(t *testing.T) {
	exe := func() (string, error) { return "/opt/app/bin/daylog", nil }

	tests := []struct {
		name     string
		dir      string
		expected string
	}{
		{"absolute", "/var/log/daylog", "/var/log/daylog"},
		{"absolute uncleaned", "/var/log/../log/daylog/", "/var/log/daylog"},
		{"relative", "logs", "/opt/app/bin/logs"},
		{"dot relative", "./logs", "/opt/app/bin/logs"},
		{"parent relative", "../logs", "/opt/app/logs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDir(tt.dir, exe)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveDir_ExecutableUnknown(t *testing.T) {
	_, err := resolveDir("logs", func() (string, error) { return "", fmt.Errorf("not supported") })
	testutil.AssertErrorCode(t, err, errors.CreateDir)
}

func TestResolveDir_ProcessExecutable(t *testing.T) {
	dir, err := ResolveDir("logs")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "logs", filepath.Base(dir))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "logs")
	require.NoError(t, EnsureDir(dir))
	testutil.AssertDirExists(t, dir)

	// Idempotent.
	require.NoError(t, EnsureDir(dir))
}

func TestEnsureDir_Failure(t *testing.T) {
	file := testutil.WriteFile(t, t.TempDir(), "plain-file", "x")

	err := EnsureDir(filepath.Join(file, "logs"))
	testutil.AssertErrorCode(t, err, errors.CreateDir)

	_, statErr := os.Stat(filepath.Join(file, "logs"))
	assert.Error(t, statErr)
}
