package core

import (
	"context"
	"io/fs"
	"os"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	files     map[string][]byte
	readErrs  map[string]error
	writeErrs map[string]error
}

// NewMockFileSystem creates an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:     make(map[string][]byte),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// SetFile stores the given content under path.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.files[path] = append([]byte(nil), data...)
}

// SetReadError makes ReadFile fail for path with the given error.
func (m *MockFileSystem) SetReadError(path string, err error) {
	m.readErrs[path] = err
}

// SetWriteError makes WriteFile fail for path with the given error.
func (m *MockFileSystem) SetWriteError(path string, err error) {
	m.writeErrs[path] = err
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.readErrs[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := m.writeErrs[path]; ok {
		return err
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mockFileInfo{name: path, size: int64(len(data))}, nil
}

type mockFileInfo struct {
	name string
	size int64
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() os.FileMode  { return PermOwnerRW }
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return false }
func (fi mockFileInfo) Sys() any           { return nil }
