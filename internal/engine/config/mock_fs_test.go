package config

import (
	"io/fs"
	"os"
	"path"
	"time"
)

var baseModTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// MockFileSystem is an in-memory file system for testing.
// Directories are implied by the files they contain and may also be listed in Dirs.
type MockFileSystem struct {
	Files       map[string][]byte
	ModTimes    map[string]time.Time
	Dirs        map[string]bool
	ReadErrors  map[string]error
	StatErrors  map[string]error
	WriteErrors map[string]error
	UserHome    string
	UserHomeErr error
	Cwd         string
	CwdErr      error
	Reads       map[string]int
}

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:       make(map[string][]byte),
		ModTimes:    make(map[string]time.Time),
		Dirs:        make(map[string]bool),
		ReadErrors:  make(map[string]error),
		StatErrors:  make(map[string]error),
		WriteErrors: make(map[string]error),
		Reads:       make(map[string]int),
	}
}

// Put stores a file and bumps its modification time.
func (m *MockFileSystem) Put(name, content string) {
	m.Files[name] = []byte(content)
	m.ModTimes[name] = m.nextModTime(name)
}

func (m *MockFileSystem) nextModTime(name string) time.Time {
	if t, ok := m.ModTimes[name]; ok {
		return t.Add(time.Second)
	}
	return baseModTime
}

// ReadFile returns the content of the file from memory.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	m.Reads[name]++
	if err, ok := m.ReadErrors[name]; ok {
		return nil, err
	}
	content, ok := m.Files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

// WriteFile stores the content in memory.
func (m *MockFileSystem) WriteFile(name string, data []byte, _ fs.FileMode) error {
	if err, ok := m.WriteErrors[name]; ok {
		return err
	}
	m.Put(name, string(data))
	return nil
}

// UserHomeDir returns the configured user home directory.
func (m *MockFileSystem) UserHomeDir() (string, error) {
	if m.UserHomeErr != nil {
		return "", m.UserHomeErr
	}
	return m.UserHome, nil
}

// Getwd returns the configured working directory.
func (m *MockFileSystem) Getwd() (string, error) {
	if m.CwdErr != nil {
		return "", m.CwdErr
	}
	return m.Cwd, nil
}

// Stat returns a mock FileInfo.
func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	if err, ok := m.StatErrors[name]; ok {
		return nil, err
	}
	if content, ok := m.Files[name]; ok {
		return &mockFileInfo{name: name, size: int64(len(content)), modTime: m.ModTimes[name]}, nil
	}
	if m.isDir(name) {
		return &mockFileInfo{name: name, dir: true}, nil
	}
	return nil, os.ErrNotExist
}

func (m *MockFileSystem) isDir(name string) bool {
	if m.Dirs[name] {
		return true
	}
	for f := range m.Files {
		if path.Dir(f) == name {
			return true
		}
	}
	return false
}

// IsNotExist checks if the error is os.ErrNotExist.
func (m *MockFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

// mockFileInfo implements fs.FileInfo.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	dir     bool
}

func (m *mockFileInfo) Name() string { return m.name }
func (m *mockFileInfo) Size() int64  { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode {
	if m.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.dir }
func (m *mockFileInfo) Sys() interface{}   { return nil }
