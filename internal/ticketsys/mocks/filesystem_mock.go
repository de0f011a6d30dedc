// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"

	"github.com/shiroemons/go-ticketsys/internal/ticketsys/interfaces"
)

var _ interfaces.FileSystem = (*MockFileSystem)(nil)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files      map[string][]byte
	Dirs       map[string]bool
	Error      error // 全操作で返すエラー
	WriteError error // WriteFile だけで返すエラー
	Writes     int
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// FileExists はファイルが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	_, exists := fs.Files[filename]
	return exists
}

// ReadFile はファイルを読み込みます。呼び出し側が書き換えても影響しないようにコピーを返します。
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return append([]byte(nil), data...), nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	if fs.WriteError != nil {
		return fs.WriteError
	}
	fs.Files[filename] = append([]byte(nil), data...)
	fs.Writes++
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}
