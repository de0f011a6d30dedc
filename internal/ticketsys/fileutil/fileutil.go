// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/shiroemons/go-ticketsys/internal/ticketsys/interfaces"
)

// GenerateOutputFilename は入力ファイル名から出力ファイルのパスを生成します。
// 例: dir/ticket.sys -> dir/ticket_patched.sys
func GenerateOutputFilename(inputPath string) string {
	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(dir, fmt.Sprintf("%s_patched%s", baseName, ext))
}

// ReadStore はチケットストアを読み込みます
func ReadStore(fs interfaces.FileSystem, path string) ([]byte, error) {
	if !fs.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
	}
	return data, nil
}

// WriteStore はチケットストアを書き込みます。出力先ディレクトリがなければ作成します。
func WriteStore(fs interfaces.FileSystem, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFile, path, err)
	}
	return nil
}

// Fingerprint はデータの BLAKE3 ダイジェストの先頭 8 バイトを 16 進で返します
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
