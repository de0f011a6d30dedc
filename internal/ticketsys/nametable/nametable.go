// Package nametable は YAML で書かれた名前対応表を読み込みます。
//
// 形式:
//
//	names:
//	  - text: 神游马力欧          # UTF-8 で書いた中国語名（GB2312 に変換して照合）
//	    name: Super Mario 64
//	    content_id: "1101104"
//	  - legacy: c8fbb6fbb4ef     # GB2312 のバイト列を 16 進で直接指定
//	    name: "Zelda: Ocarina of Time"
//
// 照合はファイルに書いた順に行います。
package nametable

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-ticketsys/internal/ticketsys/interfaces"
	"github.com/shiroemons/go-ticketsys/pkg/charset"
	"github.com/shiroemons/go-ticketsys/pkg/ticket"
)

type file struct {
	Names []entry `yaml:"names"`
}

type entry struct {
	Legacy    string `yaml:"legacy"`
	Text      string `yaml:"text"`
	Name      string `yaml:"name"`
	ContentID string `yaml:"content_id"`
}

// Parse は YAML から名前対応表を作成します
func Parse(data []byte) (*ticket.NameTable, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseYAML, err)
	}
	if len(f.Names) == 0 {
		return nil, ErrEmptyTable
	}

	mappings := make([]ticket.NameMapping, 0, len(f.Names))
	for i, e := range f.Names {
		legacy, err := e.legacyBytes()
		if err != nil {
			return nil, fmt.Errorf("names[%d] (%s): %w", i, e.Name, err)
		}
		mappings = append(mappings, ticket.NameMapping{
			Legacy:    legacy,
			Name:      e.Name,
			ContentID: e.ContentID,
		})
	}

	table, err := ticket.NewNameTable(mappings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return table, nil
}

// Load はファイルから名前対応表を読み込みます
func Load(fs interfaces.FileSystem, path string) (*ticket.NameTable, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadTable, path, err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func (e entry) legacyBytes() ([]byte, error) {
	switch {
	case e.Legacy != "" && e.Text != "":
		return nil, ErrAmbiguousKey
	case e.Legacy != "":
		b, err := hex.DecodeString(strings.ReplaceAll(e.Legacy, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
		}
		return b, nil
	case e.Text != "":
		b, err := charset.ToGB2312(e.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeText, err)
		}
		return b, nil
	default:
		return nil, ErrMissingKey
	}
}
