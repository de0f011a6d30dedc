// Package charset は GB2312（GBK）と UTF-8 の相互変換を行います
package charset

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// legacy は iQue のチケットで使われる文字コードです。GB2312 の上位互換である GBK を使います。
var legacy encoding.Encoding = simplifiedchinese.GBK

// FromGB2312 は GB2312 のバイト列を UTF-8 文字列に変換します
func FromGB2312(b []byte) (string, error) {
	reader := transform.NewReader(bytes.NewReader(b), legacy.NewDecoder())
	ret, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// ToGB2312 は UTF-8 文字列を GB2312 のバイト列に変換します
func ToGB2312(s string) ([]byte, error) {
	ret, _, err := transform.Bytes(legacy.NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Display は表示用の文字列を返します。
// ASCII だけならそのまま、変換できない場合は 16 進表記を返します。
func Display(b []byte) string {
	if isASCII(b) {
		return string(b)
	}
	s, err := FromGB2312(b)
	if err != nil || strings.ContainsRune(s, utf8.RuneError) {
		return "0x" + hex.EncodeToString(b)
	}
	return s
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
