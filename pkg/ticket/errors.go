package ticket

import (
	"errors"
	"fmt"
)

var (
	// ErrShortHeader はバッファがヘッダより短い場合のエラー
	ErrShortHeader = errors.New("buffer shorter than store header")

	// ErrTruncatedRecord はレコードがバッファの終端を越える場合のエラー
	ErrTruncatedRecord = errors.New("record extends past end of buffer")

	// ErrNameOutOfBounds は名前の位置がコンテンツ記述領域の外を指す場合のエラー
	ErrNameOutOfBounds = errors.New("name offset outside content descriptor")

	// ErrFieldTooSmall は置換後の名前と終端がフィールドに収まらない場合のエラー
	ErrFieldTooSmall = errors.New("replacement does not fit name field")

	// ErrNonASCIIName は置換後の名前に ASCII 以外が含まれる場合のエラー
	ErrNonASCIIName = errors.New("replacement name is not printable ASCII")

	// ErrEmptyLegacyKey は名前テーブルのキーが空の場合のエラー
	ErrEmptyLegacyKey = errors.New("legacy key is empty")
)

// StructuralError はストア全体の処理を打ち切る構造エラーです
type StructuralError struct {
	Index     int // 問題のあったレコード番号（ヘッダの場合は -1）
	Processed int // エラーまでに処理したレコード数
	Err       error
}

// Error はエラーメッセージを返します
func (e *StructuralError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("ticket store: %v", e.Err)
	}
	return fmt.Sprintf("ticket store: record %d: %v (processed %d)", e.Index, e.Err, e.Processed)
}

// Unwrap は元のエラーを返します
func (e *StructuralError) Unwrap() error {
	return e.Err
}
