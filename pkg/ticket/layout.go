// Package ticket は iQue Player の ticket.sys（チケットストア）を読み書きするためのパッケージです。
//
// チケットストアは 4 バイト（ビッグエンディアン）のレコード数と、それに続く
// 固定長 RecordSize バイトのレコード列で構成されます。各レコードの中で
// 意味を持つのは次のフィールドだけで、それ以外のバイトは一切変更しません。
//
//   - ThumbLenOffset: サムネイル長 (uint16 BE)
//   - TitleLenOffset: タイトル長 (uint16 BE)
//   - DescOffset から DescSize バイト: コンテンツ記述領域。名前はこの領域の
//     DescOffset + NameBase + thumb_len + title_len にある NUL 終端文字列
//   - TrialOffset: 体験版フラグ (uint16 BE、非ゼロで体験版)
//
// 基本的な使い方:
//
//	data, _ := os.ReadFile("ticket.sys")
//	summary, err := ticket.Patch(data, ticket.Options{
//	    Ops:   ticket.OpLocalize | ticket.OpUnlock,
//	    Table: ticket.DefaultNameTable(),
//	})
//	if err != nil {
//	    // 構造エラー。summary.Processed までのレコードは処理済み
//	}
//	_ = os.WriteFile("ticket_patched.sys", data, 0644)
package ticket

import "encoding/binary"

// ストアとレコードのレイアウト定数（オフセットはレコード先頭からの相対値）
const (
	HeaderSize = 4
	RecordSize = 0x2B4C

	ThumbLenOffset = 0x44
	TitleLenOffset = 0x46

	DescOffset = 0x48
	DescSize   = 0x2800

	// NameBase はサムネイル・タイトルの前にある固定長部分の長さです
	NameBase = 0

	TrialOffset = 0x29B4
	TrialSize   = 2
)

// レイアウトの不変条件。どれかが崩れると定数のオーバーフローでコンパイルに失敗します。
const (
	_ = uint(TitleLenOffset - (ThumbLenOffset + 2))
	_ = uint(DescOffset - (TitleLenOffset + 2))
	_ = uint(RecordSize - (DescOffset + DescSize))
	_ = uint(TrialOffset - (DescOffset + DescSize))
	_ = uint(RecordSize - (TrialOffset + TrialSize))
	_ = uint(DescSize - 1 - NameBase)
)

var be = binary.BigEndian

// RecordOffset は i 番目のレコードの先頭オフセットを返します
func RecordOffset(i int) int {
	return HeaderSize + i*RecordSize
}

// ExpectedSize は count 個のレコードを持つストアの最小サイズを返します
func ExpectedSize(count uint32) int64 {
	return int64(HeaderSize) + int64(count)*RecordSize
}

// RecordCount はヘッダからレコード数を読み取ります
func RecordCount(buf []byte) (uint32, error) {
	if len(buf) < HeaderSize {
		return 0, ErrShortHeader
	}
	return be.Uint32(buf[:HeaderSize]), nil
}

// recordFits はオフセット start からのレコードがバッファに収まるかを返します
func recordFits(buf []byte, start int) bool {
	return start >= 0 && start <= len(buf)-RecordSize
}
