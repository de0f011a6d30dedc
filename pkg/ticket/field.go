package ticket

import "bytes"

// NameField は名前フィールドのバッファ内での位置を表します
type NameField struct {
	Start  int // バッファ先頭からの絶対オフセット
	MaxLen int // コンテンツ記述領域の終端までのバイト数
}

// End はフィールドの終端（排他的）を返します
func (f NameField) End() int {
	return f.Start + f.MaxLen
}

// LocateName はレコードの名前フィールドの位置を計算します。
// 位置がコンテンツ記述領域の外になる場合は ErrNameOutOfBounds を返します。
func LocateName(buf []byte, recordStart int) (NameField, error) {
	if !recordFits(buf, recordStart) {
		return NameField{}, ErrTruncatedRecord
	}
	rec := buf[recordStart : recordStart+RecordSize]

	thumbLen := int(be.Uint16(rec[ThumbLenOffset:]))
	titleLen := int(be.Uint16(rec[TitleLenOffset:]))

	rel := NameBase + thumbLen + titleLen
	if rel >= DescSize {
		return NameField{}, ErrNameOutOfBounds
	}

	return NameField{
		Start:  recordStart + DescOffset + rel,
		MaxLen: DescSize - rel,
	}, nil
}

// DecodeName は名前フィールドの生バイト列を返します。
// 戻り値はバッファのコピーで、NUL 終端は含みません。
// 範囲内に終端がない場合は terminated が false になり、範囲全体を返します。
func DecodeName(buf []byte, f NameField) (raw []byte, terminated bool) {
	field := buf[f.Start:f.End()]
	n := bytes.IndexByte(field, 0)
	if n < 0 {
		n = len(field)
	} else {
		terminated = true
	}
	raw = make([]byte, n)
	copy(raw, field[:n])
	return raw, terminated
}

// PatchName は名前フィールドに ASCII の名前と NUL 終端を書き込みます。
// 収まらない場合はバッファに一切書き込まずに ErrFieldTooSmall を返します。
// zeroFill が true の場合、終端以降のフィールド残りもゼロで埋めます。
func PatchName(buf []byte, f NameField, name string, zeroFill bool) error {
	if !isPrintableASCII(name) {
		return ErrNonASCIIName
	}
	if len(name)+1 > f.MaxLen {
		return ErrFieldTooSmall
	}

	n := copy(buf[f.Start:], name)
	buf[f.Start+n] = 0
	if zeroFill {
		clear(buf[f.Start+n+1 : f.End()])
	}
	return nil
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
