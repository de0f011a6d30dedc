package ticket

import "encoding/binary"

// テスト用のレコード内容
type testRecord struct {
	thumbLen uint16
	titleLen uint16
	name     []byte // 名前の位置に書き込むバイト列（終端は自分で含める）
	trial    uint16
	fill     byte // 不透明領域を埋める値
}

// buildStore はテスト用のチケットストアを作成します
func buildStore(records ...testRecord) []byte {
	buf := make([]byte, HeaderSize+len(records)*RecordSize)
	binary.BigEndian.PutUint32(buf, uint32(len(records)))
	for i, r := range records {
		off := RecordOffset(i)
		rec := buf[off : off+RecordSize]
		for k := range rec {
			rec[k] = r.fill
		}
		binary.BigEndian.PutUint16(rec[ThumbLenOffset:], r.thumbLen)
		binary.BigEndian.PutUint16(rec[TitleLenOffset:], r.titleLen)
		binary.BigEndian.PutUint16(rec[TrialOffset:], r.trial)
		rel := NameBase + int(r.thumbLen) + int(r.titleLen)
		if r.name != nil && rel < DescSize {
			copy(rec[DescOffset+rel:DescOffset+DescSize], r.name)
		}
	}
	return buf
}

func nul(b []byte) []byte {
	return append(append([]byte{}, b...), 0)
}

var (
	superMarioGB = []byte("\xc9\xf1\xd3\xce\xc2\xed\xc1\xa6\xc5\xb7")
	starFoxGB    = []byte("\xd0\xc7\xbc\xca\xbb\xf0\xba\xfc")
)
