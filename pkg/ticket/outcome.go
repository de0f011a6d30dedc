package ticket

import "fmt"

// Outcome はレコード単位の処理結果です
type Outcome int

const (
	OutcomeNone           Outcome = iota // 処理を要求されていない
	OutcomePatched                       // 書き換えた
	OutcomeAlreadyCorrect                // 既に目的の状態（名前が英語、またはフラグがゼロ）
	OutcomeUnmapped                      // 対応表に一致しない
	OutcomeOutOfBounds                   // 名前の位置が領域外
	OutcomeTooSmall                      // 置換後の名前がフィールドに収まらない
)

// String は結果の名前を返します
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePatched:
		return "patched"
	case OutcomeAlreadyCorrect:
		return "already-correct"
	case OutcomeUnmapped:
		return "unmapped"
	case OutcomeOutOfBounds:
		return "out-of-bounds"
	case OutcomeTooSmall:
		return "too-small"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Skipped はレコードを変更せずに飛ばした結果かどうかを返します
func (o Outcome) Skipped() bool {
	return o == OutcomeUnmapped || o == OutcomeOutOfBounds || o == OutcomeTooSmall
}

// Tally は結果ごとの件数です
type Tally struct {
	Patched        int
	AlreadyCorrect int
	Unmapped       int
	OutOfBounds    int
	TooSmall       int
}

func (t *Tally) add(o Outcome) {
	switch o {
	case OutcomePatched:
		t.Patched++
	case OutcomeAlreadyCorrect:
		t.AlreadyCorrect++
	case OutcomeUnmapped:
		t.Unmapped++
	case OutcomeOutOfBounds:
		t.OutOfBounds++
	case OutcomeTooSmall:
		t.TooSmall++
	}
}

// Skipped は飛ばしたレコードの合計を返します
func (t Tally) Skipped() int {
	return t.Unmapped + t.OutOfBounds + t.TooSmall
}

// Total は集計したレコードの合計を返します
func (t Tally) Total() int {
	return t.Patched + t.AlreadyCorrect + t.Skipped()
}
