package ticket

import (
	"encoding/hex"
	"io"
	"log/slog"
)

// Operation はストアに対して行う処理のビットフラグです
type Operation uint8

const (
	// OpLocalize は名前を英語名に書き換えます
	OpLocalize Operation = 1 << iota
	// OpUnlock は体験版フラグをクリアします
	OpUnlock
)

// Options は Patch の設定です
type Options struct {
	Ops   Operation
	Table *NameTable // nil の場合は DefaultNameTable
	// ZeroFill が true の場合、短くなった名前の終端以降をゼロで埋めます。
	// 既定では終端以降のバイトはそのまま残します。
	ZeroFill bool
	Logger   *slog.Logger
}

// RecordResult は 1 レコード分の解析・処理結果です
type RecordResult struct {
	Index  int
	Offset int

	Field      NameField
	NameErr    error  // 名前の位置が求められなかった場合のエラー
	RawName    []byte // 処理前の名前（NUL 終端を含まない）
	Terminated bool
	Match      Match

	Name    Outcome
	NewName string

	TrialBefore uint16
	Trial       Outcome
}

// IsTrial は処理前に体験版だったかどうかを返します
func (r RecordResult) IsTrial() bool {
	return r.TrialBefore != 0
}

// Summary はストア全体の処理結果です
type Summary struct {
	RecordCount  uint32 // ヘッダ上のレコード数
	BufferSize   int
	SizeMismatch bool // バッファがヘッダから期待されるサイズより小さい
	Processed    int
	Unterminated int

	Records []RecordResult
	Names   Tally
	Trials  Tally
}

// Inspect はストアを解析だけしてレコードごとの情報を返します。バッファは変更しません。
func Inspect(buf []byte, table *NameTable, logger *slog.Logger) (*Summary, error) {
	return Patch(buf, Options{Table: table, Logger: logger})
}

// Patch はストアの各レコードに opts.Ops の処理を適用します。
// バッファはその場で書き換えられます。
//
// レコード単位の問題はそのレコードを飛ばして Summary に記録します。
// バッファが短すぎる場合は *StructuralError を返し、Summary には
// それまでに処理したレコードの結果が入ります。
func Patch(buf []byte, opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	table := opts.Table
	if table == nil {
		table = DefaultNameTable()
	}

	summary := &Summary{BufferSize: len(buf)}

	count, err := RecordCount(buf)
	if err != nil {
		return summary, &StructuralError{Index: -1, Err: err}
	}
	summary.RecordCount = count

	if expected := ExpectedSize(count); int64(len(buf)) < expected {
		summary.SizeMismatch = true
		logger.Warn("store smaller than header suggests",
			"records", count, "size", len(buf), "expected", expected)
	}

	capHint := int(min(int64(count), int64(len(buf)/RecordSize)))
	summary.Records = make([]RecordResult, 0, capHint)

	for i := 0; i < int(count); i++ {
		off := RecordOffset(i)
		if !recordFits(buf, off) {
			logger.Error("record extends past end of store", "index", i, "offset", off, "processed", summary.Processed)
			return summary, &StructuralError{Index: i, Processed: summary.Processed, Err: ErrTruncatedRecord}
		}

		res := processRecord(buf, i, off, table, opts, logger)
		summary.Records = append(summary.Records, res)
		summary.Names.add(res.Name)
		summary.Trials.add(res.Trial)
		if res.NameErr == nil && !res.Terminated {
			summary.Unterminated++
		}
		summary.Processed++
	}

	return summary, nil
}

func processRecord(buf []byte, i, off int, table *NameTable, opts Options, logger *slog.Logger) RecordResult {
	res := RecordResult{Index: i, Offset: off}
	log := logger.With("index", i)

	// recordFits は呼び出し側で確認済み
	res.TrialBefore, _ = TrialValue(buf, off)

	f, err := LocateName(buf, off)
	if err != nil {
		res.NameErr = err
		if opts.Ops&OpLocalize != 0 {
			res.Name = OutcomeOutOfBounds
		}
		log.Warn("name field out of bounds", "error", err)
	} else {
		res.Field = f
		res.RawName, res.Terminated = DecodeName(buf, f)
		if !res.Terminated {
			log.Warn("name field has no terminator", "max_len", f.MaxLen)
		}
		res.Match = table.Classify(res.RawName)
		if opts.Ops&OpLocalize != 0 {
			res.Name, res.NewName = applyName(buf, f, res, opts.ZeroFill, log)
		}
	}

	if opts.Ops&OpUnlock != 0 {
		res.Trial, _ = ClearTrial(buf, off)
		if res.Trial == OutcomePatched {
			log.Debug("trial flag cleared", "before", res.TrialBefore)
		}
	}

	return res
}

func applyName(buf []byte, f NameField, res RecordResult, zeroFill bool, log *slog.Logger) (Outcome, string) {
	switch res.Match.State {
	case StateAlreadyCorrect:
		log.Debug("name already correct", "name", res.Match.Mapping.Name)
		return OutcomeAlreadyCorrect, ""
	case StateNeedsPatch:
		name := res.Match.Mapping.Name
		if err := PatchName(buf, f, name, zeroFill); err != nil {
			log.Warn("name patch rejected", "name", name, "max_len", f.MaxLen, "error", err)
			return OutcomeTooSmall, ""
		}
		log.Debug("name patched", "raw", hex.EncodeToString(res.RawName), "name", name)
		return OutcomePatched, name
	default:
		log.Warn("no mapping for name", "raw", hex.EncodeToString(res.RawName))
		return OutcomeUnmapped, ""
	}
}
