// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shiroemons/go-ticketsys/internal/ticketsys/config"
	"github.com/shiroemons/go-ticketsys/internal/ticketsys/fileutil"
	"github.com/shiroemons/go-ticketsys/internal/ticketsys/interfaces"
	"github.com/shiroemons/go-ticketsys/internal/ticketsys/nametable"
	"github.com/shiroemons/go-ticketsys/pkg/charset"
	"github.com/shiroemons/go-ticketsys/pkg/ticket"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config *config.Config
	logger *slog.Logger
	fs     interfaces.FileSystem
	out    io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Logger     *slog.Logger
	Output     io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	logger := opts.Logger
	if logger == nil {
		logger = config.NewLogger(os.Stderr, cfg.DebugMode)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &App{
		config: cfg,
		logger: logger,
		fs:     fs,
		out:    out,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	table, err := a.loadTable()
	if err != nil {
		return err
	}

	a.logger.Debug("チケットを読み込みます", "path", a.config.InputPath)
	data, err := fileutil.ReadStore(a.fs, a.config.InputPath)
	if err != nil {
		return err
	}
	inputFingerprint := fileutil.Fingerprint(data)

	if !a.config.HasPatchOps() {
		summary, err := ticket.Inspect(data, table, a.logger)
		fmt.Fprint(a.out, a.generateList(summary))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStructure, err)
		}
		return nil
	}

	summary, err := ticket.Patch(data, ticket.Options{
		Ops:      a.operations(),
		Table:    table,
		ZeroFill: a.config.ZeroFill,
		Logger:   a.logger,
	})
	if err != nil {
		// 構造エラーの場合は処理できた分だけ報告し、ファイルは書き込まない
		fmt.Fprint(a.out, a.generateReport(summary, inputFingerprint, ""))
		var serr *ticket.StructuralError
		if errors.As(err, &serr) {
			a.logger.Error("チケットの構造が不正なため書き込みを中止しました", "processed", serr.Processed, "error", err)
		}
		return fmt.Errorf("%w: %w", ErrStructure, err)
	}

	outputFingerprint := fileutil.Fingerprint(data)
	fmt.Fprint(a.out, a.generateReport(summary, inputFingerprint, outputFingerprint))

	if a.config.DryRun {
		a.logger.Info("ドライランのため書き込みません")
		return nil
	}
	if summary.Names.Patched == 0 && summary.Trials.Patched == 0 {
		a.logger.Info("変更がないため書き込みません")
		return nil
	}

	outputPath := a.outputPath()
	if err := fileutil.WriteStore(a.fs, outputPath, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}
	a.logger.Info("チケットを保存しました", "path", outputPath)
	fmt.Fprintf(a.out, "保存先: %s\n", outputPath)

	return nil
}

// loadTable は名前対応表を読み込みます
func (a *App) loadTable() (*ticket.NameTable, error) {
	if a.config.MapPath == "" {
		return ticket.DefaultNameTable(), nil
	}
	table, err := nametable.Load(a.fs, a.config.MapPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTable, err)
	}
	a.logger.Debug("名前対応表を読み込みました", "path", a.config.MapPath, "entries", table.Len())
	return table, nil
}

func (a *App) operations() ticket.Operation {
	var ops ticket.Operation
	if a.config.Localize {
		ops |= ticket.OpLocalize
	}
	if a.config.Unlock {
		ops |= ticket.OpUnlock
	}
	return ops
}

func (a *App) outputPath() string {
	if a.config.OutputPath != "" {
		return a.config.OutputPath
	}
	return fileutil.GenerateOutputFilename(a.config.InputPath)
}

// generateList は一覧表示の内容を生成します
func (a *App) generateList(summary *ticket.Summary) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("#チケット数: %d\n", summary.RecordCount))
	for _, r := range summary.Records {
		builder.WriteString(fmt.Sprintf("%3d [%s] %s\n", r.Index, releaseLabel(r), describeName(r)))
	}
	writeWarnings(&builder, summary)

	return builder.String()
}

// generateReport は処理結果の内容を生成します
func (a *App) generateReport(summary *ticket.Summary, inputFingerprint, outputFingerprint string) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("#チケット数: %d（処理済み %d）\n", summary.RecordCount, summary.Processed))
	for _, r := range summary.Records {
		builder.WriteString(fmt.Sprintf("%3d %s\n", r.Index, describeResult(r)))
	}

	if a.config.Localize {
		n := summary.Names
		builder.WriteString(fmt.Sprintf("#名前: 変更 %d、変更不要 %d、スキップ %d（対応なし %d、範囲外 %d、領域不足 %d）\n",
			n.Patched, n.AlreadyCorrect, n.Skipped(), n.Unmapped, n.OutOfBounds, n.TooSmall))
	}
	if a.config.Unlock {
		tr := summary.Trials
		builder.WriteString(fmt.Sprintf("#体験版: 解除 %d、製品版 %d\n", tr.Patched, tr.AlreadyCorrect))
	}
	writeWarnings(&builder, summary)

	builder.WriteString(fmt.Sprintf("#BLAKE3 入力: %s\n", inputFingerprint))
	if outputFingerprint != "" {
		builder.WriteString(fmt.Sprintf("#BLAKE3 出力: %s\n", outputFingerprint))
	}

	return builder.String()
}

func writeWarnings(builder *strings.Builder, summary *ticket.Summary) {
	if summary.SizeMismatch {
		builder.WriteString(fmt.Sprintf("#警告: ファイルサイズ (%d) がチケット数から期待されるサイズ (%d) より小さいです\n",
			summary.BufferSize, ticket.ExpectedSize(summary.RecordCount)))
	}
	if summary.Unterminated > 0 {
		builder.WriteString(fmt.Sprintf("#警告: 終端のない名前が %d 件あります\n", summary.Unterminated))
	}
}

func releaseLabel(r ticket.RecordResult) string {
	if r.IsTrial() {
		return "TRIAL"
	}
	return "FULL"
}

// describeName は一覧表示用の名前を返します
func describeName(r ticket.RecordResult) string {
	if r.NameErr != nil {
		return "(名前の位置が範囲外)"
	}
	raw := charset.Display(r.RawName)
	switch r.Match.State {
	case ticket.StateNeedsPatch:
		return fmt.Sprintf("%s <- %s%s", r.Match.Mapping.Name, raw, contentID(r.Match.Mapping))
	case ticket.StateAlreadyCorrect:
		return fmt.Sprintf("%s%s", r.Match.Mapping.Name, contentID(r.Match.Mapping))
	default:
		return fmt.Sprintf("Unknown Game (%s)", raw)
	}
}

func contentID(m *ticket.NameMapping) string {
	if m == nil || m.ContentID == "" {
		return ""
	}
	return fmt.Sprintf(" [CID %s]", m.ContentID)
}

// describeResult は処理結果の 1 行を返します
func describeResult(r ticket.RecordResult) string {
	var parts []string

	switch r.Name {
	case ticket.OutcomePatched:
		parts = append(parts, fmt.Sprintf("名前: %s -> %s", charset.Display(r.RawName), r.NewName))
	case ticket.OutcomeAlreadyCorrect:
		parts = append(parts, fmt.Sprintf("名前: %s（変更不要）", charset.Display(r.RawName)))
	case ticket.OutcomeUnmapped:
		parts = append(parts, fmt.Sprintf("名前: 対応なし %s", charset.Display(r.RawName)))
	case ticket.OutcomeOutOfBounds:
		parts = append(parts, "名前: 位置が範囲外のためスキップ")
	case ticket.OutcomeTooSmall:
		parts = append(parts, fmt.Sprintf("名前: %s が領域に収まらないためスキップ", r.Match.Mapping.Name))
	}

	switch r.Trial {
	case ticket.OutcomePatched:
		parts = append(parts, "体験版 -> 製品版")
	case ticket.OutcomeAlreadyCorrect:
		parts = append(parts, "製品版（変更不要）")
	}

	return strings.Join(parts, " / ")
}
