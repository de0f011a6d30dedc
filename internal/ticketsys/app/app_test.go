package app

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shiroemons/go-ticketsys/internal/ticketsys/config"
	"github.com/shiroemons/go-ticketsys/internal/ticketsys/fileutil"
	"github.com/shiroemons/go-ticketsys/internal/ticketsys/mocks"
	"github.com/shiroemons/go-ticketsys/pkg/ticket"
)

var superMarioGB = []byte("\xc9\xf1\xd3\xce\xc2\xed\xc1\xa6\xc5\xb7")

// buildTicketSys はテスト用の ticket.sys を作成します（名前はコンテンツ記述領域の先頭）
func buildTicketSys(names [][]byte, trials []uint16) []byte {
	buf := make([]byte, ticket.HeaderSize+len(names)*ticket.RecordSize)
	binary.BigEndian.PutUint32(buf, uint32(len(names)))
	for i, name := range names {
		off := ticket.RecordOffset(i)
		copy(buf[off+ticket.DescOffset:], append(append([]byte{}, name...), 0))
		binary.BigEndian.PutUint16(buf[off+ticket.TrialOffset:], trials[i])
	}
	return buf
}

func newTestApp(cfg *config.Config, fs *mocks.MockFileSystem) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return NewWithOptions(cfg, Options{
		FileSystem: fs,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Output:     &out,
	}), &out
}

func TestApp_Run(t *testing.T) {
	store := buildTicketSys(
		[][]byte{superMarioGB, []byte("Paper Mario"), []byte("\xb2\xe2\xca\xd4")},
		[]uint16{1, 0, 0},
	)

	tests := []struct {
		name        string
		cfg         config.Config
		wantWrite   bool
		wantOutput  []string
		checkResult func(t *testing.T, data []byte)
	}{
		{
			name: "一覧表示",
			cfg:  config.Config{InputPath: "ticket.sys", List: true},
			wantOutput: []string{
				"#チケット数: 3",
				"[TRIAL] Super Mario 64 <- 神游马力欧 [CID 1101104]",
				"[FULL] Paper Mario [CID 2102104]",
				"Unknown Game (测试)",
			},
		},
		{
			name:      "英語化",
			cfg:       config.Config{InputPath: "ticket.sys", Localize: true},
			wantWrite: true,
			wantOutput: []string{
				"名前: 神游马力欧 -> Super Mario 64",
				"名前: Paper Mario（変更不要）",
				"名前: 対応なし 测试",
				"#名前: 変更 1、変更不要 1、スキップ 1（対応なし 1、範囲外 0、領域不足 0）",
				"保存先: ticket_patched.sys",
			},
			checkResult: func(t *testing.T, data []byte) {
				off := ticket.RecordOffset(0) + ticket.DescOffset
				if !bytes.HasPrefix(data[off:], []byte("Super Mario 64\x00")) {
					t.Errorf("name not patched: %q", data[off:off+16])
				}
				if v := binary.BigEndian.Uint16(data[ticket.RecordOffset(0)+ticket.TrialOffset:]); v != 1 {
					t.Errorf("trial flag should be untouched, got %d", v)
				}
			},
		},
		{
			name:      "体験版解除と出力先指定",
			cfg:       config.Config{InputPath: "ticket.sys", OutputPath: "out/ticket.sys", Unlock: true},
			wantWrite: true,
			wantOutput: []string{
				"体験版 -> 製品版",
				"#体験版: 解除 1、製品版 2",
				"保存先: out/ticket.sys",
			},
			checkResult: func(t *testing.T, data []byte) {
				if v := binary.BigEndian.Uint16(data[ticket.RecordOffset(0)+ticket.TrialOffset:]); v != 0 {
					t.Errorf("trial flag = %d, want 0", v)
				}
			},
		},
		{
			name:       "ドライラン",
			cfg:        config.Config{InputPath: "ticket.sys", Localize: true, Unlock: true, DryRun: true},
			wantOutput: []string{"#BLAKE3 入力: ", "#BLAKE3 出力: "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			fs.Files["ticket.sys"] = append([]byte(nil), store...)

			cfg := tt.cfg
			app, out := newTestApp(&cfg, fs)
			if err := app.Run(context.Background()); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			for _, want := range tt.wantOutput {
				if !strings.Contains(out.String(), want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
				}
			}

			if !bytes.Equal(fs.Files["ticket.sys"], store) {
				t.Error("input file must never be modified")
			}
			if !tt.wantWrite {
				if fs.Writes != 0 {
					t.Errorf("Expected no writes, got %d", fs.Writes)
				}
				return
			}
			if fs.Writes != 1 {
				t.Fatalf("Expected 1 write, got %d", fs.Writes)
			}
			path := cfg.OutputPath
			if path == "" {
				path = fileutil.GenerateOutputFilename(cfg.InputPath)
			}
			data, ok := fs.Files[path]
			if !ok {
				t.Fatalf("output %s not written", path)
			}
			if len(data) != len(store) {
				t.Errorf("output size = %d, want %d", len(data), len(store))
			}
			if tt.checkResult != nil {
				tt.checkResult(t, data)
			}
		})
	}
}

func TestApp_Run_NoChanges(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["ticket.sys"] = buildTicketSys([][]byte{[]byte("F-Zero X")}, []uint16{0})

	app, out := newTestApp(&config.Config{InputPath: "ticket.sys", Localize: true, Unlock: true}, fs)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if fs.Writes != 0 {
		t.Errorf("Expected no writes when nothing changed, got %d", fs.Writes)
	}
	if !strings.Contains(out.String(), "#名前: 変更 0、変更不要 1") {
		t.Errorf("unexpected report:\n%s", out.String())
	}
}

func TestApp_Run_StructuralError(t *testing.T) {
	store := buildTicketSys([][]byte{superMarioGB, superMarioGB}, []uint16{0, 0})
	fs := mocks.NewMockFileSystem()
	fs.Files["ticket.sys"] = store[:len(store)-1]

	app, out := newTestApp(&config.Config{InputPath: "ticket.sys", Localize: true}, fs)
	err := app.Run(context.Background())
	if !errors.Is(err, ErrStructure) || !errors.Is(err, ticket.ErrTruncatedRecord) {
		t.Fatalf("Expected structural error, got %v", err)
	}
	if fs.Writes != 0 {
		t.Error("nothing should be written after a structural error")
	}
	for _, want := range []string{"#チケット数: 2（処理済み 1）", "#警告: ファイルサイズ"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestApp_Run_Errors(t *testing.T) {
	t.Run("入力ファイルなし", func(t *testing.T) {
		fs := mocks.NewMockFileSystem()
		app, _ := newTestApp(&config.Config{InputPath: "missing.sys", List: true}, fs)
		if err := app.Run(context.Background()); !errors.Is(err, fileutil.ErrFileNotFound) {
			t.Errorf("Expected ErrFileNotFound, got %v", err)
		}
	})

	t.Run("対応表が読めない", func(t *testing.T) {
		fs := mocks.NewMockFileSystem()
		fs.Files["ticket.sys"] = buildTicketSys(nil, nil)
		app, _ := newTestApp(&config.Config{InputPath: "ticket.sys", MapPath: "names.yaml", Localize: true}, fs)
		if err := app.Run(context.Background()); !errors.Is(err, ErrLoadTable) {
			t.Errorf("Expected ErrLoadTable, got %v", err)
		}
	})

	t.Run("書き込み失敗", func(t *testing.T) {
		fs := mocks.NewMockFileSystem()
		fs.Files["ticket.sys"] = buildTicketSys([][]byte{superMarioGB}, []uint16{0})
		fs.WriteError = errors.New("disk full")
		app, _ := newTestApp(&config.Config{InputPath: "ticket.sys", Localize: true}, fs)
		if err := app.Run(context.Background()); !errors.Is(err, ErrSaveFile) {
			t.Errorf("Expected ErrSaveFile, got %v", err)
		}
	})

	t.Run("キャンセル済み", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		app, _ := newTestApp(&config.Config{InputPath: "ticket.sys"}, mocks.NewMockFileSystem())
		if err := app.Run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestApp_Run_CustomTable(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["ticket.sys"] = buildTicketSys([][]byte{[]byte("\xb2\xe2\xca\xd4")}, []uint16{0})
	fs.Files["names.yaml"] = []byte("names:\n  - text: 测试\n    name: Test Title\n")

	app, out := newTestApp(&config.Config{InputPath: "ticket.sys", MapPath: "names.yaml", Localize: true}, fs)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "名前: 测试 -> Test Title") {
		t.Errorf("unexpected report:\n%s", out.String())
	}
	off := ticket.RecordOffset(0) + ticket.DescOffset
	if !bytes.HasPrefix(fs.Files["ticket_patched.sys"][off:], []byte("Test Title\x00")) {
		t.Error("name not patched with custom table")
	}
}
