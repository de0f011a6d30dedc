// Package config は ticketsys コマンドの設定管理を行います
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	InputPath   string
	OutputPath  string
	MapPath     string
	List        bool
	Localize    bool
	Unlock      bool
	ZeroFill    bool
	DebugMode   bool
	DryRun      bool
	ShowVersion bool
}

// HasPatchOps は書き換え処理が指定されているかを返します
func (c *Config) HasPatchOps() bool {
	return c.Localize || c.Unlock
}

// ParseFlags はコマンドライン引数を解析して設定を返します。
// args にはプログラム名を含めません。
func ParseFlags(args []string, output io.Writer) (*Config, error) {
	config := &Config{}

	flagSet := pflag.NewFlagSet("ticketsys", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintln(output, "使用方法: ticketsys [オプション] <ticket.sys>")
		fmt.Fprintln(output, "オプション:")
		flagSet.PrintDefaults()
	}

	// 入出力
	flagSet.StringVarP(&config.InputPath, "input", "i", "", "path to ticket.sys")
	flagSet.StringVarP(&config.OutputPath, "output", "o", "", "output path (default \"<input>_patched<ext>\")")
	flagSet.StringVarP(&config.MapPath, "map", "m", "", "YAML name table replacing the built-in one")

	// 処理
	flagSet.BoolVarP(&config.List, "list", "l", false, "list tickets without modifying anything")
	flagSet.BoolVarP(&config.Localize, "english", "e", false, "replace Chinese titles with English names")
	flagSet.BoolVarP(&config.Unlock, "unlock", "u", false, "convert trial tickets to full tickets")
	flagSet.BoolVarP(&config.ZeroFill, "zero-fill", "z", false, "zero the rest of the name field after the new name")

	// デバッグ・ドライラン・バージョン
	flagSet.BoolVarP(&config.DebugMode, "debug", "d", false, "enable debug output")
	flagSet.BoolVarP(&config.DryRun, "dry-run", "n", false, "perform a dry run without writing the output file")
	flagSet.BoolVarP(&config.ShowVersion, "version", "v", false, "show version information")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	if config.ShowVersion {
		return config, nil
	}

	rest := flagSet.Args()
	if config.InputPath == "" && len(rest) > 0 {
		config.InputPath = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArgument, rest[0])
	}
	if config.InputPath == "" {
		flagSet.Usage()
		return nil, ErrNoInput
	}

	// 処理の指定がなければ一覧表示
	if !config.HasPatchOps() {
		config.List = true
	}

	return config, nil
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("ticketsys version %s\n", Version)
		os.Exit(0)
	}
}

// IsHelp はヘルプ表示による終了かどうかを返します
func IsHelp(err error) bool {
	return errors.Is(err, pflag.ErrHelp)
}
