package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shiroemons/go-ticketsys/internal/ticketsys/app"
	"github.com/shiroemons/go-ticketsys/internal/ticketsys/config"
)

func main() {
	// コマンドライン引数の解析
	cfg, err := config.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if config.IsHelp(err) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(2)
	}

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	// アプリケーションの実行
	application := app.New(cfg)
	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}
