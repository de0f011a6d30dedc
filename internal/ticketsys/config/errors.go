package config

import "errors"

var (
	// ErrNoInput は入力ファイルが指定されていない場合のエラー
	ErrNoInput = errors.New("ticket.sys のパスが指定されていません")

	// ErrUnexpectedArgument は余分な引数が指定された場合のエラー
	ErrUnexpectedArgument = errors.New("不明な引数です")
)
