package nametable

import "errors"

var (
	// ErrReadTable は対応表ファイルの読み込みに失敗した場合のエラー
	ErrReadTable = errors.New("名前対応表の読み込みに失敗しました")

	// ErrParseYAML は YAML の解析に失敗した場合のエラー
	ErrParseYAML = errors.New("名前対応表の YAML を解析できませんでした")

	// ErrEmptyTable は対応が 1 件もない場合のエラー
	ErrEmptyTable = errors.New("名前対応表が空です")

	// ErrMissingKey は legacy と text のどちらも指定されていない場合のエラー
	ErrMissingKey = errors.New("legacy か text のどちらかを指定してください")

	// ErrAmbiguousKey は legacy と text の両方が指定されている場合のエラー
	ErrAmbiguousKey = errors.New("legacy と text は同時に指定できません")

	// ErrInvalidHex は legacy の 16 進表記が不正な場合のエラー
	ErrInvalidHex = errors.New("legacy の 16 進表記が不正です")

	// ErrEncodeText は text を GB2312 に変換できない場合のエラー
	ErrEncodeText = errors.New("text を GB2312 に変換できませんでした")

	// ErrInvalidEntry は対応の内容が不正な場合のエラー
	ErrInvalidEntry = errors.New("名前対応表の内容が不正です")
)
