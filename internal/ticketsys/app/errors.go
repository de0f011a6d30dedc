package app

import "errors"

var (
	// ErrLoadTable は名前対応表の読み込みに失敗した場合のエラー
	ErrLoadTable = errors.New("名前対応表の読み込みに失敗しました")

	// ErrStructure はチケットファイルの構造が不正な場合のエラー
	ErrStructure = errors.New("チケットファイルの構造が不正です")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")
)
