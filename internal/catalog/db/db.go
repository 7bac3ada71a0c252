// Package db はカタログ（レストラン・料理）テーブルへの読み取りクエリを提供する。
//
// すべてのクエリはプレースホルダでパラメータをバインドし、
// 行はこのパッケージの型付き構造体にスキャンされる。
package db

import (
	"context"
	"database/sql"
)

// DBTX は*sql.DBと*sql.Txの共通インターフェース。
type DBTX interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// New は新しいクエリ実行オブジェクトを生成する。
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries はカタログテーブルに対するクエリを実行する。
type Queries struct {
	// db はクエリの実行先。
	db DBTX
}
