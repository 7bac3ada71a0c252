// Package store はSQLiteデータストアへの接続を確立する。
//
// 接続はプロセス起動時に1度だけ開き、クエリサービスに注入して共有する。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DriverName はmodernc.org/sqliteが登録するドライバ名。
const DriverName = "sqlite"

// MemoryPath はインメモリデータベースを表すパス。
const MemoryPath = ":memory:"

// DSN はデータベースパスに接続時のプラグマを付与した接続文字列を返す。
func DSN(path string) string {
	if path == MemoryPath {
		return path
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
}

// Open はSQLiteデータベースを開き、疎通確認を行う。
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	// インメモリDBは接続ごとに別のデータベースになるため1接続に固定する
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("データベースの疎通確認に失敗: %w", err)
	}
	return db, nil
}
