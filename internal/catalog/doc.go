// Package catalog はレストランと料理の読み取り専用クエリサービスを提供する。
//
// Serviceはリクエストパラメータをパラメータ化クエリに変換し、型付きのレコードを返す。
// Serverは各エンドポイントのHTTPリクエストをServiceの操作に対応付け、
// 結果を 200 / 404 / 500 のいずれかのJSONレスポンスに分類する。
// 書き込み系の操作は提供しない。
package catalog
