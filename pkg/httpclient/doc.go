// Package httpclient はfoodfinder APIを呼び出すHTTPクライアントを提供する。
//
// CLIのhealthcheckサブコマンドが稼働中のサーバーへ問い合わせる際に使用する。
// 2xx以外のレスポンスは {"error": "..."} を解釈したStatusErrorとして返す。
package httpclient
