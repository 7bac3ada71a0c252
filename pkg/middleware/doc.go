// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// リクエストIDの採番、構造化リクエストログ、パニックリカバリ、
// CORS設定など、HTTPサーバーで共通して使用するミドルウェアを含む。
package middleware
