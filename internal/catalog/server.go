package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/foodfinder/internal/metrics"
	"github.com/nao1215/foodfinder/pkg/middleware"
)

// 404レスポンスのメッセージ。
const (
	msgNoRestaurants            = "No Restaurants Found"
	msgRestaurantNotFound       = "Restaurant Not Found"
	msgNoRestaurantsForCuisine  = "No Restaurants Found for the given Cuisine"
	msgNoRestaurantsWithFilters = "No Restaurants Found with the given Filters"
	msgNoDishes                 = "No Dishes Found"
	msgDishNotFound             = "Dish Not Found"
	msgNoDishesWithFilter       = "No Dishes Found with the given Filter"
)

// Pinger はヘルスチェックでデータストアの疎通を確認するためのインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options はServerの生成オプション。
type Options struct {
	// Addr はリッスンアドレス（例: ":3000"）。
	Addr string
	// CORSOrigins は許可するオリジン。
	CORSOrigins []string
	// Logger はリクエストログとエラーログの出力先。nilの場合はslog.Default()を使う。
	Logger *slog.Logger
	// ShutdownTimeout はRunがコンテキスト終了後に処理中のリクエストを待つ時間。
	ShutdownTimeout time.Duration
}

// Server はカタログAPIのHTTPサーバー。
// HTTPリクエストをServiceの操作に対応付け、結果をレスポンスに変換する。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// addr はサーバーのリッスンアドレス。
	addr string
	// service はカタログのクエリサービス。
	service *Service
	// pinger はヘルスチェック用のデータストア。
	pinger Pinger
	// logger は構造化ロガー。
	logger *slog.Logger
	// shutdownTimeout はグレースフルシャットダウンの待ち時間。
	shutdownTimeout time.Duration
}

// NewServer は新しいカタログAPIサーバーを生成する。
// serviceとpingerには起動時に開いたデータストアを元にしたものを渡す。
func NewServer(service *Service, pinger Pinger, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	// RecoveryはLoggerとメトリクスの内側。パニックによる500も記録される
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(opts.CORSOrigins))

	s := &Server{
		router:          router,
		addr:            opts.Addr,
		service:         service,
		pinger:          pinger,
		logger:          logger,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	s.setupRoutes()

	return s
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxが終了するまでリクエストを処理する。
// ctx終了後はshutdownTimeoutの範囲で処理中のリクエストの完了を待つ。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTPサーバーを起動します", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("HTTPサーバーを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	restaurants := s.router.Group("/restaurants")
	{
		// レストラン一覧取得
		restaurants.GET("", s.handleListRestaurants())
		// レストラン詳細取得
		restaurants.GET("/details/:id", s.handleGetRestaurant())
		// 料理ジャンル別レストラン一覧
		restaurants.GET("/cuisine/:cuisine", s.handleListRestaurantsByCuisine())
		// 属性フィルタ
		restaurants.GET("/filter", s.handleFilterRestaurants())
		// 評価順
		restaurants.GET("/sort-by-rating", s.handleSortRestaurantsByRating())
	}

	dishes := s.router.Group("/dishes")
	{
		// 料理一覧取得
		dishes.GET("", s.handleListDishes())
		// 料理詳細取得
		dishes.GET("/details/:id", s.handleGetDish())
		// 属性フィルタ
		dishes.GET("/filter", s.handleFilterDishes())
		// 価格順
		dishes.GET("/sort-by-price", s.handleSortDishesByPrice())
	}

	s.router.GET("/health", s.handleHealth())
	s.router.GET("/metrics", metrics.Handler())
}

// handleListRestaurants は全レストランを返すハンドラ。
func (s *Server) handleListRestaurants() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.service.ListRestaurants(c.Request.Context())
		writeList(s, c, "restaurants", msgNoRestaurants, items, err)
	}
}

// handleGetRestaurant は指定IDのレストラン詳細を返すハンドラ。
func (s *Server) handleGetRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		item, found, err := s.service.GetRestaurant(c.Request.Context(), c.Param("id"))
		writeOne(s, c, "restaurant", msgRestaurantNotFound, item, found, err)
	}
}

// handleListRestaurantsByCuisine はパスパラメータ :cuisine に完全一致するレストランを返すハンドラ。
func (s *Server) handleListRestaurantsByCuisine() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.service.ListRestaurantsByCuisine(c.Request.Context(), c.Param("cuisine"))
		writeList(s, c, "restaurants", msgNoRestaurantsForCuisine, items, err)
	}
}

// handleFilterRestaurants はクエリパラメータ isVeg, hasOutdoorSeating, isLuxury が
// すべて一致するレストランを返すハンドラ。欠落・不正な値は一致なしとして扱う。
func (s *Server) handleFilterRestaurants() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := ParseRestaurantFilter(c.Request.URL.Query())
		items, err := s.service.ListRestaurantsByFilter(c.Request.Context(), filter)
		writeList(s, c, "restaurants", msgNoRestaurantsWithFilters, items, err)
	}
}

// handleSortRestaurantsByRating は評価の降順でレストランを返すハンドラ。
func (s *Server) handleSortRestaurantsByRating() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.service.ListRestaurantsSortedByRating(c.Request.Context())
		writeList(s, c, "restaurants", msgNoRestaurants, items, err)
	}
}

// handleListDishes は全料理を返すハンドラ。
func (s *Server) handleListDishes() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.service.ListDishes(c.Request.Context())
		writeList(s, c, "dishes", msgNoDishes, items, err)
	}
}

// handleGetDish は指定IDの料理詳細を返すハンドラ。
func (s *Server) handleGetDish() gin.HandlerFunc {
	return func(c *gin.Context) {
		item, found, err := s.service.GetDish(c.Request.Context(), c.Param("id"))
		writeOne(s, c, "dish", msgDishNotFound, item, found, err)
	}
}

// handleFilterDishes はクエリパラメータ isVeg が一致する料理を返すハンドラ。
func (s *Server) handleFilterDishes() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := ParseDishFilter(c.Request.URL.Query())
		items, err := s.service.ListDishesByFilter(c.Request.Context(), filter)
		writeList(s, c, "dishes", msgNoDishesWithFilter, items, err)
	}
}

// handleSortDishesByPrice は価格の昇順で料理を返すハンドラ。
func (s *Server) handleSortDishesByPrice() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.service.ListDishesSortedByPrice(c.Request.Context())
		writeList(s, c, "dishes", msgNoDishes, items, err)
	}
}

// handleHealth はデータストアの疎通を確認するヘルスチェックハンドラ。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.pinger.PingContext(c.Request.Context()); err != nil {
			s.logger.Error("ヘルスチェックでデータストアに接続できません", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": "foodfinder"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "foodfinder"})
	}
}

// writeList は一覧クエリの結果を分類してレスポンスを書き込む。
// 空の結果は200の空配列ではなく404になる。
func writeList[T any](s *Server, c *gin.Context, key, notFound string, items []T, err error) {
	if err != nil {
		s.writeStoreFailure(c, err)
		return
	}
	if len(items) == 0 {
		writeNotFound(c, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: items})
}

// writeOne は単一レコードクエリの結果を分類してレスポンスを書き込む。
func writeOne[T any](s *Server, c *gin.Context, key, notFound string, item T, found bool, err error) {
	if err != nil {
		s.writeStoreFailure(c, err)
		return
	}
	if !found {
		writeNotFound(c, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: item})
}

// writeNotFound は404レスポンスを書き込む。
func writeNotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// writeStoreFailure はストア障害をログに出力し、元のエラーメッセージで500を返す。
func (s *Server) writeStoreFailure(c *gin.Context, err error) {
	op := "unknown"
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		op = storeErr.Op
	}
	s.logger.Error("データストアの操作に失敗",
		"op", op,
		"request_id", middleware.GetRequestID(c),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
