package catalog

import (
	"context"
	"database/sql"
	"errors"

	catalogdb "github.com/nao1215/foodfinder/internal/catalog/db"
	"github.com/nao1215/foodfinder/internal/metrics"
)

// 操作名。ログとメトリクスのラベルに使う。
const (
	OpListRestaurants               = "list_restaurants"
	OpGetRestaurant                 = "get_restaurant"
	OpListRestaurantsByCuisine      = "list_restaurants_by_cuisine"
	OpListRestaurantsByFilter       = "list_restaurants_by_filter"
	OpListRestaurantsSortedByRating = "list_restaurants_sorted_by_rating"
	OpListDishes                    = "list_dishes"
	OpGetDish                       = "get_dish"
	OpListDishesByFilter            = "list_dishes_by_filter"
	OpListDishesSortedByPrice       = "list_dishes_sorted_by_price"
)

// StoreError はデータストアの操作自体が完了しなかったことを表す。
// Error()は元のエラーメッセージをそのまま返す。
type StoreError struct {
	// Op は失敗した操作名。
	Op string
	// Err はドライバから返されたエラー。
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Service はカタログの読み取りクエリを実行する。
// 状態を持たないため、複数のリクエストから同時に呼び出してよい。
type Service struct {
	// queries はパラメータ化クエリの実行オブジェクト。
	queries *catalogdb.Queries
}

// NewService は新しいクエリサービスを生成する。
// dbはプロセス起動時に開いた接続を渡す。
func NewService(db catalogdb.DBTX) *Service {
	return &Service{queries: catalogdb.New(db)}
}

// ListRestaurants は全レストランを返す。
func (s *Service) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	rows, err := s.queries.ListRestaurants(ctx)
	return collect(OpListRestaurants, rows, err, toRestaurant)
}

// GetRestaurant は指定IDのレストランを返す。
// idは受け取った文字列のまま問い合わせる（"1.0"は1に一致し、"abc"はどれにも一致しない）。
// 該当するレストランがない場合はfound=false、err=nilを返す。
func (s *Service) GetRestaurant(ctx context.Context, id string) (Restaurant, bool, error) {
	row, err := s.queries.GetRestaurantByID(ctx, id)
	return one(OpGetRestaurant, row, err, toRestaurant)
}

// ListRestaurantsByCuisine は料理ジャンルが完全一致するレストランを返す。
func (s *Service) ListRestaurantsByCuisine(ctx context.Context, cuisine string) ([]Restaurant, error) {
	rows, err := s.queries.ListRestaurantsByCuisine(ctx, cuisine)
	return collect(OpListRestaurantsByCuisine, rows, err, toRestaurant)
}

// ListRestaurantsByFilter はフィルタの3属性すべてが一致するレストランを返す。
func (s *Service) ListRestaurantsByFilter(ctx context.Context, f RestaurantFilter) ([]Restaurant, error) {
	rows, err := s.queries.ListRestaurantsByFilter(ctx, catalogdb.ListRestaurantsByFilterParams{
		IsVeg:             f.IsVeg,
		HasOutdoorSeating: f.HasOutdoorSeating,
		IsLuxury:          f.IsLuxury,
	})
	return collect(OpListRestaurantsByFilter, rows, err, toRestaurant)
}

// ListRestaurantsSortedByRating は評価の降順でレストランを返す。
func (s *Service) ListRestaurantsSortedByRating(ctx context.Context) ([]Restaurant, error) {
	rows, err := s.queries.ListRestaurantsSortedByRating(ctx)
	return collect(OpListRestaurantsSortedByRating, rows, err, toRestaurant)
}

// ListDishes は全料理を返す。
func (s *Service) ListDishes(ctx context.Context) ([]Dish, error) {
	rows, err := s.queries.ListDishes(ctx)
	return collect(OpListDishes, rows, err, toDish)
}

// GetDish は指定IDの料理を返す。
// 該当する料理がない場合はfound=false、err=nilを返す。
func (s *Service) GetDish(ctx context.Context, id string) (Dish, bool, error) {
	row, err := s.queries.GetDishByID(ctx, id)
	return one(OpGetDish, row, err, toDish)
}

// ListDishesByFilter はベジタリアン属性が一致する料理を返す。
func (s *Service) ListDishesByFilter(ctx context.Context, f DishFilter) ([]Dish, error) {
	rows, err := s.queries.ListDishesByFilter(ctx, f.IsVeg)
	return collect(OpListDishesByFilter, rows, err, toDish)
}

// ListDishesSortedByPrice は価格の昇順で料理を返す。
func (s *Service) ListDishesSortedByPrice(ctx context.Context) ([]Dish, error) {
	rows, err := s.queries.ListDishesSortedByPrice(ctx)
	return collect(OpListDishesSortedByPrice, rows, err, toDish)
}

// collect は一覧クエリの結果をレコードに変換する。
// 一致なしは空スライスとnilを返し、ストア障害とは区別する。
func collect[R, T any](op string, rows []R, err error, conv func(R) T) ([]T, error) {
	if err != nil {
		metrics.ObserveQuery(op, metrics.OutcomeError)
		return nil, &StoreError{Op: op, Err: err}
	}

	items := make([]T, 0, len(rows))
	for _, r := range rows {
		items = append(items, conv(r))
	}

	if len(items) == 0 {
		metrics.ObserveQuery(op, metrics.OutcomeNotFound)
	} else {
		metrics.ObserveQuery(op, metrics.OutcomeFound)
	}
	return items, nil
}

// one は単一行クエリの結果をレコードに変換する。
func one[R, T any](op string, row R, err error, conv func(R) T) (T, bool, error) {
	var zero T
	if errors.Is(err, sql.ErrNoRows) {
		metrics.ObserveQuery(op, metrics.OutcomeNotFound)
		return zero, false, nil
	}
	if err != nil {
		metrics.ObserveQuery(op, metrics.OutcomeError)
		return zero, false, &StoreError{Op: op, Err: err}
	}

	metrics.ObserveQuery(op, metrics.OutcomeFound)
	return conv(row), true, nil
}
