package catalog

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/nao1215/foodfinder/internal/store"
	"github.com/stretchr/testify/require"
)

// testWriter はslogの出力をt.Logに流す。
type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// newTestLogger はテスト失敗時や-v指定時のみ表示されるロガーを返す。
func newTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// setupTestDB はスキーマ適用済みのインメモリSQLiteを作成する。
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.Open(context.Background(), store.MemoryPath)
	require.NoError(t, err, "インメモリSQLiteの接続に失敗")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db, newTestLogger(t)), "スキーマの初期化に失敗")
	return db
}

// insertTestRestaurant はテスト用のレストランを挿入する。
func insertTestRestaurant(t *testing.T, db *sql.DB, r Restaurant) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO restaurants (id, name, cuisine, rating, isVeg, hasOutdoorSeating, isLuxury)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Cuisine, r.Rating, r.IsVeg, r.HasOutdoorSeating, r.IsLuxury,
	)
	require.NoError(t, err, "テスト用レストランの挿入に失敗")
}

// insertTestDish はテスト用の料理を挿入する。
func insertTestDish(t *testing.T, db *sql.DB, d Dish) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO dishes (id, name, price, isVeg) VALUES (?, ?, ?, ?)`,
		d.ID, d.Name, d.Price, d.IsVeg,
	)
	require.NoError(t, err, "テスト用料理の挿入に失敗")
}

// testRestaurants は全属性の組み合わせを含むテスト用レストラン。
var testRestaurants = []Restaurant{
	{ID: 1, Name: "Spice Kitchen", Cuisine: "Indian", Rating: 4.5, IsVeg: true, HasOutdoorSeating: true, IsLuxury: false},
	{ID: 2, Name: "Olive Bistro", Cuisine: "Italian", Rating: 4.1, IsVeg: false, HasOutdoorSeating: false, IsLuxury: true},
	{ID: 3, Name: "Green Leaf", Cuisine: "Chinese", Rating: 4.5, IsVeg: true, HasOutdoorSeating: false, IsLuxury: false},
	{ID: 4, Name: "Royal Tandoor", Cuisine: "Indian", Rating: 4.7, IsVeg: false, HasOutdoorSeating: true, IsLuxury: true},
	{ID: 5, Name: "Garden Veg", Cuisine: "Indian", Rating: 3.9, IsVeg: true, HasOutdoorSeating: true, IsLuxury: true},
	{ID: 6, Name: "Bangkok Street", Cuisine: "Thai", Rating: 4.8, IsVeg: false, HasOutdoorSeating: true, IsLuxury: false},
}

// testDishes はテスト用の料理。
var testDishes = []Dish{
	{ID: 1, Name: "Paneer Butter Masala", Price: 300, IsVeg: true},
	{ID: 2, Name: "Chicken Alfredo Pasta", Price: 500, IsVeg: false},
	{ID: 3, Name: "Veg Hakka Noodles", Price: 250, IsVeg: true},
	{ID: 4, Name: "Butter Chicken", Price: 300, IsVeg: false},
}

// seedTestCatalog はtestRestaurantsとtestDishesを挿入する。
func seedTestCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, r := range testRestaurants {
		insertTestRestaurant(t, db, r)
	}
	for _, d := range testDishes {
		insertTestDish(t, db, d)
	}
}
