package db

import (
	"context"
	"database/sql"
)

const restaurantColumns = `id, name, cuisine, rating, isVeg, hasOutdoorSeating, isLuxury`

const listRestaurants = `SELECT ` + restaurantColumns + ` FROM restaurants`

// ListRestaurants は全レストランをストアの自然順で取得する。
func (q *Queries) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	rows, err := q.db.QueryContext(ctx, listRestaurants)
	if err != nil {
		return nil, err
	}
	return scanRestaurants(rows)
}

const getRestaurantByID = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`

// GetRestaurantByID は指定IDのレストランを取得する。
// idはパスの値をそのままバインドし、整数への変換はカラムの型アフィニティに任せる。
// 該当行がない場合はsql.ErrNoRowsを返す。
func (q *Queries) GetRestaurantByID(ctx context.Context, id string) (Restaurant, error) {
	row := q.db.QueryRowContext(ctx, getRestaurantByID, id)
	var r Restaurant
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Cuisine,
		&r.Rating,
		&r.IsVeg,
		&r.HasOutdoorSeating,
		&r.IsLuxury,
	)
	return r, err
}

const listRestaurantsByCuisine = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE cuisine = ?`

// ListRestaurantsByCuisine は料理ジャンルが完全一致するレストランを取得する。
func (q *Queries) ListRestaurantsByCuisine(ctx context.Context, cuisine string) ([]Restaurant, error) {
	rows, err := q.db.QueryContext(ctx, listRestaurantsByCuisine, cuisine)
	if err != nil {
		return nil, err
	}
	return scanRestaurants(rows)
}

const listRestaurantsByFilter = `SELECT ` + restaurantColumns + ` FROM restaurants
WHERE isVeg = ? AND hasOutdoorSeating = ? AND isLuxury = ?`

// ListRestaurantsByFilterParams はListRestaurantsByFilterの引数。
// Validでない値はNULLとしてバインドされ、どの行とも一致しない。
type ListRestaurantsByFilterParams struct {
	IsVeg             sql.NullBool
	HasOutdoorSeating sql.NullBool
	IsLuxury          sql.NullBool
}

// ListRestaurantsByFilter は3つの属性がすべて一致するレストランを取得する。
func (q *Queries) ListRestaurantsByFilter(ctx context.Context, arg ListRestaurantsByFilterParams) ([]Restaurant, error) {
	rows, err := q.db.QueryContext(ctx, listRestaurantsByFilter,
		arg.IsVeg,
		arg.HasOutdoorSeating,
		arg.IsLuxury,
	)
	if err != nil {
		return nil, err
	}
	return scanRestaurants(rows)
}

// 同評価の場合はINTEGER PRIMARY KEY（rowid）順、つまり自然順になる。
const listRestaurantsSortedByRating = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY rating DESC, id ASC`

// ListRestaurantsSortedByRating は評価の降順でレストランを取得する。
func (q *Queries) ListRestaurantsSortedByRating(ctx context.Context) ([]Restaurant, error) {
	rows, err := q.db.QueryContext(ctx, listRestaurantsSortedByRating)
	if err != nil {
		return nil, err
	}
	return scanRestaurants(rows)
}

// scanRestaurants は結果セットを全件スキャンしてクローズする。
// 途中でエラーが発生した場合は部分的な結果を返さない。
func scanRestaurants(rows *sql.Rows) ([]Restaurant, error) {
	defer func() { _ = rows.Close() }()

	var items []Restaurant
	for rows.Next() {
		var r Restaurant
		if err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Cuisine,
			&r.Rating,
			&r.IsVeg,
			&r.HasOutdoorSeating,
			&r.IsLuxury,
		); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
