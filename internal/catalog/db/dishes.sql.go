package db

import (
	"context"
	"database/sql"
)

const dishColumns = `id, name, price, isVeg`

const listDishes = `SELECT ` + dishColumns + ` FROM dishes`

// ListDishes は全料理をストアの自然順で取得する。
func (q *Queries) ListDishes(ctx context.Context) ([]Dish, error) {
	rows, err := q.db.QueryContext(ctx, listDishes)
	if err != nil {
		return nil, err
	}
	return scanDishes(rows)
}

const getDishByID = `SELECT ` + dishColumns + ` FROM dishes WHERE id = ?`

// GetDishByID は指定IDの料理を取得する。
// idはパスの値をそのままバインドし、整数への変換はカラムの型アフィニティに任せる。
// 該当行がない場合はsql.ErrNoRowsを返す。
func (q *Queries) GetDishByID(ctx context.Context, id string) (Dish, error) {
	row := q.db.QueryRowContext(ctx, getDishByID, id)
	var d Dish
	err := row.Scan(&d.ID, &d.Name, &d.Price, &d.IsVeg)
	return d, err
}

const listDishesByFilter = `SELECT ` + dishColumns + ` FROM dishes WHERE isVeg = ?`

// ListDishesByFilter はベジタリアン属性が一致する料理を取得する。
func (q *Queries) ListDishesByFilter(ctx context.Context, isVeg sql.NullBool) ([]Dish, error) {
	rows, err := q.db.QueryContext(ctx, listDishesByFilter, isVeg)
	if err != nil {
		return nil, err
	}
	return scanDishes(rows)
}

const listDishesSortedByPrice = `SELECT ` + dishColumns + ` FROM dishes ORDER BY price ASC, id ASC`

// ListDishesSortedByPrice は価格の昇順で料理を取得する。
func (q *Queries) ListDishesSortedByPrice(ctx context.Context) ([]Dish, error) {
	rows, err := q.db.QueryContext(ctx, listDishesSortedByPrice)
	if err != nil {
		return nil, err
	}
	return scanDishes(rows)
}

func scanDishes(rows *sql.Rows) ([]Dish, error) {
	defer func() { _ = rows.Close() }()

	var items []Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Price, &d.IsVeg); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
