package db

// Restaurant はrestaurantsテーブルの1行。
type Restaurant struct {
	ID                int64
	Name              string
	Cuisine           string
	Rating            float64
	IsVeg             bool
	HasOutdoorSeating bool
	IsLuxury          bool
}

// Dish はdishesテーブルの1行。
type Dish struct {
	ID    int64
	Name  string
	Price float64
	IsVeg bool
}
