package catalog

import catalogdb "github.com/nao1215/foodfinder/internal/catalog/db"

// Restaurant はレストランのレコード。
type Restaurant struct {
	// ID はレストランの一意識別子。
	ID int64 `json:"id"`
	// Name は店名。
	Name string `json:"name"`
	// Cuisine は料理ジャンル（例: Italian, Thai）。
	Cuisine string `json:"cuisine"`
	// Rating は評価。並び替えに使用する。
	Rating float64 `json:"rating"`
	// IsVeg はベジタリアン対応かどうか。
	IsVeg bool `json:"isVeg"`
	// HasOutdoorSeating は屋外席があるかどうか。
	HasOutdoorSeating bool `json:"hasOutdoorSeating"`
	// IsLuxury は高級店かどうか。
	IsLuxury bool `json:"isLuxury"`
}

// Dish は料理のレコード。
type Dish struct {
	// ID は料理の一意識別子。
	ID int64 `json:"id"`
	// Name は料理名。
	Name string `json:"name"`
	// Price は価格。並び替えに使用する。
	Price float64 `json:"price"`
	// IsVeg はベジタリアン料理かどうか。
	IsVeg bool `json:"isVeg"`
}

// toRestaurant はDB行をレコードに変換する。
func toRestaurant(r catalogdb.Restaurant) Restaurant {
	return Restaurant{
		ID:                r.ID,
		Name:              r.Name,
		Cuisine:           r.Cuisine,
		Rating:            r.Rating,
		IsVeg:             r.IsVeg,
		HasOutdoorSeating: r.HasOutdoorSeating,
		IsLuxury:          r.IsLuxury,
	}
}

// toDish はDB行をレコードに変換する。
func toDish(d catalogdb.Dish) Dish {
	return Dish{
		ID:    d.ID,
		Name:  d.Name,
		Price: d.Price,
		IsVeg: d.IsVeg,
	}
}
