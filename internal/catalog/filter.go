package catalog

import (
	"database/sql"
	"net/url"
	"strconv"
)

// RestaurantFilter はレストランの属性フィルタ。3つの条件はすべてAND結合される。
// Validでない値はSQLのNULLとして比較されるため、どのレストランにも一致しない。
type RestaurantFilter struct {
	IsVeg             sql.NullBool
	HasOutdoorSeating sql.NullBool
	IsLuxury          sql.NullBool
}

// DishFilter は料理の属性フィルタ。
type DishFilter struct {
	IsVeg sql.NullBool
}

// ParseBoolParam はクエリパラメータの文字列を真偽値に変換する。
// strconv.ParseBoolが受け付ける値（true, false, 1, 0 など）のみ有効とし、
// 空文字列や解釈できない値はNULL（Valid=false）を返す。
// NULLとの比較は常に一致しないので、不正なフィルタ値は400ではなく空の結果になる。
func ParseBoolParam(raw string) sql.NullBool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: v, Valid: true}
}

// ParseRestaurantFilter はクエリ文字列からレストランフィルタを組み立てる。
func ParseRestaurantFilter(q url.Values) RestaurantFilter {
	return RestaurantFilter{
		IsVeg:             ParseBoolParam(q.Get("isVeg")),
		HasOutdoorSeating: ParseBoolParam(q.Get("hasOutdoorSeating")),
		IsLuxury:          ParseBoolParam(q.Get("isLuxury")),
	}
}

// ParseDishFilter はクエリ文字列から料理フィルタを組み立てる。
func ParseDishFilter(q url.Values) DishFilter {
	return DishFilter{IsVeg: ParseBoolParam(q.Get("isVeg"))}
}
