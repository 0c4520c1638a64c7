package domain

import (
	"encoding/json"
	"strings"
)

// Category - категория POI
type Category string

const (
	CategoryCafe       Category = "CAFE"
	CategoryPark       Category = "PARK"
	CategoryRestaurant Category = "RESTAURANT"
	CategoryMuseum     Category = "MUSEUM"
	CategoryBar        Category = "BAR"
	CategoryShop       Category = "SHOP"
	CategoryHotel      Category = "HOTEL"
	CategoryLibrary    Category = "LIBRARY"
	CategoryGallery    Category = "GALLERY"
	CategoryOther      Category = "OTHER"
)

var knownCategories = map[string]Category{
	"CAFE":       CategoryCafe,
	"PARK":       CategoryPark,
	"RESTAURANT": CategoryRestaurant,
	"MUSEUM":     CategoryMuseum,
	"BAR":        CategoryBar,
	"SHOP":       CategoryShop,
	"HOTEL":      CategoryHotel,
	"LIBRARY":    CategoryLibrary,
	"GALLERY":    CategoryGallery,
	"OTHER":      CategoryOther,
}

// ParseCategory - нераспознанные значения отображаются в OTHER, а не отклоняются
func ParseCategory(value string) Category {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if category, ok := knownCategories[normalized]; ok {
		return category
	}
	return CategoryOther
}

func (c Category) String() string {
	return string(c)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ParseCategory(raw)
	return nil
}
