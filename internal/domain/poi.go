package domain

import "time"

// POI представляет точку интереса, переиспользуемую между курсами.
// Идентичность места задаётся тройкой (Name, Lat, Lng) - точное совпадение,
// без геопространственного поиска. На уровне БД тройка закрыта
// уникальным ограничением.
type POI struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  Category  `json:"category" db:"category"`
	Lat       float64   `json:"lat" db:"lat"`
	Lng       float64   `json:"lng" db:"lng"`
	Indoor    bool      `json:"indoor" db:"indoor"`
	MoodTag   *string   `json:"mood_tag,omitempty" db:"mood_tag"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Опциональные поля: nil на входе оставляет сохранённое значение нетронутым
	PriceLevel *int      `json:"price_level,omitempty" db:"price_level"`
	Alcohol    *int      `json:"alcohol,omitempty" db:"alcohol"`
	RatingAvg  *float64  `json:"rating_avg,omitempty" db:"rating_avg"`
	OpenHours  OpenHours `json:"open_hours,omitempty" db:"open_hours"`
	FoodTags   []string  `json:"food_tags,omitempty" db:"food_tags"`
	Link       *string   `json:"link,omitempty" db:"link"`
}

// PoiInput - нормализованный входной payload для reconcile
type PoiInput struct {
	Name       string
	Category   Category
	Lat        float64
	Lng        float64
	Indoor     bool
	MoodTag    *string
	PriceLevel *int
	Alcohol    *int
	RatingAvg  *float64
	OpenHours  OpenHours
	FoodTags   []string
	Link       *string
}

// ApplyTo переносит входные данные на существующую запись: обязательные поля
// перезаписываются, опциональные - только при наличии входного значения
// (частичное обновление, не полная замена).
func (in PoiInput) ApplyTo(poi *POI) {
	poi.Name = in.Name
	poi.Category = in.Category
	poi.Lat = in.Lat
	poi.Lng = in.Lng
	poi.Indoor = in.Indoor
	poi.MoodTag = in.MoodTag

	if in.PriceLevel != nil {
		poi.PriceLevel = in.PriceLevel
	}
	if in.Alcohol != nil {
		poi.Alcohol = in.Alcohol
	}
	if in.RatingAvg != nil {
		poi.RatingAvg = in.RatingAvg
	}
	if in.OpenHours != nil {
		poi.OpenHours = in.OpenHours
	}
	if in.FoodTags != nil {
		poi.FoodTags = in.FoodTags
	}
	if in.Link != nil {
		poi.Link = in.Link
	}
}

// NewPOI строит новую запись из входных данных (путь create в reconcile)
func (in PoiInput) NewPOI() *POI {
	poi := &POI{}
	in.ApplyTo(poi)
	return poi
}
