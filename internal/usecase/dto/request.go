package dto

import (
	"github.com/course-microservice/internal/domain"
)

// CreateCourseRequest - запрос на создание курса
type CreateCourseRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required,min=1,max=1000"`
	Data        []PoiItem `json:"data" validate:"required,min=1,dive"`
}

// PoiItem - один POI в запросе на создание курса.
// Опциональные поля - указатели: nil означает "значение не передано"
// и при merge не трогает сохранённое.
type PoiItem struct {
	Seq        *int             `json:"seq"`
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	Category   *domain.Category `json:"category" validate:"required"`
	Lat        *float64         `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng        *float64         `json:"lng" validate:"required,gte=-180,lte=180"`
	Indoor     *bool            `json:"indoor" validate:"required"`
	PriceLevel *int             `json:"price_level" validate:"omitempty,gte=0,lte=5"`
	Alcohol    *int             `json:"alcohol" validate:"omitempty,gte=0,lte=5"`
	MoodTag    *string          `json:"mood_tag" validate:"omitempty,max=50"`
	FoodTags   []string         `json:"food_tags" validate:"omitempty,dive,min=1,max=30"`
	RatingAvg  *float64         `json:"rating_avg" validate:"omitempty,gte=0,lte=5"`
	Link       *string          `json:"link" validate:"omitempty,poi_link,max=2048"`
	OpenHours  domain.OpenHours `json:"open_hours"`
}

// ToPoiInput собирает доменный payload из валидного элемента запроса
func (i PoiItem) ToPoiInput() domain.PoiInput {
	in := domain.PoiInput{
		Name:       i.Name,
		Lat:        *i.Lat,
		Lng:        *i.Lng,
		Indoor:     *i.Indoor,
		MoodTag:    i.MoodTag,
		PriceLevel: i.PriceLevel,
		Alcohol:    i.Alcohol,
		RatingAvg:  i.RatingAvg,
		OpenHours:  i.OpenHours,
		FoodTags:   i.FoodTags,
		Link:       i.Link,
	}
	if i.Category != nil {
		in.Category = *i.Category
	}
	return in
}

// UpdateCourseScoreRequest - запрос на обновление оценки курса
type UpdateCourseScoreRequest struct {
	Score *int `json:"score" validate:"required,gte=0,lte=10"`
}

// UpsertReviewRequest - запрос на выставление оценки POI
type UpsertReviewRequest struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=5"`
}

// ReviewItem - одна оценка в bulk-запросе
type ReviewItem struct {
	POIID  int64 `json:"poi_id" validate:"required"`
	Rating int   `json:"rating" validate:"required,gte=1,lte=5"`
}

// UpsertReviewsRequest - bulk-запрос на выставление оценок
type UpsertReviewsRequest struct {
	Reviews []ReviewItem `json:"reviews" validate:"required,min=1,dive"`
}
