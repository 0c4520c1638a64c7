package domain

import "time"

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// PoiReview - оценка POI пользователем (1-5), не привязана к курсу.
// Не более одной записи на пару (poi, user): повторная отправка
// обновляет оценку на месте.
type PoiReview struct {
	ID        int64     `json:"id" db:"id"`
	POIID     int64     `json:"poi_id" db:"poi_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewSummary - агрегат оценок POI для отображения
type ReviewSummary struct {
	POIID       int64   `json:"poi_id"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	MyRating    *int    `json:"my_rating,omitempty"`
}

// ValidRating проверяет диапазон оценки; значение вне [1,5] отклоняется
func ValidRating(rating int) bool {
	return rating >= MinReviewRating && rating <= MaxReviewRating
}

// StreamPoiRated - стрим событий об изменении оценок POI
const StreamPoiRated = "poi:rated"

// RatingEvent публикуется в стрим после upsert оценки
type RatingEvent struct {
	POIID  int64 `json:"poi_id"`
	UserID int64 `json:"user_id"`
	Rating int   `json:"rating"`
}

// StreamMessage - сообщение, прочитанное из стрима
type StreamMessage struct {
	ID   string
	Data string
}
