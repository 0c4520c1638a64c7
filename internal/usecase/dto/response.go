package dto

import (
	"time"

	"github.com/course-microservice/internal/domain"
)

// PoiResponse - POI в ответе API
type PoiResponse struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Category   domain.Category  `json:"category"`
	Lat        float64          `json:"lat"`
	Lng        float64          `json:"lng"`
	Indoor     bool             `json:"indoor"`
	PriceLevel *int             `json:"price_level,omitempty"`
	Alcohol    *int             `json:"alcohol,omitempty"`
	MoodTag    *string          `json:"mood_tag,omitempty"`
	FoodTags   []string         `json:"food_tags,omitempty"`
	RatingAvg  *float64         `json:"rating_avg,omitempty"`
	Link       *string          `json:"link,omitempty"`
	OpenHours  domain.OpenHours `json:"open_hours,omitempty"`
}

// LinkResponse - позиция POI в курсе
type LinkResponse struct {
	ID           int64        `json:"id"`
	OrderIndex   *int         `json:"order_index"`
	CourseRating *int         `json:"course_rating,omitempty"`
	POI          *PoiResponse `json:"poi,omitempty"`
}

// CourseResponse - курс с упорядоченными POI
type CourseResponse struct {
	ID          string         `json:"id"`
	CoupleID    string         `json:"couple_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Score       int            `json:"score"`
	Links       []LinkResponse `json:"links"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ReviewResponse - оценка POI пользователем
type ReviewResponse struct {
	ID     int64 `json:"id"`
	POIID  int64 `json:"poi_id"`
	UserID int64 `json:"user_id"`
	Rating int   `json:"rating"`
}

// ReviewSummaryResponse - агрегат оценок POI
type ReviewSummaryResponse struct {
	POIID       int64   `json:"poi_id"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	MyRating    *int    `json:"my_rating,omitempty"`
}

// FromPOI собирает PoiResponse из доменной записи
func FromPOI(poi *domain.POI) *PoiResponse {
	if poi == nil {
		return nil
	}
	return &PoiResponse{
		ID:         poi.ID,
		Name:       poi.Name,
		Category:   poi.Category,
		Lat:        poi.Lat,
		Lng:        poi.Lng,
		Indoor:     poi.Indoor,
		PriceLevel: poi.PriceLevel,
		Alcohol:    poi.Alcohol,
		MoodTag:    poi.MoodTag,
		FoodTags:   poi.FoodTags,
		RatingAvg:  poi.RatingAvg,
		Link:       poi.Link,
		OpenHours:  poi.OpenHours,
	}
}

// FromCourse собирает CourseResponse; связи отдаются в порядке слайса
func FromCourse(course *domain.Course) CourseResponse {
	links := make([]LinkResponse, 0, len(course.Links))
	for _, link := range course.Links {
		links = append(links, LinkResponse{
			ID:           link.ID,
			OrderIndex:   link.OrderIndex,
			CourseRating: link.CourseRating,
			POI:          FromPOI(link.POI),
		})
	}
	return CourseResponse{
		ID:          course.ID,
		CoupleID:    course.CoupleID,
		Title:       course.Title,
		Description: course.Description,
		Score:       course.Score,
		Links:       links,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}

// FromReview собирает ReviewResponse
func FromReview(review *domain.PoiReview) ReviewResponse {
	return ReviewResponse{
		ID:     review.ID,
		POIID:  review.POIID,
		UserID: review.UserID,
		Rating: review.Rating,
	}
}

// FromReviewSummary собирает ReviewSummaryResponse
func FromReviewSummary(summary *domain.ReviewSummary) ReviewSummaryResponse {
	return ReviewSummaryResponse{
		POIID:       summary.POIID,
		AvgRating:   summary.AvgRating,
		ReviewCount: summary.ReviewCount,
		MyRating:    summary.MyRating,
	}
}
