package domain

import (
	"sort"
	"time"
)

const (
	MinCourseScore = 0
	MaxCourseScore = 10
)

// Course - упорядоченный маршрут из POI, принадлежащий паре
type Course struct {
	ID          string    `json:"id" db:"id"`
	CoupleID    string    `json:"couple_id" db:"couple_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Score       int       `json:"score" db:"score"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Links []*CoursePoiLink `json:"links,omitempty"`
}

// CoursePoiLink фиксирует позицию POI внутри конкретного курса
type CoursePoiLink struct {
	ID           int64     `json:"id" db:"id"`
	CourseID     string    `json:"course_id" db:"course_id"`
	POIID        int64     `json:"poi_id" db:"poi_id"`
	OrderIndex   *int      `json:"order_index" db:"order_index"`
	CourseRating *int      `json:"course_rating,omitempty" db:"course_rating"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	POI *POI `json:"poi,omitempty"`
}

// SortLinks сортирует связи курса: order index по возрастанию (nil в конце),
// при равенстве - id связи по возрастанию. Гарантирует клиентам стабильный
// порядок независимо от порядка выдачи хранилища.
func SortLinks(links []*CoursePoiLink) {
	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i].OrderIndex, links[j].OrderIndex
		switch {
		case a == nil && b == nil:
			return links[i].ID < links[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		default:
			return links[i].ID < links[j].ID
		}
	})
}

// ValidScore проверяет диапазон оценки курса; значение вне [0,10]
// отклоняется, а не обрезается
func ValidScore(score int) bool {
	return score >= MinCourseScore && score <= MaxCourseScore
}
