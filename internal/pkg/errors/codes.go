package errors

import "net/http"

var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"Invalid request payload",
		http.StatusBadRequest,
	)

	ErrInvalidRating = New(
		"INVALID_RATING",
		"Rating must be between 1 and 5",
		http.StatusBadRequest,
	)

	ErrInvalidScore = New(
		"INVALID_SCORE",
		"Score must be between 0 and 10",
		http.StatusBadRequest,
	)

	ErrCourseNotFound = New(
		"COURSE_NOT_FOUND",
		"Course not found",
		http.StatusNotFound,
	)

	ErrPoiNotFound = New(
		"POI_NOT_FOUND",
		"POI not found",
		http.StatusNotFound,
	)

	ErrDuplicatePoi = New(
		"DUPLICATE_POI",
		"POI with the same name and coordinates already exists",
		http.StatusConflict,
	)

	ErrDuplicateReview = New(
		"DUPLICATE_REVIEW",
		"Review for this POI and user already exists",
		http.StatusConflict,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid credentials",
		http.StatusUnauthorized,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
