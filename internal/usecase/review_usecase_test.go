package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/pkg/errors"
	"github.com/course-microservice/internal/usecase"
)

type reviewMocks struct {
	review *MockReviewRepository
	poi    *MockPOIRepository
	cache  *MockCacheRepository
	stream *MockStreamRepository
}

func newReviewUseCase() (*usecase.ReviewUseCase, reviewMocks) {
	m := reviewMocks{
		review: &MockReviewRepository{},
		poi:    &MockPOIRepository{},
		cache:  &MockCacheRepository{},
		stream: &MockStreamRepository{},
	}
	uc := usecase.NewReviewUseCase(
		m.review, m.poi, m.cache, m.stream,
		fakeTxManager{}, zap.NewNop(), 5*time.Minute,
	)
	return uc, m
}

func TestReviewUseCase_UpsertRating_CreatesNew(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	m.review.On("FindByPoiAndUser", ctx, int64(101), int64(7)).Return(nil, nil)
	m.poi.On("FindByID", ctx, int64(101)).Return(&domain.POI{ID: 101}, nil)
	m.review.On("Save", ctx, mock.AnythingOfType("*domain.PoiReview")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.PoiReview).ID = 1
	}).Return(nil)
	m.cache.On("InvalidateReviewSummary", ctx, int64(101)).Return(nil)
	m.stream.On("Publish", ctx, domain.StreamPoiRated, mock.AnythingOfType("domain.RatingEvent")).Return(nil)

	review, err := uc.UpsertRating(ctx, 7, 101, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(101), review.POIID)
	assert.Equal(t, int64(7), review.UserID)
	assert.Equal(t, 5, review.Rating)
	m.review.AssertExpectations(t)
	m.cache.AssertExpectations(t)
	m.stream.AssertExpectations(t)
}

func TestReviewUseCase_UpsertRating_UpdatesInPlace(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	existing := &domain.PoiReview{ID: 1, POIID: 101, UserID: 7, Rating: 2}
	m.review.On("FindByPoiAndUser", ctx, int64(101), int64(7)).Return(existing, nil)
	m.review.On("Save", ctx, existing).Return(nil)
	m.cache.On("InvalidateReviewSummary", ctx, int64(101)).Return(nil)
	m.stream.On("Publish", ctx, domain.StreamPoiRated, mock.Anything).Return(nil)

	review, err := uc.UpsertRating(ctx, 7, 101, 4)

	require.NoError(t, err)
	// the existing row is overwritten, not duplicated
	assert.Equal(t, int64(1), review.ID)
	assert.Equal(t, 4, review.Rating)
	m.poi.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestReviewUseCase_UpsertRating_InvalidRating(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		review, err := uc.UpsertRating(ctx, 7, 101, rating)
		assert.Nil(t, review)
		assert.ErrorIs(t, err, errors.ErrInvalidRating)
	}
	m.review.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.cache.AssertNotCalled(t, "InvalidateReviewSummary", mock.Anything, mock.Anything)
}

func TestReviewUseCase_UpsertRating_UnknownPoi(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	m.review.On("FindByPoiAndUser", ctx, int64(999), int64(7)).Return(nil, nil)
	m.poi.On("FindByID", ctx, int64(999)).Return(nil, nil)

	review, err := uc.UpsertRating(ctx, 7, 999, 3)

	assert.Nil(t, review)
	assert.ErrorIs(t, err, errors.ErrPoiNotFound)
	m.review.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReviewUseCase_UpsertRatings_AbortsWholeBatch(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	m.review.On("FindByPoiAndUser", ctx, int64(101), int64(7)).Return(nil, nil)
	m.poi.On("FindByID", ctx, int64(101)).Return(&domain.POI{ID: 101}, nil)
	m.review.On("Save", ctx, mock.AnythingOfType("*domain.PoiReview")).Return(nil)

	items := []usecase.RatingCommand{
		{POIID: 101, Rating: 5},
		{POIID: 102, Rating: 9}, // invalid, aborts the batch
	}

	reviews, err := uc.UpsertRatings(ctx, 7, items)

	assert.Nil(t, reviews)
	assert.ErrorIs(t, err, errors.ErrInvalidRating)
	// no post-commit side effects on failure
	m.cache.AssertNotCalled(t, "InvalidateReviewSummary", mock.Anything, mock.Anything)
	m.stream.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewUseCase_UpsertRatings_Success(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	for _, poiID := range []int64{101, 102} {
		m.review.On("FindByPoiAndUser", ctx, poiID, int64(7)).Return(nil, nil)
		m.poi.On("FindByID", ctx, poiID).Return(&domain.POI{ID: poiID}, nil)
		m.cache.On("InvalidateReviewSummary", ctx, poiID).Return(nil)
	}
	m.review.On("Save", ctx, mock.AnythingOfType("*domain.PoiReview")).Return(nil)
	m.stream.On("Publish", ctx, domain.StreamPoiRated, mock.Anything).Return(nil)

	reviews, err := uc.UpsertRatings(ctx, 7, []usecase.RatingCommand{
		{POIID: 101, Rating: 5},
		{POIID: 102, Rating: 3},
	})

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	m.stream.AssertNumberOfCalls(t, "Publish", 2)
}

func TestReviewUseCase_Summarize_CacheMiss(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	m.cache.On("GetReviewSummary", ctx, int64(101)).Return(nil, nil)
	// ratings 5, 3, 4
	m.review.On("AggregateByPoi", ctx, int64(101)).Return(4.0, 3, nil)
	m.cache.On("SetReviewSummary", ctx, mock.AnythingOfType("*domain.ReviewSummary"), 5*time.Minute).Return(nil)
	m.review.On("FindByPoiAndUser", ctx, int64(101), int64(7)).Return(&domain.PoiReview{Rating: 5}, nil)

	summary, err := uc.Summarize(ctx, 101, 7)

	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.AvgRating)
	assert.Equal(t, 3, summary.ReviewCount)
	require.NotNil(t, summary.MyRating)
	assert.Equal(t, 5, *summary.MyRating)
	m.cache.AssertExpectations(t)
}

func TestReviewUseCase_Summarize_CacheHitSkipsAggregate(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	cached := &domain.ReviewSummary{POIID: 101, AvgRating: 4.0, ReviewCount: 3}
	m.cache.On("GetReviewSummary", ctx, int64(101)).Return(cached, nil)
	m.review.On("FindByPoiAndUser", ctx, int64(101), int64(8)).Return(nil, nil)

	summary, err := uc.Summarize(ctx, 101, 8)

	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.AvgRating)
	// the cached aggregate is shared; my rating is always looked up fresh
	assert.Nil(t, summary.MyRating)
	m.review.AssertNotCalled(t, "AggregateByPoi", mock.Anything, mock.Anything)
	m.cache.AssertNotCalled(t, "SetReviewSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewUseCase_Summarize_NoReviews(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	m.cache.On("GetReviewSummary", ctx, int64(200)).Return(nil, nil)
	m.review.On("AggregateByPoi", ctx, int64(200)).Return(0.0, 0, nil)
	m.cache.On("SetReviewSummary", ctx, mock.Anything, mock.Anything).Return(nil)
	m.review.On("FindByPoiAndUser", ctx, int64(200), int64(7)).Return(nil, nil)

	summary, err := uc.Summarize(ctx, 200, 7)

	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.AvgRating)
	assert.Equal(t, 0, summary.ReviewCount)
	assert.Nil(t, summary.MyRating)
}

func TestReviewUseCase_UpsertRating_SideEffectFailuresDoNotFail(t *testing.T) {
	uc, m := newReviewUseCase()
	ctx := context.Background()

	existing := &domain.PoiReview{ID: 1, POIID: 101, UserID: 7, Rating: 2}
	m.review.On("FindByPoiAndUser", ctx, int64(101), int64(7)).Return(existing, nil)
	m.review.On("Save", ctx, existing).Return(nil)
	m.cache.On("InvalidateReviewSummary", ctx, int64(101)).Return(errors.ErrCacheError)
	m.stream.On("Publish", ctx, domain.StreamPoiRated, mock.Anything).Return(errors.ErrCacheError)

	review, err := uc.UpsertRating(ctx, 7, 101, 4)

	// the committed rating is returned even when cache/stream are down
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
}
