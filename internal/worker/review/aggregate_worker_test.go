package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/course-microservice/internal/domain"
)

type mockStreamRepo struct {
	mock.Mock
}

func (m *mockStreamRepo) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *mockStreamRepo) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *mockStreamRepo) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *mockStreamRepo) Publish(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Save(ctx context.Context, review *domain.PoiReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) FindByPoiAndUser(ctx context.Context, poiID, userID int64) (*domain.PoiReview, error) {
	args := m.Called(ctx, poiID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PoiReview), args.Error(1)
}

func (m *mockReviewRepo) AggregateByPoi(ctx context.Context, poiID int64) (float64, int, error) {
	args := m.Called(ctx, poiID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type mockPoiRepo struct {
	mock.Mock
}

func (m *mockPoiRepo) Save(ctx context.Context, poi *domain.POI) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *mockPoiRepo) FindByID(ctx context.Context, id int64) (*domain.POI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *mockPoiRepo) FindByIdentity(ctx context.Context, name string, lat, lng float64) (*domain.POI, error) {
	args := m.Called(ctx, name, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *mockPoiRepo) UpdateRatingAvg(ctx context.Context, id int64, avg float64) error {
	args := m.Called(ctx, id, avg)
	return args.Error(0)
}

func newTestWorker() (*AggregateWorker, *mockStreamRepo, *mockReviewRepo, *mockPoiRepo) {
	stream := &mockStreamRepo{}
	reviews := &mockReviewRepo{}
	pois := &mockPoiRepo{}
	w := NewAggregateWorker(stream, reviews, pois, "rating-aggregate-group", zap.NewNop())
	return w, stream, reviews, pois
}

func TestAggregateWorker_ProcessBatch_RefreshesOncePerPoi(t *testing.T) {
	w, stream, reviews, pois := newTestWorker()
	ctx := context.Background()

	// two events for poi 101 collapse into one recalculation
	messages := []domain.StreamMessage{
		{ID: "1-0", Data: `{"poi_id":101,"user_id":7,"rating":5}`},
		{ID: "1-1", Data: `{"poi_id":101,"user_id":8,"rating":3}`},
		{ID: "1-2", Data: `{"poi_id":102,"user_id":7,"rating":4}`},
	}
	stream.On("ConsumeBatch", ctx, domain.StreamPoiRated, "rating-aggregate-group", w.consumerName, maxBatchSize).
		Return(messages, nil)
	stream.On("AckMessage", ctx, domain.StreamPoiRated, "rating-aggregate-group", mock.Anything).Return(nil)

	reviews.On("AggregateByPoi", ctx, int64(101)).Return(4.0, 2, nil)
	reviews.On("AggregateByPoi", ctx, int64(102)).Return(4.0, 1, nil)
	pois.On("UpdateRatingAvg", ctx, int64(101), 4.0).Return(nil)
	pois.On("UpdateRatingAvg", ctx, int64(102), 4.0).Return(nil)

	processed, err := w.processBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	stream.AssertNumberOfCalls(t, "AckMessage", 3)
	reviews.AssertNumberOfCalls(t, "AggregateByPoi", 2)
	pois.AssertNumberOfCalls(t, "UpdateRatingAvg", 2)
}

func TestAggregateWorker_ProcessBatch_MalformedEventIsAcked(t *testing.T) {
	w, stream, reviews, pois := newTestWorker()
	ctx := context.Background()

	messages := []domain.StreamMessage{
		{ID: "2-0", Data: `not json`},
	}
	stream.On("ConsumeBatch", ctx, domain.StreamPoiRated, "rating-aggregate-group", w.consumerName, maxBatchSize).
		Return(messages, nil)
	stream.On("AckMessage", ctx, domain.StreamPoiRated, "rating-aggregate-group", "2-0").Return(nil)

	processed, err := w.processBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	// the malformed message is acked so it does not loop forever
	stream.AssertExpectations(t)
	reviews.AssertNotCalled(t, "AggregateByPoi", mock.Anything, mock.Anything)
	pois.AssertNotCalled(t, "UpdateRatingAvg", mock.Anything, mock.Anything, mock.Anything)
}

func TestAggregateWorker_ProcessBatch_EmptyQueue(t *testing.T) {
	w, stream, _, _ := newTestWorker()
	ctx := context.Background()

	stream.On("ConsumeBatch", ctx, domain.StreamPoiRated, "rating-aggregate-group", w.consumerName, maxBatchSize).
		Return([]domain.StreamMessage{}, nil)

	processed, err := w.processBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, processed)
}

func TestAggregateWorker_RefreshSkipsPoiWithoutReviews(t *testing.T) {
	w, _, reviews, pois := newTestWorker()
	ctx := context.Background()

	reviews.On("AggregateByPoi", ctx, int64(300)).Return(0.0, 0, nil)

	require.NoError(t, w.refreshRatingAvg(ctx, 300))
	pois.AssertNotCalled(t, "UpdateRatingAvg", mock.Anything, mock.Anything, mock.Anything)
}
