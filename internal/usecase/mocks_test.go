package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/course-microservice/internal/domain"
)

// MockCourseRepository is a mock of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Save(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByIDAndCoupleID(ctx context.Context, courseID, coupleID string) (*domain.Course, error) {
	args := m.Called(ctx, courseID, coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) FindAllByCoupleIDWithLinks(ctx context.Context, coupleID string) ([]*domain.Course, error) {
	args := m.Called(ctx, coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) UpdateScore(ctx context.Context, courseID string, score int) error {
	args := m.Called(ctx, courseID, score)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, courseID string) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}

// MockLinkRepository is a mock of LinkRepository
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) Save(ctx context.Context, link *domain.CoursePoiLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// MockPOIRepository is a mock of POIRepository
type MockPOIRepository struct {
	mock.Mock
}

func (m *MockPOIRepository) Save(ctx context.Context, poi *domain.POI) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockPOIRepository) FindByID(ctx context.Context, id int64) (*domain.POI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) FindByIdentity(ctx context.Context, name string, lat, lng float64) (*domain.POI, error) {
	args := m.Called(ctx, name, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) UpdateRatingAvg(ctx context.Context, id int64, avg float64) error {
	args := m.Called(ctx, id, avg)
	return args.Error(0)
}

// MockReviewRepository is a mock of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Save(ctx context.Context, review *domain.PoiReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByPoiAndUser(ctx context.Context, poiID, userID int64) (*domain.PoiReview, error) {
	args := m.Called(ctx, poiID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PoiReview), args.Error(1)
}

func (m *MockReviewRepository) AggregateByPoi(ctx context.Context, poiID int64) (float64, int, error) {
	args := m.Called(ctx, poiID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetReviewSummary(ctx context.Context, poiID int64) (*domain.ReviewSummary, error) {
	args := m.Called(ctx, poiID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewSummary), args.Error(1)
}

func (m *MockCacheRepository) SetReviewSummary(ctx context.Context, summary *domain.ReviewSummary, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateReviewSummary(ctx context.Context, poiID int64) error {
	args := m.Called(ctx, poiID)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// fakeTxManager executes the callback directly, without a real transaction
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func ptrInt(v int) *int { return &v }

func ptrFloat64(v float64) *float64 { return &v }

func ptrBool(v bool) *bool { return &v }

func ptrString(v string) *string { return &v }

func ptrCategory(v domain.Category) *domain.Category { return &v }
