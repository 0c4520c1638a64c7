package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/pkg/errors"
	"github.com/course-microservice/internal/repository/postgres"
)

func TestCourseRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCourseRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO courses`)).
		WithArgs("c1", "couple-1", "Mapo date", "Saturday walk", 0).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	course := &domain.Course{
		ID:          "c1",
		CoupleID:    "couple-1",
		Title:       "Mapo date",
		Description: "Saturday walk",
		Score:       0,
	}
	require.NoError(t, repo.Save(ctx, course))
	assert.Equal(t, now, course.CreatedAt)
}

func TestCourseRepository_FindByIDAndCoupleID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCourseRepository(db)
	ctx := context.Background()
	now := time.Now()

	cols := []string{"id", "couple_id", "title", "description", "score", "created_at", "updated_at"}

	t.Run("owned course", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
			WithArgs("c1", "couple-1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "couple-1", "Mapo date", "desc", 7, now, now))

		course, err := repo.FindByIDAndCoupleID(ctx, "c1", "couple-1")

		require.NoError(t, err)
		require.NotNil(t, course)
		assert.Equal(t, 7, course.Score)
	})

	t.Run("foreign couple sees nothing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
			WithArgs("c1", "couple-2").
			WillReturnRows(sqlmock.NewRows(cols))

		course, err := repo.FindByIDAndCoupleID(ctx, "c1", "couple-2")

		require.NoError(t, err)
		assert.Nil(t, course)
	})
}

func TestCourseRepository_FindAllByCoupleIDWithLinks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCourseRepository(db)
	ctx := context.Background()
	now := time.Now()

	courseCols := []string{"id", "couple_id", "title", "description", "score", "created_at", "updated_at"}
	linkCols := []string{
		"id", "course_id", "poi_id", "order_index", "course_rating", "updated_at",
		"p_id", "name", "category", "lat", "lng", "indoor", "price_level", "alcohol",
		"mood_tag", "open_hours", "food_tags", "rating_avg", "link", "p_created_at", "p_updated_at",
	}

	t.Run("links and pois are attached to their course", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM courses`)).
			WithArgs("couple-1").
			WillReturnRows(sqlmock.NewRows(courseCols).
				AddRow("c1", "couple-1", "Mapo date", "desc", 0, now, now))

		mock.ExpectQuery(regexp.QuoteMeta(`FROM course_poi_links`)).
			WithArgs("couple-1").
			WillReturnRows(sqlmock.NewRows(linkCols).
				AddRow(int64(1), "c1", int64(101), 1, nil, now,
					int64(101), "Blue Bottle", "CAFE", 37.56231, 126.92501, true, nil, nil,
					nil, nil, []byte(`{coffee}`), nil, nil, now, now))

		courses, err := repo.FindAllByCoupleIDWithLinks(ctx, "couple-1")

		require.NoError(t, err)
		require.Len(t, courses, 1)
		require.Len(t, courses[0].Links, 1)
		link := courses[0].Links[0]
		assert.Equal(t, int64(101), link.POIID)
		require.NotNil(t, link.OrderIndex)
		assert.Equal(t, 1, *link.OrderIndex)
		require.NotNil(t, link.POI)
		assert.Equal(t, "Blue Bottle", link.POI.Name)
		assert.Equal(t, domain.CategoryCafe, link.POI.Category)
	})

	t.Run("no courses yields empty slice without link query", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM courses`)).
			WithArgs("couple-2").
			WillReturnRows(sqlmock.NewRows(courseCols))

		courses, err := repo.FindAllByCoupleIDWithLinks(ctx, "couple-2")

		require.NoError(t, err)
		assert.Empty(t, courses)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_UpdateScore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCourseRepository(db)
	ctx := context.Background()

	t.Run("existing course", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE courses SET score`)).
			WithArgs(7, "c1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateScore(ctx, "c1", 7))
	})

	t.Run("missing course", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE courses SET score`)).
			WithArgs(7, "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateScore(ctx, "ghost", 7), errors.ErrCourseNotFound)
	})
}

func TestCourseRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCourseRepository(db)
	ctx := context.Background()

	t.Run("existing course", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM courses`)).
			WithArgs("c1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, "c1"))
	})

	t.Run("missing course", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM courses`)).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "ghost"), errors.ErrCourseNotFound)
	})
}
