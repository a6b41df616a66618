package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/course-service/internal/config"
	"github.com/stemsi/course-service/internal/model"
	"github.com/stemsi/course-service/internal/repository"
	"github.com/stemsi/course-service/internal/validator"
)

func newService(strategy string) *CourseService {
	repo := repository.NewMemoryCourseRepository(model.DefaultCourses())
	return NewCourseService(repo, strategy, zerolog.Nop())
}

func input(name string) model.CourseInput {
	return model.CourseInput{Name: &name}
}

func requireValidationError(t *testing.T, err error, msg string) {
	t.Helper()
	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr), "expected *validator.ValidationError, got %v", err)
	assert.Equal(t, msg, verr.Message)
}

func TestCourseService_List(t *testing.T) {
	svc := newService(config.IDStrategyLength)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Course{
		{ID: 1, Name: "course1"},
		{ID: 2, Name: "course2"},
		{ID: 3, Name: "course3"},
	}, first)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential ids", func(t *testing.T) {
		svc := newService(config.IDStrategyLength)

		for k := 1; k <= 5; k++ {
			course, err := svc.Create(ctx, input(fmt.Sprintf("extra%d", k)))
			require.NoError(t, err)
			assert.Equal(t, 3+k, course.ID)
		}
	})

	t.Run("round-trips through get", func(t *testing.T) {
		svc := newService(config.IDStrategyLength)

		created, err := svc.Create(ctx, input("algebra"))
		require.NoError(t, err)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		svc := newService(config.IDStrategyLength)

		_, err := svc.Create(ctx, input("ab"))
		requireValidationError(t, err, `"name" length must be at least 3 characters long`)

		_, err = svc.Create(ctx, model.CourseInput{})
		requireValidationError(t, err, `"name" is required`)

		all, _ := svc.List(ctx)
		assert.Len(t, all, 3)
	})

	t.Run("length policy reuses ids after delete", func(t *testing.T) {
		svc := newService(config.IDStrategyLength)

		_, err := svc.Delete(ctx, 1)
		require.NoError(t, err)

		created, err := svc.Create(ctx, input("geometry"))
		require.NoError(t, err)
		assert.Equal(t, 3, created.ID)

		got, err := svc.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "course3", got.Name, "lookups return the first match")
	})

	t.Run("monotonic policy never reuses ids", func(t *testing.T) {
		svc := newService(config.IDStrategyMonotonic)

		_, err := svc.Delete(ctx, 3)
		require.NoError(t, err)

		created, err := svc.Create(ctx, input("geometry"))
		require.NoError(t, err)
		assert.Equal(t, 4, created.ID)

		created, err = svc.Create(ctx, input("topology"))
		require.NoError(t, err)
		assert.Equal(t, 5, created.ID)
	})
}

func TestCourseService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves id", func(t *testing.T) {
		svc := newService(config.IDStrategyLength)

		updated, err := svc.Update(ctx, 2, input("newname"))
		require.NoError(t, err)
		assert.Equal(t, &model.Course{ID: 2, Name: "newname"}, updated)

		got, err := svc.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "newname", got.Name)
	})

	t.Run("not found wins over invalid input", func(t *testing.T) {
		svc := newService(config.IDStrategyLength)

		_, err := svc.Update(ctx, 9999, input("x"))
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		svc := newService(config.IDStrategyLength)

		_, err := svc.Update(ctx, 1, input(""))
		requireValidationError(t, err, `"name" is not allowed to be empty`)

		got, _ := svc.Get(ctx, 1)
		assert.Equal(t, "course1", got.Name)
	})
}

func TestCourseService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newService(config.IDStrategyLength)

	removed, err := svc.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, &model.Course{ID: 2, Name: "course2"}, removed)

	all, _ := svc.List(ctx)
	assert.Len(t, all, 2)

	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(config.IDStrategyLength)

	_, err := svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Update(ctx, 9999, input("x"))
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Delete(ctx, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	svc := newService(config.IDStrategyMonotonic)

	const workers = 20
	var wg sync.WaitGroup
	ids := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			course, err := svc.Create(ctx, input("parallel"))
			if err == nil {
				ids <- course.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)

	all, _ := svc.List(ctx)
	assert.Len(t, all, 3+workers)
}
