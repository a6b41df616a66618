package repository

import (
	"context"
	"errors"

	"github.com/stemsi/course-service/internal/model"
)

// ErrNotFound is returned when no course carries the requested id.
var ErrNotFound = errors.New("course not found")

// CourseRepository stores courses in insertion order.
// Implementations are not safe for concurrent use; callers serialize access.
type CourseRepository interface {
	GetAll(ctx context.Context) ([]model.Course, error)
	GetByID(ctx context.Context, id int) (*model.Course, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int) (*model.Course, error)
}

type memoryCourseRepository struct {
	courses []*model.Course
}

// NewMemoryCourseRepository returns an in-process repository holding a copy of seed.
func NewMemoryCourseRepository(seed []model.Course) CourseRepository {
	r := &memoryCourseRepository{courses: make([]*model.Course, 0, len(seed))}
	for _, c := range seed {
		r.courses = append(r.courses, &c)
	}
	return r
}

func (r *memoryCourseRepository) GetAll(ctx context.Context) ([]model.Course, error) {
	out := make([]model.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

// GetByID returns a copy of the first course with the given id.
func (r *memoryCourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := *r.courses[i]
	return &c, nil
}

func (r *memoryCourseRepository) Count(ctx context.Context) (int, error) {
	return len(r.courses), nil
}

func (r *memoryCourseRepository) Create(ctx context.Context, course *model.Course) error {
	c := *course
	r.courses = append(r.courses, &c)
	return nil
}

// Update renames the first course matching course.ID in place.
func (r *memoryCourseRepository) Update(ctx context.Context, course *model.Course) error {
	i := r.indexOf(course.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.courses[i].Name = course.Name
	return nil
}

// Delete removes the first course with the given id and returns it.
func (r *memoryCourseRepository) Delete(ctx context.Context, id int) (*model.Course, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	removed := r.courses[i]
	r.courses = append(r.courses[:i], r.courses[i+1:]...)
	return removed, nil
}

func (r *memoryCourseRepository) indexOf(id int) int {
	for i, c := range r.courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}
