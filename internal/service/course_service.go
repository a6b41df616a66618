package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-service/internal/config"
	"github.com/stemsi/course-service/internal/model"
	"github.com/stemsi/course-service/internal/repository"
	"github.com/stemsi/course-service/internal/validator"
)

// ErrCourseNotFound is returned by Get, Update and Delete for an unknown id.
var ErrCourseNotFound = errors.New("course not found")

// CourseService owns the course collection. Every operation runs under one
// mutex, so at most one caller reads or mutates the collection at a time.
// Validation failures are returned as *validator.ValidationError.
type CourseService struct {
	mu         sync.Mutex
	courseRepo repository.CourseRepository
	idStrategy string
	lastID     int
	log        zerolog.Logger
}

func NewCourseService(courseRepo repository.CourseRepository, idStrategy string, log zerolog.Logger) *CourseService {
	s := &CourseService{
		courseRepo: courseRepo,
		idStrategy: idStrategy,
		log:        log.With().Str("component", "course_service").Logger(),
	}

	if courses, err := courseRepo.GetAll(context.Background()); err == nil {
		for _, c := range courses {
			s.lastID = max(s.lastID, c.ID)
		}
	}
	return s
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.courseRepo.GetAll(ctx)
}

func (s *CourseService) Get(ctx context.Context, id int) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(ctx, id)
}

// Create validates input and appends a new course with a service-assigned id.
func (s *CourseService) Create(ctx context.Context, input model.CourseInput) (*model.Course, error) {
	if err := validator.Validate(&input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	course := &model.Course{ID: id, Name: *input.Name}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.lastID = max(s.lastID, id)

	s.log.Debug().Int("course_id", course.ID).Str("name", course.Name).Msg("course created")
	return course, nil
}

// Update renames an existing course. An unknown id is reported before any
// validation problem with input.
func (s *CourseService) Update(ctx context.Context, id int, input model.CourseInput) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validator.Validate(&input); err != nil {
		return nil, err
	}

	course.Name = *input.Name
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, s.mapErr(err)
	}

	s.log.Debug().Int("course_id", course.ID).Str("name", course.Name).Msg("course updated")
	return course, nil
}

// Delete removes the first course with the given id and returns it.
func (s *CourseService) Delete(ctx context.Context, id int) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapErr(err)
	}

	s.log.Debug().Int("course_id", course.ID).Msg("course deleted")
	return course, nil
}

func (s *CourseService) find(ctx context.Context, id int) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return course, nil
}

// nextID applies the configured id policy. The length policy can hand out an
// id that a surviving course already uses once something has been deleted.
func (s *CourseService) nextID(ctx context.Context) (int, error) {
	if s.idStrategy == config.IDStrategyMonotonic {
		return s.lastID + 1, nil
	}

	n, err := s.courseRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

func (s *CourseService) mapErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}
