package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
	"github.com/stemsi/exstem-scheduler/internal/scheduling"
)

// CourseFilter narrows ListCourses. Zero fields match everything.
type CourseFilter struct {
	Program string
	Term    model.Term
}

// CourseService handles course (disciplina) use cases.
type CourseService struct {
	scheduler *scheduling.Scheduler
	courses   repository.Collection[model.Course]
	log       zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(scheduler *scheduling.Scheduler, store *repository.Store, log zerolog.Logger) *CourseService {
	return &CourseService{
		scheduler: scheduler,
		courses:   store.Courses,
		log:       log.With().Str("component", "course_service").Logger(),
	}
}

// Create registers a course under a fresh identifier.
func (s *CourseService) Create(ctx context.Context, draft model.CourseDraft) (*model.Course, error) {
	id := uuid.NewString()
	course, err := s.scheduler.CreateCourse(ctx, id, draft)
	logOutcome(s.log, err, "Course created", id)
	return course, err
}

func (s *CourseService) Update(ctx context.Context, id string, draft model.CourseDraft) (*model.Course, error) {
	course, err := s.scheduler.UpdateCourse(ctx, id, draft)
	logOutcome(s.log, err, "Course updated", id)
	return course, err
}

func (s *CourseService) Deactivate(ctx context.Context, id string) error {
	err := s.scheduler.DeactivateCourse(ctx, id)
	logOutcome(s.log, err, "Course deactivated", id)
	return err
}

func (s *CourseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	return s.scheduler.GetCourse(ctx, id)
}

// List returns active courses matching f in insertion order.
func (s *CourseService) List(ctx context.Context, f CourseFilter) ([]model.Course, error) {
	program := strings.ToLower(f.Program)

	courses := []model.Course{}
	for c, err := range s.courses.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		if !c.Active {
			continue
		}
		if program != "" && !strings.Contains(strings.ToLower(c.Program), program) {
			continue
		}
		if f.Term != "" && c.Term != f.Term {
			continue
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// ListPrograms returns the distinct programs of active courses, sorted.
func (s *CourseService) ListPrograms(ctx context.Context) ([]string, error) {
	courses, err := s.List(ctx, CourseFilter{})
	if err != nil {
		return nil, err
	}
	programs := make([]string, 0, len(courses))
	for _, c := range courses {
		programs = append(programs, c.Program)
	}
	slices.Sort(programs)
	return slices.Compact(programs), nil
}
