package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/events"
	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
	"github.com/stemsi/exstem-scheduler/internal/scheduling"
)

// ── Fakes ──

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type services struct {
	courses   *CourseService
	rooms     *RoomService
	sections  *SectionService
	publisher *recordingPublisher
}

func newServices() *services {
	store := repository.NewMemoryStore()
	scheduler := scheduling.New(store)
	pub := &recordingPublisher{}
	log := zerolog.Nop()
	return &services{
		courses:   NewCourseService(scheduler, store, log),
		rooms:     NewRoomService(scheduler, store, log),
		sections:  NewSectionService(scheduler, store, pub, log),
		publisher: pub,
	}
}

func mustCourse(t *testing.T, s *services, name, program string, term model.Term) *model.Course {
	t.Helper()
	c, err := s.courses.Create(context.Background(), model.CourseDraft{
		Name: name, Program: program, Description: name, CreditHours: 60, Term: term,
	})
	if err != nil {
		t.Fatalf("create course %s: %v", name, err)
	}
	return c
}

func mustRoom(t *testing.T, s *services, number string, capacity int) *model.Room {
	t.Helper()
	r, err := s.rooms.Create(context.Background(), model.RoomDraft{Number: number, Description: "Sala", Capacity: capacity})
	if err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return r
}

func sectionDraft(course *model.Course, room *model.Room, professor string, day model.Weekday) model.ClassSectionDraft {
	return model.ClassSectionDraft{
		Term:      course.Term,
		CourseID:  course.ID,
		Professor: professor,
		RoomID:    room.ID,
		Weekday:   day,
		Capacity:  model.DefaultSectionCapacity,
	}
}

// ── Tests ──

func TestCourseService_ListFilters(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	mustCourse(t, s, "Cálculo I", "Engenharia Civil", "2025/1")
	mustCourse(t, s, "Redes", "Ciência da Computação", "2025/2")
	gone := mustCourse(t, s, "Física", "Engenharia Elétrica", "2025/2")
	if err := s.courses.Deactivate(ctx, gone.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	tests := []struct {
		name   string
		filter CourseFilter
		want   []string
	}{
		{"no filter returns active courses", CourseFilter{}, []string{"Cálculo I", "Redes"}},
		{"program substring ignores case", CourseFilter{Program: "engenharia"}, []string{"Cálculo I"}},
		{"exact term", CourseFilter{Term: "2025/2"}, []string{"Redes"}},
		{"no match", CourseFilter{Program: "direito"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses, err := s.courses.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			got := []string{}
			for _, c := range courses {
				got = append(got, c.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourseService_ListPrograms(t *testing.T) {
	s := newServices()
	mustCourse(t, s, "Redes", "Sistemas", "2025/2")
	mustCourse(t, s, "Banco de Dados", "Análise", "2025/2")
	mustCourse(t, s, "Compiladores", "Sistemas", "2025/1")

	programs, err := s.courses.ListPrograms(context.Background())
	if err != nil {
		t.Fatalf("ListPrograms: %v", err)
	}
	if want := []string{"Análise", "Sistemas"}; !reflect.DeepEqual(programs, want) {
		t.Errorf("got %v, want %v", programs, want)
	}
}

func TestRoomService_ListSortsAndFilters(t *testing.T) {
	s := newServices()
	mustRoom(t, s, "B202", 60)
	mustRoom(t, s, "A101", 30)
	mustRoom(t, s, "A105", 45)

	rooms, err := s.rooms.List(context.Background(), RoomFilter{Number: "a1", MinCapacity: 31})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Number != "A105" {
		t.Fatalf("got %+v, want only A105", rooms)
	}

	rooms, _ = s.rooms.List(context.Background(), RoomFilter{MaxCapacity: 60})
	var numbers []string
	for _, r := range rooms {
		numbers = append(numbers, r.Number)
	}
	if want := []string{"A101", "A105", "B202"}; !reflect.DeepEqual(numbers, want) {
		t.Errorf("got %v, want %v", numbers, want)
	}
}

func TestSectionService_ListOrdersByWeekdayThenRoom(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	b := mustRoom(t, s, "B1", 40)
	a := mustRoom(t, s, "A1", 40)

	plan := []struct {
		room *model.Room
		day  model.Weekday
	}{
		{b, model.Friday},
		{b, model.Monday},
		{a, model.Friday},
		{a, model.Monday},
	}
	for i, p := range plan {
		c := mustCourse(t, s, fmt.Sprintf("Disciplina %d", i), "ADS", "2025/2")
		if _, err := s.sections.Create(ctx, sectionDraft(c, p.room, fmt.Sprintf("Prof %d", i), p.day)); err != nil {
			t.Fatalf("create section %d: %v", i, err)
		}
	}

	sections, err := s.sections.List(ctx, SectionFilter{Term: "2025/2"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var got []string
	for _, sec := range sections {
		if sec.Course == nil || sec.Room == nil {
			t.Fatalf("section %s not enriched", sec.ID)
		}
		if sec.Course.Description != "" {
			t.Errorf("listing should use compact course summaries")
		}
		got = append(got, string(sec.Weekday)+"/"+sec.Room.Number)
	}
	want := []string{"monday/A1", "monday/B1", "friday/A1", "friday/B1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	filtered, _ := s.sections.List(ctx, SectionFilter{Professor: "PROF 1", Weekday: model.Monday})
	if len(filtered) != 1 || filtered[0].Professor != "Prof 1" {
		t.Errorf("professor filter: got %+v", filtered)
	}
}

func TestSectionService_PublishesAfterSuccessOnly(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	c := mustCourse(t, s, "Redes", "ADS", "2025/2")
	r := mustRoom(t, s, "101", 40)

	sec, err := s.sections.Create(ctx, sectionDraft(c, r, "Ana", model.Monday))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Rejected: the course already has a section in the term.
	if _, err := s.sections.Create(ctx, sectionDraft(c, r, "Bruno", model.Tuesday)); !errors.Is(err, scheduling.ErrCourseAlreadyScheduled) {
		t.Fatalf("expected ErrCourseAlreadyScheduled, got %v", err)
	}

	update := sectionDraft(c, r, "Ana", model.Wednesday)
	if _, err := s.sections.Update(ctx, sec.ID, update); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.sections.Deactivate(ctx, sec.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	want := []events.Type{events.SectionCreated, events.SectionUpdated, events.SectionDeactivated}
	if got := s.publisher.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	for _, e := range s.publisher.events {
		if e.Term != "2025/2" || e.SectionID != sec.ID {
			t.Errorf("unexpected event routing: %+v", e)
		}
	}
}

func TestSectionService_TermMoveNotifiesBothTerms(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	c := mustCourse(t, s, "Redes", "ADS", "2025/2")
	r := mustRoom(t, s, "101", 40)
	sec, err := s.sections.Create(ctx, sectionDraft(c, r, "Ana", model.Monday))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved := sectionDraft(c, r, "Ana", model.Monday)
	moved.Term = "2026/1"
	if _, err := s.sections.Update(ctx, sec.ID, moved); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.sections.Deactivate(ctx, sec.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	var got []string
	for _, e := range s.publisher.events {
		got = append(got, string(e.Type)+"@"+string(e.Term))
	}
	want := []string{
		"section.created@2025/2",
		"section.updated@2026/1",
		"section.updated@2025/2",
		"section.deactivated@2026/1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestSectionService_PublishFailureDoesNotFailWrite(t *testing.T) {
	s := newServices()
	s.publisher.err = errors.New("bus down")

	c := mustCourse(t, s, "Redes", "ADS", "2025/2")
	r := mustRoom(t, s, "101", 40)

	if _, err := s.sections.Create(context.Background(), sectionDraft(c, r, "Ana", model.Monday)); err != nil {
		t.Fatalf("create should succeed when publishing fails: %v", err)
	}
}

func TestIsBusinessError(t *testing.T) {
	conflict := &scheduling.ConflictError{Kind: scheduling.ErrRoomConflict, SectionID: "S1"}
	if !IsBusinessError(fmt.Errorf("wrapped: %w", conflict)) {
		t.Error("conflict should be a business error")
	}
	if IsBusinessError(errors.New("connection refused")) {
		t.Error("store failure should not be a business error")
	}
}
