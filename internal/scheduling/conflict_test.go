package scheduling

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/repository"
)

// brokenSections fails every scan, as a dropped database connection would.
type brokenSections struct {
	repository.Collection[model.ClassSection]
	inserts int
}

var errStoreDown = errors.New("store down")

func (b *brokenSections) List(context.Context) iter.Seq2[model.ClassSection, error] {
	return func(yield func(model.ClassSection, error) bool) {
		yield(model.ClassSection{}, errStoreDown)
	}
}

func (b *brokenSections) Insert(context.Context, model.ClassSection) error {
	b.inserts++
	return nil
}

func TestDetector_ScanErrorAbortsCreate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	broken := &brokenSections{Collection: store.Sections}
	store.Sections = broken

	s := New(store)
	if _, err := s.CreateCourse(ctx, "C1", model.CourseDraft{Name: "Algoritmos", Term: term, CreditHours: 80}); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if _, err := s.CreateRoom(ctx, "R1", model.RoomDraft{Number: "101", Capacity: 40}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	_, err := s.CreateSection(ctx, "S1", draft("C1", "R1", "Ana", model.Monday))
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if broken.inserts != 0 {
		t.Error("section was written despite failed conflict scan")
	}
	if err := s.DeactivateCourse(ctx, "C1"); !errors.Is(err, errStoreDown) {
		t.Errorf("dependency guard must surface store errors, got %v", err)
	}
}

func TestDetector_IgnoresInactiveAndOtherTerms(t *testing.T) {
	ctx := context.Background()
	sections := repository.NewMemoryCollection[model.ClassSection]()
	now := time.Now()

	existing := []model.ClassSection{
		{Record: model.NewRecord("old", now), ClassSectionDraft: draft("C1", "R1", "Ana", model.Monday)},
		{Record: model.NewRecord("other-term", now), ClassSectionDraft: draft("C1", "R1", "Ana", model.Monday)},
	}
	existing[1].Term = "2024/1"
	for _, s := range existing {
		if err := sections.Insert(ctx, s); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if err := sections.Deactivate(ctx, "old", now); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	d := NewDetector(sections)
	if err := d.Check(ctx, draft("C1", "R1", "Ana", model.Monday), ""); err != nil {
		t.Fatalf("expected no conflict, got %v", err)
	}

	occupants, err := d.RoomOccupants(ctx, "R1", "2024/1", model.Monday)
	if err != nil || len(occupants) != 1 {
		t.Fatalf("expected one occupant in 2024/1, got %v %v", occupants, err)
	}
}
