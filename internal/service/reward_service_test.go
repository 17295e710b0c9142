package service

import (
	"errors"
	"testing"

	"buba/internal/models"
)

// fakeStarStore is an in-memory StarStore for game service tests
type fakeStarStore struct {
	stars      map[int64]int
	records    map[int64]int
	failAdd    error
	failRecord error
	addCalls   int
}

func newFakeStarStore() *fakeStarStore {
	return &fakeStarStore{
		stars:   make(map[int64]int),
		records: make(map[int64]int),
	}
}

func (f *fakeStarStore) AddStars(apprenticeID int64, amount int) (int, error) {
	f.addCalls++
	if f.failAdd != nil {
		return 0, f.failAdd
	}
	f.stars[apprenticeID] += amount
	return f.stars[apprenticeID], nil
}

func (f *fakeStarStore) UpdateMemoryRecord(apprenticeID int64, level int) (bool, error) {
	if f.failRecord != nil {
		return false, f.failRecord
	}
	if level > f.records[apprenticeID] {
		f.records[apprenticeID] = level
		return true, nil
	}
	return false, nil
}

func (f *fakeStarStore) GetProgress(apprenticeID int64) (*models.Progress, error) {
	return &models.Progress{
		Stars:        f.stars[apprenticeID],
		MemoryRecord: f.records[apprenticeID],
	}, nil
}

func TestAddStarsRejectsNonPositiveAmounts(t *testing.T) {
	svc := NewRewardService(newFakeStarStore())

	for _, amount := range []int{0, -1, -10} {
		if _, err := svc.AddStars(1, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("AddStars(%d) error = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestAddStarsAccumulates(t *testing.T) {
	store := newFakeStarStore()
	svc := NewRewardService(store)

	total, err := svc.AddStars(1, 10)
	if err != nil {
		t.Fatalf("AddStars: %v", err)
	}
	if total != 10 {
		t.Errorf("total = %d, want 10", total)
	}

	total, err = svc.AddStars(1, 25)
	if err != nil {
		t.Fatalf("AddStars: %v", err)
	}
	if total != 35 {
		t.Errorf("total = %d, want 35", total)
	}
}

func TestRecordMemoryLevelOnlyRaises(t *testing.T) {
	store := newFakeStarStore()
	store.records[1] = 5
	svc := NewRewardService(store)

	tests := []struct {
		level      int
		wantRecord bool
		wantStored int
	}{
		{level: 3, wantRecord: false, wantStored: 5},
		{level: 5, wantRecord: false, wantStored: 5},
		{level: 6, wantRecord: true, wantStored: 6},
	}

	for _, tt := range tests {
		got, err := svc.RecordMemoryLevel(1, tt.level)
		if err != nil {
			t.Fatalf("RecordMemoryLevel(%d): %v", tt.level, err)
		}
		if got != tt.wantRecord {
			t.Errorf("RecordMemoryLevel(%d) = %v, want %v", tt.level, got, tt.wantRecord)
		}
		if store.records[1] != tt.wantStored {
			t.Errorf("stored record after level %d = %d, want %d", tt.level, store.records[1], tt.wantStored)
		}
	}
}

func TestRecordMemoryLevelIgnoresZero(t *testing.T) {
	svc := NewRewardService(newFakeStarStore())
	got, err := svc.RecordMemoryLevel(1, 0)
	if err != nil {
		t.Fatalf("RecordMemoryLevel(0): %v", err)
	}
	if got {
		t.Error("level 0 should never be a record")
	}
}
