// internal/playlist/queue_test.go
//
//nolint:goconst // test file with repeated string literals
package playlist

import (
	"slices"
	"testing"
)

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
	if q.Mode() != ModeSequence {
		t.Errorf("Mode() = %v, want sequence", q.Mode())
	}
}

func TestQueue_SetTracks(t *testing.T) {
	q := NewQueue()

	track := q.SetTracks(tracksOf("t0", "t1", "t2"), 1)

	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	if track == nil || track.ID != "t1" {
		t.Errorf("returned track = %v, want t1", track)
	}
}

func TestQueue_SetTracks_InvalidStart(t *testing.T) {
	tests := []struct {
		name  string
		start int
	}{
		{"negative", -1},
		{"past end", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()

			track := q.SetTracks(tracksOf("t0", "t1", "t2"), tt.start)

			if track != nil {
				t.Errorf("returned track = %v, want nil", track)
			}
			if q.CurrentIndex() != -1 {
				t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
			}
		})
	}
}

func TestQueue_SetTracks_Empty(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("old"), 0)

	track := q.SetTracks(nil, 0)

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if track != nil {
		t.Error("SetTracks with no tracks should return nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_SetTracks_RandomMode(t *testing.T) {
	q := NewQueue()
	q.SetMode(ModeRandom)

	track := q.SetTracks(tracksOf("t0", "t1", "t2", "t3"), 2)

	if track == nil || track.ID != "t2" {
		t.Fatalf("returned track = %v, want t2", track)
	}
	if q.Tracks()[q.CurrentIndex()].ID != "t2" {
		t.Errorf("track at CurrentIndex = %s, want t2", q.Tracks()[q.CurrentIndex()].ID)
	}
	if !equalIDs(q.Sequence(), "t0", "t1", "t2", "t3") {
		t.Errorf("Sequence() = %v, want canonical order", idsOf(q.Sequence()))
	}
}

func TestQueue_SetMode_PreservesCurrent(t *testing.T) {
	modes := []Mode{ModeRandom, ModeSequence, ModeLoopSingle, ModeRandom, ModeRandom, ModeSequence}

	q := NewQueue()
	q.SetTracks(tracksOf("a", "b", "c", "d", "e"), 3)

	for _, mode := range modes {
		q.SetMode(mode)

		cur := q.Current()
		if cur == nil || cur.ID != "d" {
			t.Fatalf("after SetMode(%s) Current() = %v, want d", mode, cur)
		}
		got := idsOf(q.Tracks())
		slices.Sort(got)
		if !slices.Equal(got, []string{"a", "b", "c", "d", "e"}) {
			t.Fatalf("after SetMode(%s) Tracks() = %v, not a permutation", mode, got)
		}
	}
}

func TestQueue_SetMode_BackToSequenceRestoresOrder(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("a", "b", "c"), 0)

	q.SetMode(ModeRandom)
	q.SetMode(ModeSequence)

	if !equalIDs(q.Tracks(), "a", "b", "c") {
		t.Errorf("Tracks() = %v, want [a b c]", idsOf(q.Tracks()))
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_SetMode_NothingSelected(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("a", "b"), -1)

	q.SetMode(ModeRandom)

	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_CycleMode(t *testing.T) {
	q := NewQueue()

	want := []Mode{ModeLoopSingle, ModeRandom, ModeSequence}
	for _, w := range want {
		if got := q.CycleMode(); got != w {
			t.Errorf("CycleMode() = %v, want %v", got, w)
		}
	}
}

func TestQueue_Select(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0", "t1", "t2"), 0)

	if got := q.Select(Track{ID: "t2"}); got != 2 {
		t.Errorf("Select(t2) = %d, want 2", got)
	}
	if got := q.Select(Track{ID: "missing"}); got != -1 {
		t.Errorf("Select(missing) = %d, want -1", got)
	}
	if q.Current() != nil {
		t.Error("Current() should be nil after selecting an absent track")
	}
}

func TestQueue_JumpTo(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0", "t1", "t2"), 0)

	track := q.JumpTo(1)

	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	if track == nil || track.ID != "t1" {
		t.Errorf("JumpTo returned %v, want t1", track)
	}
}

func TestQueue_JumpTo_Invalid(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0"), 0)

	track := q.JumpTo(5)

	if track != nil {
		t.Error("JumpTo with invalid index should return nil")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_Next(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		wantIndex int
	}{
		{"middle", 0, 1},
		{"wraps at end", 2, 0},
		{"nothing selected starts at first", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.SetTracks(tracksOf("t0", "t1", "t2"), tt.start)

			track := q.Next()

			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
			if track == nil || track.ID != q.Tracks()[tt.wantIndex].ID {
				t.Errorf("Next() = %v, want index %d", track, tt.wantIndex)
			}
		})
	}
}

func TestQueue_Previous(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		wantIndex int
	}{
		{"middle", 2, 1},
		{"wraps at start", 0, 2},
		{"nothing selected starts at last", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.SetTracks(tracksOf("t0", "t1", "t2"), tt.start)

			q.Previous()

			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
		})
	}
}

func TestQueue_NextPrevious_Empty(t *testing.T) {
	q := NewQueue()

	if q.Next() != nil {
		t.Error("Next() on empty queue should return nil")
	}
	if q.Previous() != nil {
		t.Error("Previous() on empty queue should return nil")
	}
	if q.Advance() != nil {
		t.Error("Advance() on empty queue should return nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_Advance_LoopSingle(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0", "t1"), 0)
	q.SetMode(ModeLoopSingle)

	track := q.Advance()

	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (same track)", q.CurrentIndex())
	}
	if track == nil || track.ID != "t0" {
		t.Errorf("Advance() = %v, want t0", track)
	}

	// Explicit skip still moves in loop mode.
	if next := q.Next(); next == nil || next.ID != "t1" {
		t.Errorf("Next() = %v, want t1", next)
	}
}

func TestQueue_Advance_Sequence(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0", "t1"), 1)

	track := q.Advance()

	if track == nil || track.ID != "t0" {
		t.Errorf("Advance() = %v, want t0 (wrapped)", track)
	}
}

func TestQueue_Insert(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0", "t1", "t2"), 0)

	track := q.Insert(Track{ID: "new"})

	if track == nil || track.ID != "new" {
		t.Errorf("Insert returned %v, want new", track)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	if !equalIDs(q.Tracks(), "t0", "new", "t1", "t2") {
		t.Errorf("Tracks() = %v", idsOf(q.Tracks()))
	}
	if !equalIDs(q.Sequence(), "t0", "new", "t1", "t2") {
		t.Errorf("Sequence() = %v", idsOf(q.Sequence()))
	}
}

func TestQueue_Insert_ExistingTrackMoves(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0", "t1", "t2", "t3"), 2)

	q.Insert(Track{ID: "t0"})

	if !equalIDs(q.Tracks(), "t1", "t2", "t0", "t3") {
		t.Errorf("Tracks() = %v, want [t1 t2 t0 t3]", idsOf(q.Tracks()))
	}
	if cur := q.Current(); cur == nil || cur.ID != "t0" {
		t.Errorf("Current() = %v, want t0", cur)
	}
	if q.Len() != 4 {
		t.Errorf("Len() = %d, want 4", q.Len())
	}
}

func TestQueue_Insert_CurrentTrackStays(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("a", "b", "c"), 0)

	track := q.Insert(Track{ID: "a"})

	if track == nil || track.ID != "a" {
		t.Errorf("Insert returned %v, want a", track)
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if !equalIDs(q.Tracks(), "a", "b", "c") {
		t.Errorf("Tracks() = %v, want [a b c]", idsOf(q.Tracks()))
	}
	if !equalIDs(q.Sequence(), "a", "b", "c") {
		t.Errorf("Sequence() = %v, want [a b c]", idsOf(q.Sequence()))
	}
}

func TestQueue_Insert_EmptyQueue(t *testing.T) {
	q := NewQueue()

	q.Insert(Track{ID: "only"})

	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if !equalIDs(q.Sequence(), "only") {
		t.Errorf("Sequence() = %v", idsOf(q.Sequence()))
	}
}

func TestQueue_Remove(t *testing.T) {
	tests := []struct {
		name         string
		initialIndex int
		removeID     string
		wantIndex    int
		wantLen      int
	}{
		{
			name:         "remove before current",
			initialIndex: 2,
			removeID:     "t0",
			wantIndex:    1,
			wantLen:      3,
		},
		{
			name:         "remove after current",
			initialIndex: 1,
			removeID:     "t3",
			wantIndex:    1,
			wantLen:      3,
		},
		{
			name:         "remove current (middle)",
			initialIndex: 1,
			removeID:     "t1",
			wantIndex:    1, // stays, now points to next track
			wantLen:      3,
		},
		{
			name:         "remove current (last)",
			initialIndex: 3,
			removeID:     "t3",
			wantIndex:    2, // clamped to new last
			wantLen:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.SetTracks(tracksOf("t0", "t1", "t2", "t3"), tt.initialIndex)

			ok := q.Remove(tt.removeID)

			if !ok {
				t.Error("Remove should return true")
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
			if q.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", q.Len(), tt.wantLen)
			}
			if len(q.Sequence()) != tt.wantLen {
				t.Errorf("len(Sequence()) = %d, want %d", len(q.Sequence()), tt.wantLen)
			}
		})
	}
}

func TestQueue_Remove_LastTrack(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("only"), 0)

	q.Remove("only")

	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_Remove_Missing(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0"), 0)

	if q.Remove("zzz") {
		t.Error("Remove of absent track should return false")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.SetTracks(tracksOf("t0", "t1"), 1)
	q.SetMode(ModeLoopSingle)

	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Mode() != ModeLoopSingle {
		t.Errorf("Mode() = %v, want loop (kept)", q.Mode())
	}
}
