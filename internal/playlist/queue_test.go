// internal/playlist/queue_test.go
package playlist

import "testing"

func tracks(paths ...string) []Track {
	result := make([]Track, len(paths))
	for i, p := range paths {
		result[i] = Track{Path: p}
	}
	return result
}

func paths(ts []Track) []string {
	result := make([]string, len(ts))
	for i, t := range ts {
		result[i] = t.Path
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

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
	if q.NextIndex() != -1 {
		t.Errorf("NextIndex() = %d, want -1", q.NextIndex())
	}
}

func TestQueue_Add_EmptyMakesFirstCurrent(t *testing.T) {
	q := NewQueue()

	changed := q.Add(tracks("/a.mp3", "/b.mp3")...)

	if !changed {
		t.Error("Add to empty queue should report a current track change")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if q.NextIndex() != 1 {
		t.Errorf("NextIndex() = %d, want 1", q.NextIndex())
	}
}

func TestQueue_Add_KeepsCurrent(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("/a.mp3")...)

	changed := q.Add(tracks("/b.mp3", "/c.mp3")...)

	if changed {
		t.Error("Add to non-empty queue should not change current track")
	}
	if q.Current().Path != "/a.mp3" {
		t.Errorf("Current() = %q, want /a.mp3", q.Current().Path)
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
}

func TestQueue_Next(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("/a.mp3", "/b.mp3")...)

	if tr := q.Next(); tr == nil || tr.Path != "/b.mp3" {
		t.Errorf("Next() = %v, want /b.mp3", tr)
	}
	if tr := q.Next(); tr != nil {
		t.Errorf("Next() at end = %v, want nil", tr)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
}

func TestQueue_JumpTo_Invalid(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("/a.mp3")...)

	if tr := q.JumpTo(5); tr != nil {
		t.Error("JumpTo with invalid index should return nil")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_Replace(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("/old1.mp3", "/old2.mp3")...)
	q.JumpTo(1)

	tr := q.Replace(tracks("/new.mp3")...)

	if q.Len() != 1 || q.CurrentIndex() != 0 {
		t.Errorf("Len()=%d CurrentIndex()=%d, want 1 and 0", q.Len(), q.CurrentIndex())
	}
	if tr == nil || tr.Path != "/new.mp3" {
		t.Errorf("Replace returned %v, want /new.mp3", tr)
	}
}

func TestQueue_RemoveRange(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		from, to    int
		wantPaths   []string
		wantCurrent int
		wantChanged bool
	}{
		{
			name:        "before current shifts index",
			current:     3,
			from:        0,
			to:          2,
			wantPaths:   []string{"/2", "/3", "/4"},
			wantCurrent: 1,
		},
		{
			name:        "after current keeps index",
			current:     1,
			from:        2,
			to:          5,
			wantPaths:   []string{"/0", "/1"},
			wantCurrent: 1,
		},
		{
			name:        "range clamped to length",
			current:     0,
			from:        1,
			to:          1 << 30,
			wantPaths:   []string{"/0"},
			wantCurrent: 0,
		},
		{
			name:        "removing current moves to following track",
			current:     1,
			from:        1,
			to:          3,
			wantPaths:   []string{"/0", "/3", "/4"},
			wantCurrent: 1,
			wantChanged: true,
		},
		{
			name:        "empty range is a no-op",
			current:     2,
			from:        3,
			to:          3,
			wantPaths:   []string{"/0", "/1", "/2", "/3", "/4"},
			wantCurrent: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.Add(tracks("/0", "/1", "/2", "/3", "/4")...)
			q.JumpTo(tt.current)

			changed := q.RemoveRange(tt.from, tt.to)

			if got := paths(q.Tracks()); !equalStrings(got, tt.wantPaths) {
				t.Errorf("Tracks() = %v, want %v", got, tt.wantPaths)
			}
			if q.CurrentIndex() != tt.wantCurrent {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantCurrent)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestQueue_RemoveRange_All(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("/0", "/1")...)

	q.RemoveRange(0, 2)

	if !q.IsEmpty() || q.CurrentIndex() != -1 {
		t.Errorf("IsEmpty()=%v CurrentIndex()=%d, want true and -1", q.IsEmpty(), q.CurrentIndex())
	}
}

func TestQueue_Upcoming(t *testing.T) {
	q := NewQueue()
	q.Add(tracks("/0", "/1", "/2")...)
	q.Next()

	if got := paths(q.Upcoming()); !equalStrings(got, []string{"/2"}) {
		t.Errorf("Upcoming() = %v, want [/2]", got)
	}
}
