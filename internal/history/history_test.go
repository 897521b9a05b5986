package history

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type entry struct {
	ID   string
	Note string
}

func byID(e entry) string { return e.ID }

func ids(entries []entry) []string {
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.ID
	}
	return result
}

func TestNew(t *testing.T) {
	c := New(3, byID)

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Cap() != 3 {
		t.Errorf("Cap() = %d, want 3", c.Cap())
	}
	if c.All() == nil {
		t.Error("All() should return empty slice, not nil")
	}
}

func TestNew_ClampsCapacity(t *testing.T) {
	c := New(0, byID)

	c.Add(entry{ID: "a"})
	c.Add(entry{ID: "b"})

	assert.Equal(t, 1, c.Cap())
	assert.Equal(t, []string{"b"}, ids(c.All()))
}

func TestCache_AddMostRecentFirst(t *testing.T) {
	c := New(5, byID)

	c.Add(entry{ID: "a"})
	c.Add(entry{ID: "b"})
	c.Add(entry{ID: "c"})

	assert.Equal(t, []string{"c", "b", "a"}, ids(c.All()))
}

func TestCache_AddDeduplicates(t *testing.T) {
	c := New(5, byID)
	c.Add(entry{ID: "a", Note: "old"})
	c.Add(entry{ID: "b"})
	c.Add(entry{ID: "c"})

	_, evicted := c.Add(entry{ID: "a", Note: "new"})

	assert.False(t, evicted)
	all := c.All()
	assert.Equal(t, []string{"a", "c", "b"}, ids(all))
	assert.Equal(t, "new", all[0].Note, "re-added entry replaces the old one")
}

func TestCache_AddEvictsOldest(t *testing.T) {
	c := New(2, byID)
	c.Add(entry{ID: "A"})
	c.Add(entry{ID: "B"})

	got, evicted := c.Add(entry{ID: "C"})

	assert.True(t, evicted)
	assert.Equal(t, "A", got.ID)
	assert.Equal(t, []string{"C", "B"}, ids(c.All()))
}

func TestCache_ReAddAtCapacityDoesNotEvict(t *testing.T) {
	c := New(2, byID)
	c.Add(entry{ID: "A"})
	c.Add(entry{ID: "B"})

	_, evicted := c.Add(entry{ID: "A"})

	assert.False(t, evicted)
	assert.Equal(t, []string{"A", "B"}, ids(c.All()))
}

func TestCache_Remove(t *testing.T) {
	c := New(5, byID)
	c.Add(entry{ID: "a"})
	c.Add(entry{ID: "b"})
	c.Add(entry{ID: "c"})

	assert.True(t, c.Remove("b"))
	assert.Equal(t, []string{"c", "a"}, ids(c.All()))

	assert.False(t, c.Remove("missing"))
	assert.Equal(t, []string{"c", "a"}, ids(c.All()))
}

func TestCache_RemoveAndClearOnEmpty(t *testing.T) {
	c := New(2, byID)

	assert.False(t, c.Remove("x"))
	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestCache_Clear(t *testing.T) {
	c := New(3, byID)
	c.Add(entry{ID: "a"})
	c.Add(entry{ID: "b"})

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains("a"))

	c.Add(entry{ID: "c"})
	assert.Equal(t, []string{"c"}, ids(c.All()))
}

func TestCache_Contains(t *testing.T) {
	c := New(3, byID)
	c.Add(entry{ID: "a"})

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
}

func TestCache_AllReturnsCopy(t *testing.T) {
	c := New(3, byID)
	c.Add(entry{ID: "a"})

	all := c.All()
	all[0].ID = "mutated"

	assert.Equal(t, []string{"a"}, ids(c.All()))
}

func TestCache_Restore(t *testing.T) {
	tests := []struct {
		name  string
		cap   int
		input []string
		want  []string
	}{
		{"empty", 3, nil, []string{}},
		{"keeps order", 3, []string{"c", "b", "a"}, []string{"c", "b", "a"}},
		{"drops later duplicates", 5, []string{"c", "b", "c", "a"}, []string{"c", "b", "a"}},
		{"truncates to capacity", 2, []string{"c", "b", "a"}, []string{"c", "b"}},
		{"duplicates do not count toward capacity", 2, []string{"c", "c", "b", "a"}, []string{"c", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.cap, byID)
			c.Add(entry{ID: "stale"})

			items := make([]entry, len(tt.input))
			for i, id := range tt.input {
				items[i] = entry{ID: id}
			}
			c.Restore(items)

			assert.Equal(t, tt.want, ids(c.All()))
		})
	}
}

func TestCache_StringKeys(t *testing.T) {
	c := New(15, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })

	c.Add("Jay Chou")
	c.Add("Eason")
	c.Add("  jay chou ")

	assert.Equal(t, []string{"  jay chou ", "Eason"}, c.All())
}

// TestCache_Invariants drives random operations and checks the bound and
// key uniqueness after each one.
func TestCache_Invariants(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 9))
	const capacity = 4
	c := New(capacity, byID)

	for step := range 2000 {
		id := fmt.Sprintf("k%d", r.IntN(8))
		switch r.IntN(10) {
		case 0:
			c.Remove(id)
		case 1:
			if r.IntN(5) == 0 {
				c.Clear()
			}
		default:
			before := ids(c.All())
			c.Add(entry{ID: id})
			after := ids(c.All())

			if after[0] != id {
				t.Fatalf("step %d: front = %q, want %q", step, after[0], id)
			}
			// Untouched entries keep their relative order.
			rest := slices.DeleteFunc(slices.Clone(before), func(s string) bool { return s == id })
			if len(rest) > capacity-1 {
				rest = rest[:capacity-1]
			}
			if !slices.Equal(after[1:], rest) {
				t.Fatalf("step %d: order %v, want %v after %v", step, after[1:], rest, before)
			}
		}

		all := ids(c.All())
		if len(all) > capacity {
			t.Fatalf("step %d: len = %d exceeds capacity", step, len(all))
		}
		seen := make(map[string]bool)
		for _, k := range all {
			if seen[k] {
				t.Fatalf("step %d: duplicate key %q in %v", step, k, all)
			}
			seen[k] = true
		}
	}
}
