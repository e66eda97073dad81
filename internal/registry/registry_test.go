package registry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mkelly/grapnel/internal/wm"
	"github.com/mkelly/grapnel/internal/wm/wmtest"
)

func newTestRegistry(t *testing.T, titles ...string) (*Registry, *wmtest.FakeWindowAPI) {
	t.Helper()
	fake := wmtest.NewFakeWindowAPI()
	reg := New(fake)
	for i, title := range titles {
		h := wm.Handle(i + 1)
		fake.AddWindow(h, title)
		if _, err := reg.Add(h, title); err != nil {
			t.Fatalf("Add(%q): %v", title, err)
		}
	}
	return reg, fake
}

func titlesOf(reg *Registry) []string {
	var out []string
	for _, e := range reg.Entries() {
		out = append(out, e.Title)
	}
	return out
}

func sameTitles(a, b []string) bool {
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

func TestAddRejectsDuplicateHandle(t *testing.T) {
	reg, fake := newTestRegistry(t, "editor")
	fake.AddWindow(wm.Handle(1), "editor")

	if _, err := reg.Add(wm.Handle(1), "editor again"); !errors.Is(err, ErrDuplicateWindow) {
		t.Errorf("duplicate Add error = %v, want ErrDuplicateWindow", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

func TestAddAppendsAtEnd(t *testing.T) {
	reg, _ := newTestRegistry(t, "a", "b", "c")
	if !sameTitles(titlesOf(reg), []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", titlesOf(reg))
	}

	entries := reg.Entries()
	if !(entries[0].Seq < entries[1].Seq && entries[1].Seq < entries[2].Seq) {
		t.Error("registration sequence should be monotonically increasing")
	}
}

func TestRemoveAt(t *testing.T) {
	reg, _ := newTestRegistry(t, "a", "b", "c")

	entry, err := reg.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt(1): %v", err)
	}
	if entry.Title != "b" {
		t.Errorf("removed %q, want b", entry.Title)
	}
	if !sameTitles(titlesOf(reg), []string{"a", "c"}) {
		t.Errorf("order = %v, want [a c]", titlesOf(reg))
	}

	if _, err := reg.RemoveAt(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveAt(5) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := reg.RemoveAt(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveAt(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestCutPasteRoundTrip(t *testing.T) {
	reg, _ := newTestRegistry(t, "a", "b", "c", "d")
	before := titlesOf(reg)

	for index := 0; index < reg.Len(); index++ {
		entry, err := reg.RemoveAt(index)
		if err != nil {
			t.Fatalf("RemoveAt(%d): %v", index, err)
		}
		if err := reg.PasteAt(entry, index); err != nil {
			t.Fatalf("PasteAt(%d): %v", index, err)
		}
		if !sameTitles(titlesOf(reg), before) {
			t.Fatalf("cut+paste at %d changed order: %v", index, titlesOf(reg))
		}
	}
}

func TestPasteAtRejectsDuplicate(t *testing.T) {
	reg, _ := newTestRegistry(t, "a", "b")
	entry, _ := reg.At(0)

	if err := reg.PasteAt(entry, 1); !errors.Is(err, ErrDuplicateWindow) {
		t.Errorf("PasteAt duplicate error = %v, want ErrDuplicateWindow", err)
	}
}

func TestSwapInvolution(t *testing.T) {
	reg, _ := newTestRegistry(t, "a", "b", "c")
	before := titlesOf(reg)

	if err := reg.Swap(0, 1); err != nil {
		t.Fatalf("Swap(0,1): %v", err)
	}
	if !sameTitles(titlesOf(reg), []string{"b", "a", "c"}) {
		t.Fatalf("after swap: %v", titlesOf(reg))
	}
	if err := reg.Swap(0, 1); err != nil {
		t.Fatalf("Swap(0,1) again: %v", err)
	}
	if !sameTitles(titlesOf(reg), before) {
		t.Errorf("double swap should restore order, got %v", titlesOf(reg))
	}
}

func TestSwapValidation(t *testing.T) {
	reg, _ := newTestRegistry(t, "a", "b", "c")

	if err := reg.Swap(1, 1); err != nil {
		t.Errorf("Swap(i,i) should be a no-op, got %v", err)
	}
	if err := reg.Swap(0, 2); !errors.Is(err, ErrNotAdjacent) {
		t.Errorf("Swap(0,2) error = %v, want ErrNotAdjacent", err)
	}
	if err := reg.Swap(2, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Swap(2,3) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestFocusTargetsSlotOrder(t *testing.T) {
	reg, fake := newTestRegistry(t, "a", "b", "c")

	for i := 0; i < reg.Len(); i++ {
		if err := reg.Focus(i); err != nil {
			t.Fatalf("Focus(%d): %v", i, err)
		}
		want, _ := reg.At(i)
		got := fake.Focused[len(fake.Focused)-1]
		if got != want.Handle {
			t.Errorf("Focus(%d) raised handle %d, want %d", i, got, want.Handle)
		}
	}
}

func TestFocusPrunesStaleEntry(t *testing.T) {
	reg, fake := newTestRegistry(t, "a", "b", "c")
	fake.Invalidate(wm.Handle(2)) // "b" closed behind our back

	err := reg.Focus(1)
	if !errors.Is(err, ErrStaleWindow) {
		t.Fatalf("Focus on stale entry error = %v, want ErrStaleWindow", err)
	}
	if !sameTitles(titlesOf(reg), []string{"a", "c"}) {
		t.Errorf("stale entry not pruned: %v", titlesOf(reg))
	}
}

func TestNextPrevCyclic(t *testing.T) {
	reg, _ := newTestRegistry(t, "a", "b", "c")

	got := []string{}
	for i := 0; i < 4; i++ {
		e, ok := reg.Next()
		if !ok {
			t.Fatal("Next on non-empty registry returned false")
		}
		got = append(got, e.Title)
	}
	want := []string{"b", "c", "a", "b"}
	if !sameTitles(got, want) {
		t.Errorf("Next sequence = %v, want %v", got, want)
	}

	e, ok := reg.Prev()
	if !ok || e.Title != "a" {
		t.Errorf("Prev = %q, want a", e.Title)
	}
}

func TestNextPrevEmptyRegistry(t *testing.T) {
	reg := New(wmtest.NewFakeWindowAPI())
	if _, ok := reg.Next(); ok {
		t.Error("Next on empty registry should report false")
	}
	if _, ok := reg.Prev(); ok {
		t.Error("Prev on empty registry should report false")
	}
}

// TestNoDuplicateHandlesUnderRandomOps drives the registry through
// random add/cut/paste/swap sequences and checks the uniqueness
// invariant after every step.
func TestNoDuplicateHandlesUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fake := wmtest.NewFakeWindowAPI()
	reg := New(fake)

	var clipboard []Entry
	nextHandle := wm.Handle(1)

	checkUnique := func(step int) {
		seen := make(map[wm.Handle]bool)
		for _, e := range reg.Entries() {
			if seen[e.Handle] {
				t.Fatalf("step %d: duplicate handle %d in registry", step, e.Handle)
			}
			seen[e.Handle] = true
		}
	}

	for step := 0; step < 2000; step++ {
		switch rng.Intn(4) {
		case 0: // add
			fake.AddWindow(nextHandle, "w")
			reg.Add(nextHandle, "w")
			nextHandle++
		case 1: // cut
			if reg.Len() > 0 {
				if e, err := reg.RemoveAt(rng.Intn(reg.Len())); err == nil {
					clipboard = append(clipboard, e)
				}
			}
		case 2: // paste
			if len(clipboard) > 0 {
				e := clipboard[len(clipboard)-1]
				if err := reg.PasteAt(e, rng.Intn(reg.Len()+1)); err == nil {
					clipboard = clipboard[:len(clipboard)-1]
				}
			}
		case 3: // swap
			if reg.Len() > 1 {
				i := rng.Intn(reg.Len() - 1)
				reg.Swap(i, i+1)
			}
		}
		checkUnique(step)
	}
}
