package indexa

import (
	"testing"
	"time"
)

func TestHistoryAppend_SortsAndOverwrites(t *testing.T) {
	h := &History[float64]{}
	h.Append(NewDate(2025, time.March, 10), 3.0)
	h.Append(NewDate(2025, time.March, 1), 1.0)
	h.Append(NewDate(2025, time.March, 5), 2.0)

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	day, v := h.Latest()
	if day != NewDate(2025, time.March, 10) || v != 3.0 {
		t.Errorf("Latest() = %s %v, want 2025-03-10 3", day, v)
	}

	// appending the same day overwrites
	h.Append(NewDate(2025, time.March, 5), 20.0)
	if v, _ := h.Get(NewDate(2025, time.March, 5)); v != 20.0 {
		t.Errorf("Get() after overwrite = %v, want 20", v)
	}
	if h.Len() != 3 {
		t.Errorf("Len() after overwrite = %d, want 3", h.Len())
	}
}

func TestHistoryEntryAsOf(t *testing.T) {
	h := &History[string]{}
	h.Append(NewDate(2025, time.March, 1), "a")
	h.Append(NewDate(2025, time.March, 10), "b")

	// exact hit
	day, v, ok := h.EntryAsOf(NewDate(2025, time.March, 10))
	if !ok || v != "b" || day != NewDate(2025, time.March, 10) {
		t.Errorf("EntryAsOf(exact) = %s %q %v", day, v, ok)
	}

	// closest before
	day, v, ok = h.EntryAsOf(NewDate(2025, time.March, 7))
	if !ok || v != "a" || day != NewDate(2025, time.March, 1) {
		t.Errorf("EntryAsOf(between) = %s %q %v, want 2025-03-01 \"a\"", day, v, ok)
	}

	// before first entry
	if _, _, ok := h.EntryAsOf(NewDate(2025, time.February, 28)); ok {
		t.Errorf("EntryAsOf(before first) = ok, want not found")
	}
}
