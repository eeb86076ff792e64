package schedule

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"back_to_back", at(10, 0), at(10, 30), at(10, 30), at(11, 0), false},
		{"partial_overlap", at(10, 0), at(10, 30), at(10, 15), at(10, 45), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"touching_before", at(9, 0), at(10, 0), at(8, 0), at(9, 0), false},
		{"zero_length_inside", at(10, 30), at(10, 30), at(10, 0), at(11, 0), false},
		{"zero_length_both", at(10, 0), at(10, 0), at(10, 0), at(10, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Fatalf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.aStart.Format("15:04"), tc.aEnd.Format("15:04"),
					tc.bStart.Format("15:04"), tc.bEnd.Format("15:04"),
					got, tc.want)
			}

			// symmetry
			swapped := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd)
			if swapped != got {
				t.Fatalf("Overlaps is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestTimeOfDayValid(t *testing.T) {
	valid := []TimeOfDay{"00:00", "09:00", "23:59"}
	for _, v := range valid {
		if !v.Valid() {
			t.Fatalf("expected %q to be valid", v)
		}
	}

	invalid := []TimeOfDay{"", "24:00", "9am", "09:60", "banana"}
	for _, v := range invalid {
		if v.Valid() {
			t.Fatalf("expected %q to be invalid", v)
		}
	}
}

func TestTimeOfDayAt(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	got := TimeOfDay("09:30").At(date)

	if got.Hour() != 9 || got.Minute() != 30 {
		t.Fatalf("expected 09:30 wall clock, got %s", got.Format("15:04"))
	}
	if got.Location() != loc {
		t.Fatalf("expected location preserved, got %v", got.Location())
	}
	if got.Day() != 10 {
		t.Fatalf("expected day preserved, got %d", got.Day())
	}
}

func TestWindowValid(t *testing.T) {
	if !(Window{Start: "09:00", End: "18:00"}).Valid() {
		t.Fatal("expected 09:00-18:00 to be valid")
	}
	if (Window{Start: "18:00", End: "09:00"}).Valid() {
		t.Fatal("expected inverted window to be invalid")
	}
	if (Window{Start: "09:00", End: "09:00"}).Valid() {
		t.Fatal("expected empty window to be invalid")
	}
	if (Window{Start: "xx", End: "18:00"}).Valid() {
		t.Fatal("expected malformed window to be invalid")
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: "09:00", End: "18:00"}

	if !w.Contains(at(9, 0), at(10, 0)) {
		t.Fatal("interval at window start should be contained")
	}
	if !w.Contains(at(17, 0), at(18, 0)) {
		t.Fatal("interval ending exactly at window end should be contained")
	}
	if w.Contains(at(8, 30), at(9, 30)) {
		t.Fatal("interval starting before the window should not be contained")
	}
	if w.Contains(at(17, 30), at(18, 30)) {
		t.Fatal("interval running past the window should not be contained")
	}
}
