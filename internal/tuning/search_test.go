package tuning

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func mustCap(t *testing.T, base int, u Unit, mul float64) Capacitor {
	t.Helper()
	c, err := NewCapacitor(base, u, mul)
	if err != nil {
		t.Fatalf("NewCapacitor(%d, %s, %g): %v", base, u.Label, mul, err)
	}
	return c
}

func mustNote(t *testing.T, i int) Note {
	t.Helper()
	n, err := NoteAt(i)
	if err != nil {
		t.Fatalf("NoteAt(%d): %v", i, err)
	}
	return n
}

func TestFrequency_DecreasingInTrim(t *testing.T) {
	caps := []float64{1e-12, 4.7e-9, 3.9e-6, 9.1e-5}
	for _, c := range caps {
		prev := Frequency(c, -1000)
		for trim := -999.5; trim <= 1000; trim += 0.5 {
			f := Frequency(c, trim)
			if !(f < prev) {
				t.Fatalf("c=%g: f(%g)=%g not below previous %g", c, trim, f, prev)
			}
			prev = f
		}
	}
}

func TestFrequency_ClosedForm(t *testing.T) {
	// R2 = 10000, C = 1µF: 1 / (0.693 * 21000e-6)
	want := 1 / (0.693 * 21000 * 1e-6)
	got := Frequency(1e-6, 0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Frequency(1µF, 0) = %v, want %v", got, want)
	}
}

func TestDutyCycle(t *testing.T) {
	// t1/(t1+t2) = (R1+R2)/(R1+2R2)
	got := DutyCycle(0)
	want := 11000.0 / 21000.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("DutyCycle(0) = %v, want %v", got, want)
	}
}

func TestInterval_OrderedByValue(t *testing.T) {
	s := DefaultSearcher()
	c := 1.5e-7
	iv := s.Interval(c)
	if iv.Min != s.BoundaryFrequency(c, 1000) {
		t.Errorf("Min = %v, want frequency at +1000", iv.Min)
	}
	if iv.Max != s.BoundaryFrequency(c, -1000) {
		t.Errorf("Max = %v, want frequency at -1000", iv.Max)
	}
	if !(iv.Min < iv.Max) {
		t.Errorf("interval not ordered: %+v", iv)
	}
}

func TestRange_ContainsInclusive(t *testing.T) {
	r := Range{Min: 1, Max: 2}
	tests := []struct {
		x    float64
		want bool
	}{
		{0.999, false},
		{1, true},
		{1.5, true},
		{2, true},
		{2.001, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

// 既知の組み合わせ。許容誤差 0.005 Hz では上から掃引して最初に誤差が
// 許容内に入ったトリムで止まるため、最良値よりトリムが大きめに出る。
// 許容誤差 0（打ち切りなしの全掃引）では最小誤差のトリムが選ばれる。
func TestSearcher_Match_KnownGood(t *testing.T) {
	tests := []struct {
		name      string
		note      int
		base      int
		unit      Unit
		mul       float64
		tolerance float64
		wantFreq  float64
		wantTrim  float64
	}{
		{"C0 early stop", 0, 14, Micro, 1, 0.005, 16.35, 818.4},
		{"A4 early stop", 57, 4, Nano, 100, 0.005, 440.0, 431.9},
		{"B8 early stop", 107, 22, Nano, 1, 0.005, 7902.13, 634.7},
		{"C0 full sweep", 0, 14, Micro, 1, 0, 16.35, 815.0},
		{"A4 full sweep", 57, 4, Nano, 100, 0, 440.0, 431.8},
		{"B8 full sweep", 107, 22, Nano, 1, 0, 7902.13, 634.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSearcher()
			s.Tolerance = tt.tolerance
			m, err := s.Match(mustNote(t, tt.note), mustCap(t, tt.base, tt.unit, tt.mul))
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if m.Trim.Freq != tt.wantFreq {
				t.Errorf("freq = %v, want %v", m.Trim.Freq, tt.wantFreq)
			}
			if m.Trim.Ohms != tt.wantTrim {
				t.Errorf("trim = %v, want %v", m.Trim.Ohms, tt.wantTrim)
			}
		})
	}
}

func TestSearcher_Match_OutsideInterval(t *testing.T) {
	s := DefaultSearcher()
	// 1.0 × 100nF は 627〜759 Hz で 440 Hz に届かない
	cp := mustCap(t, 0, Nano, 100)
	iv := s.Interval(cp.Farads())
	if iv.Contains(440) {
		t.Fatalf("precondition: interval %+v should exclude 440 Hz", iv)
	}
	m, err := s.Match(mustNote(t, 57), cp)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	if m != (Match{}) {
		t.Errorf("got non-zero match %+v alongside error", m)
	}
}

func TestSearcher_Match_EndpointsAccepted(t *testing.T) {
	s := DefaultSearcher()
	cp := mustCap(t, 4, Nano, 100)
	iv := s.Interval(cp.Farads())
	for _, f := range []float64{iv.Min, iv.Max} {
		n := Note{Index: 57, Freq: f}
		if _, err := s.Match(n, cp); err != nil {
			t.Errorf("target %v at interval endpoint rejected: %v", f, err)
		}
	}
	if _, err := s.Match(Note{Index: 57, Freq: math.Nextafter(iv.Max, math.Inf(1))}, cp); !errors.Is(err, ErrNoMatch) {
		t.Errorf("target just above interval: err = %v, want ErrNoMatch", err)
	}
}

func TestBestTrimFor_WithinToleranceOrMinimal(t *testing.T) {
	s := DefaultSearcher()
	for _, n := range []int{0, 30, 57, 80, 107} {
		note := mustNote(t, n)
		for _, u := range Units {
			for _, mul := range Multipliers {
				for v := range BaseValues {
					c := Capacitor{BaseIndex: v, Unit: u, Multiplier: mul}.Farads()
					if !s.Interval(c).Contains(note.Freq) {
						continue
					}
					got := s.BestTrimFor(c, note.Freq)
					if got.Error <= s.Tolerance {
						continue
					}
					// 打ち切りなし: 全ステップの最小誤差と一致するはず
					best := math.Inf(1)
					for trim := s.Trim.Max; trim >= s.Trim.Min; trim -= s.Step {
						if d := math.Abs(Frequency(c, trim) - note.Freq); d < best {
							best = d
						}
					}
					if got.Error != best {
						t.Errorf("note %d cap %g: error %v, want sweep minimum %v", n, c, got.Error, best)
					}
				}
			}
		}
	}
}

func TestBestTrimFor_SelfConsistent(t *testing.T) {
	s := DefaultSearcher()
	tests := []struct {
		note int
		cap  Capacitor
	}{
		{0, Capacitor{BaseIndex: 14, Unit: Micro, Multiplier: 1}},
		{57, Capacitor{BaseIndex: 4, Unit: Nano, Multiplier: 100}},
		{107, Capacitor{BaseIndex: 22, Unit: Nano, Multiplier: 1}},
	}
	for _, tt := range tests {
		c := tt.cap.Farads()
		got := s.BestTrimFor(c, NoteFrequencies[tt.note])
		if f := round2(Frequency(c, got.Ohms)); f != got.Freq {
			t.Errorf("note %d: Frequency(c, %v) rounds to %v, returned %v", tt.note, got.Ohms, f, got.Freq)
		}
	}
}

func TestBestTrimFor_FirstSeenWins(t *testing.T) {
	// 許容誤差を大きく取ると最初の候補（トリム最大）で止まる
	s := DefaultSearcher()
	s.Tolerance = 1e6
	got := s.BestTrimFor(3.9e-6, 16.35)
	if got.Ohms != 1000 {
		t.Errorf("trim = %v, want 1000 (first candidate)", got.Ohms)
	}
}
