package tuning

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNoMatch は、トリム可動範囲内のどの設定でも目標周波数に届かないことを表す。
var ErrNoMatch = errors.New("could not find match for note")

// Range は閉区間 [Min, Max]。
type Range struct {
	Min float64
	Max float64
}

// Contains は両端を含めて x が範囲内かを返す。
func (r Range) Contains(x float64) bool {
	return r.Min <= x && x <= r.Max
}

// Searcher はトリム探索のパラメータ。
type Searcher struct {
	Tolerance float64 // 許容誤差 [Hz]。これ以下になった瞬間に探索を打ち切る
	Step      float64 // トリムの刻み [Ω]
	Trim      Range   // トリム可動範囲 [Ω]
}

// DefaultSearcher は 0.005 Hz / 0.1 Ω / ±1000 Ω。
func DefaultSearcher() Searcher {
	return Searcher{
		Tolerance: 0.005,
		Step:      0.1,
		Trim:      Range{Min: -1000, Max: 1000},
	}
}

// BoundaryFrequency はトリムを端 trimExtreme に振り切ったときの周波数。
func (s Searcher) BoundaryFrequency(c, trimExtreme float64) float64 {
	return Frequency(c, trimExtreme)
}

// Interval は容量 c で到達できる周波数の閉区間。
// 周波数はトリムに対して減少するので、下端はトリム最大、上端はトリム最小で決まる。
func (s Searcher) Interval(c float64) Range {
	lo := s.BoundaryFrequency(c, s.Trim.Max)
	hi := s.BoundaryFrequency(c, s.Trim.Min)
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{Min: lo, Max: hi}
}

// Trim は探索結果。Ohms と Freq は小数第 2 位に丸め済み。
type Trim struct {
	Ohms  float64
	Freq  float64
	Error float64 // 丸め前の |f - target|
}

// BestTrimFor は、トリムを最大値から Step ずつ下げながら周波数を評価し、
// 目標 target に最も近い組を返す。誤差が Tolerance 以下になった時点で打ち切る。
// 同じ誤差なら先に見つけた方（トリムが大きい方）が残る。
func (s Searcher) BestTrimFor(c, target float64) Trim {
	bestErr := math.Inf(1)
	var bestOhms, bestFreq float64
	for trim := s.Trim.Max; trim >= s.Trim.Min; trim -= s.Step {
		f := Frequency(c, trim)
		d := math.Abs(f - target)
		if d < bestErr {
			bestErr = d
			bestOhms = trim
			bestFreq = f
		}
		if d <= s.Tolerance {
			break
		}
	}
	return Trim{Ohms: round2(bestOhms), Freq: round2(bestFreq), Error: bestErr}
}

// Match は音 n をコンデンサ cp で合わせる。
// 目標周波数が到達区間の外なら ErrNoMatch（端に寄せた結果は返さない）。
func (s Searcher) Match(n Note, cp Capacitor) (Match, error) {
	c := cp.Farads()
	iv := s.Interval(c)
	if !iv.Contains(n.Freq) {
		return Match{}, errors.Wrapf(ErrNoMatch, "%s (%.2f Hz) with %s: reachable [%.2f, %.2f] Hz",
			n.Name(), n.Freq, cp, iv.Min, iv.Max)
	}
	t := s.BestTrimFor(c, n.Freq)
	return Match{Note: n, Capacitor: cp, Interval: iv, Trim: t}, nil
}
