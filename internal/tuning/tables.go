package tuning

import "fmt"

// BaseValues は E24 系列の正規化されたコンデンサ値（1.0〜9.1）。
var BaseValues = [24]float64{
	1.0, 1.1, 1.2, 1.3, 1.5, 1.6, 1.8, 2.0, 2.2, 2.4, 2.7, 3.0,
	3.3, 3.6, 3.9, 4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5, 8.2, 9.1,
}

// NoteFrequencies は C0〜B8 の 108 音の平均律周波数 [Hz]（低い順）。
var NoteFrequencies = [108]float64{
	16.35, 17.32, 18.35, 19.45, 20.60, 21.83, 23.12, 24.50, 25.96, 27.50, 29.14, 30.87,
	32.70, 34.65, 36.71, 38.89, 41.20, 43.65, 46.25, 49.00, 51.91, 55.00, 58.27, 61.74,
	65.41, 69.30, 73.42, 77.78, 82.41, 87.31, 92.50, 98.00, 103.83, 110.00, 116.54, 123.47,
	130.81, 138.59, 146.83, 155.56, 164.81, 174.61, 185.00, 196.00, 207.65, 220.00, 233.08, 246.94,
	261.63, 277.18, 293.66, 311.13, 329.63, 349.23, 369.99, 392.00, 415.30, 440.00, 466.16, 493.88,
	523.25, 554.37, 587.33, 622.25, 659.25, 698.46, 739.99, 783.99, 830.61, 880.00, 932.33, 987.77,
	1046.50, 1108.73, 1174.66, 1244.51, 1318.51, 1396.91, 1479.98, 1567.98, 1661.22, 1760.00, 1864.66, 1975.53,
	2093.00, 2217.46, 2349.32, 2489.02, 2637.02, 2793.83, 2959.96, 3135.96, 3322.44, 3520.00, 3729.31, 3951.07,
	4186.01, 4434.92, 4698.63, 4978.03, 5274.04, 5587.65, 5919.91, 6271.93, 6644.88, 7040.00, 7458.62, 7902.13,
}

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note は音番号と目標周波数の組。
type Note struct {
	Index int
	Freq  float64
}

// Name は "A4" のような音名を返す（Index 0 が C0）。
func (n Note) Name() string {
	return fmt.Sprintf("%s%d", pitchClasses[n.Index%12], n.Index/12)
}

// NoteAt は音番号 i の Note を返す。範囲外ならエラー。
func NoteAt(i int) (Note, error) {
	if i < 0 || i >= len(NoteFrequencies) {
		return Note{}, fmt.Errorf("note index %d out of range [0, %d]", i, len(NoteFrequencies)-1)
	}
	return Note{Index: i, Freq: NoteFrequencies[i]}, nil
}

// Notes は全 108 音を低い順に返す。
func Notes() []Note {
	out := make([]Note, len(NoteFrequencies))
	for i, f := range NoteFrequencies {
		out[i] = Note{Index: i, Freq: f}
	}
	return out
}

// Unit はコンデンサ値の単位（µ / n / p）。
type Unit struct {
	Label string
	Scale float64
}

var (
	Micro = Unit{Label: "u", Scale: 1e-6}
	Nano  = Unit{Label: "n", Scale: 1e-9}
	Pico  = Unit{Label: "p", Scale: 1e-12}
)

// Units は探索順（µ → n → p）。
var Units = []Unit{Micro, Nano, Pico}

// Multipliers は単位内の桁（×1, ×10, ×100）。
var Multipliers = []float64{1, 10, 100}

// UnitByLabel は "u" / "n" / "p" から Unit を引く。
func UnitByLabel(label string) (Unit, error) {
	for _, u := range Units {
		if u.Label == label {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("unknown unit %q (want u|n|p)", label)
}

// Capacitor はコンデンサ値を 3 つの生成要素で表す。
type Capacitor struct {
	BaseIndex  int
	Unit       Unit
	Multiplier float64
}

// NewCapacitor は基準値の番号・単位・桁から Capacitor を作る。
func NewCapacitor(baseIndex int, unit Unit, multiplier float64) (Capacitor, error) {
	if baseIndex < 0 || baseIndex >= len(BaseValues) {
		return Capacitor{}, fmt.Errorf("base value index %d out of range [0, %d]", baseIndex, len(BaseValues)-1)
	}
	ok := false
	for _, m := range Multipliers {
		if m == multiplier {
			ok = true
		}
	}
	if !ok {
		return Capacitor{}, fmt.Errorf("multiplier %g not in %v", multiplier, Multipliers)
	}
	return Capacitor{BaseIndex: baseIndex, Unit: unit, Multiplier: multiplier}, nil
}

// Value は単位内での表示値（例 3.9, 150）。
func (c Capacitor) Value() float64 {
	return BaseValues[c.BaseIndex] * c.Multiplier
}

// Farads は実効容量 [F]。base × (unit × multiplier) の順で掛ける。
func (c Capacitor) Farads() float64 {
	return BaseValues[c.BaseIndex] * (c.Unit.Scale * c.Multiplier)
}

func (c Capacitor) String() string {
	return fmt.Sprintf("%.2f%sF", round2(c.Value()), c.Unit.Label)
}
