package tuning

import (
	"fmt"
	"math"
)

// TrimTravel はトリム抵抗の全可動範囲 [Ω]（-1000〜+1000）。
const TrimTravel = 2000.0

// Match は採用された (音, コンデンサ, トリム) の組。
type Match struct {
	Note      Note
	Capacitor Capacitor
	Interval  Range // 到達可能な周波数区間 [Hz]
	Trim      Trim
}

// Resistance はトリム抵抗の実抵抗値 1000+trim [Ω]（小数第 2 位丸め）。
func (m Match) Resistance() float64 {
	return round2(TrimTravel/2 + m.Trim.Ohms)
}

// Percent はトリム位置を可動範囲に対する % で表す（小数第 2 位丸め）。
func (m Match) Percent() float64 {
	return math.Round((TrimTravel/2+m.Trim.Ohms)/TrimTravel*10000) / 100
}

// Line は結果ファイル 1 行分の文字列（改行なし）。
//
//	0016.35Hz => 003.90uF	Trim => 1818.4Ω -> 90.92%
func (m Match) Line() string {
	return fmt.Sprintf("%07.2fHz => %06.2f%sF\tTrim => %06.1fΩ -> %05.2f%%",
		m.Note.Freq, round2(m.Capacitor.Value()), m.Capacitor.Unit.Label, m.Resistance(), m.Percent())
}

// InventoryEntry は使用したコンデンサ値（単位内の整数値 + 単位）。
type InventoryEntry struct {
	Value uint32
	Unit  string
}

func (e InventoryEntry) String() string {
	return fmt.Sprintf("%d%sF", e.Value, e.Unit)
}

// EntryOf は Capacitor の在庫キーを返す。
func EntryOf(c Capacitor) InventoryEntry {
	return InventoryEntry{Value: uint32(math.Round(c.Value())), Unit: c.Unit.Label}
}
