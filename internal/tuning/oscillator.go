package tuning

import "math"

// 回路定数（555 アステーブル）
const (
	R1       = 1000.0  // 固定抵抗 [Ω]
	R2Base   = 10000.0 // トリムが加算される固定抵抗 [Ω]
	TimeCoef = 0.693   // ln 2 の近似
)

// Frequency は容量 c [F] とトリム trim [Ω] から発振周波数 [Hz] を返す。
// trim に対して狭義単調減少。
func Frequency(c, trim float64) float64 {
	t1, t2 := periods(c, trim)
	return 1.0 / (t1 + t2)
}

// DutyCycle は 1 周期のうち出力が High の割合 t1/(t1+t2)。容量に依存しない。
func DutyCycle(trim float64) float64 {
	t1, t2 := periods(1, trim)
	return t1 / (t1 + t2)
}

// periods は充電時間 t1 と放電時間 t2 [s]。
// float64 変換で各項を丸め、FMA による融合を防ぐ（アーキテクチャ間で同じ値にする）。
func periods(c, trim float64) (float64, float64) {
	r2 := R2Base + trim
	t1 := float64(float64(TimeCoef*(R1+r2)) * c)
	t2 := float64(float64(TimeCoef*r2) * c)
	return t1, t2
}

// round2 は小数第 2 位で丸める（0.5 は 0 から遠い方へ）。
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
