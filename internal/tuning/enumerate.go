package tuning

import "sort"

// Inventory は使用したコンデンサ値の集合。
type Inventory map[InventoryEntry]struct{}

// Add は e を追加する（既にあれば何もしない）。
func (inv Inventory) Add(e InventoryEntry) {
	inv[e] = struct{}{}
}

// Sorted は単位（µ → n → p）、値の昇順に並べて返す。
func (inv Inventory) Sorted() []InventoryEntry {
	rank := map[string]int{}
	for i, u := range Units {
		rank[u.Label] = i
	}
	out := make([]InventoryEntry, 0, len(inv))
	for e := range inv {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Unit != out[j].Unit {
			return rank[out[i].Unit] < rank[out[j].Unit]
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Result は全探索の集計。
type Result struct {
	Records   []Match
	Inventory Inventory
	// MinTrim / MaxTrim は採用トリムの最小・最大。
	// 初期値は逆向き（MinTrim = トリム最大, MaxTrim = トリム最小）の番兵で、
	// 1 件も採用がなければそのまま残る。
	MinTrim   float64
	MaxTrim   float64
	Unmatched []Note
}

func newResult(trim Range) *Result {
	return &Result{
		Inventory: Inventory{},
		MinTrim:   trim.Max,
		MaxTrim:   trim.Min,
	}
}

// add は採用 1 件を集計に反映する。
func (r *Result) add(m Match) {
	r.Records = append(r.Records, m)
	r.Inventory.Add(EntryOf(m.Capacitor))
	t := m.Trim.Ohms
	if t < r.MinTrim {
		r.MinTrim = t
	} else if t > r.MaxTrim {
		r.MaxTrim = t
	}
}

// Found は採用件数。
func (r *Result) Found() int { return len(r.Records) }

// HasTrim は MinTrim / MaxTrim が実際の値か（番兵でないか）を返す。
func (r *Result) HasTrim() bool { return len(r.Records) > 0 }

// RecordsFor は音番号 i の採用レコードを探索順で返す。
func (r *Result) RecordsFor(i int) []Match {
	var out []Match
	for _, m := range r.Records {
		if m.Note.Index == i {
			out = append(out, m)
		}
	}
	return out
}

// Enumerator は全音 × 単位 × 桁 × 基準値を順に調べる。
type Enumerator struct {
	Searcher Searcher
	// Notes は対象の音（nil なら全 108 音）。
	Notes []Note
	// OnNote は各音の探索が終わるたびに呼ばれる（nil 可）。
	OnNote func(n Note, matches int, r *Result)
}

// Run は全探索を 1 回行う。Match の失敗（ErrNoMatch）は次の候補へ進むだけ。
// 同じ (単位, 桁) の中では最初に区間に入った基準値で打ち切り、次の桁へ進む。
func (e Enumerator) Run() *Result {
	r := newResult(e.Searcher.Trim)
	notes := e.Notes
	if notes == nil {
		notes = Notes()
	}
	for _, n := range notes {
		found := 0
		for _, u := range Units {
			for _, mul := range Multipliers {
				for v := range BaseValues {
					cp := Capacitor{BaseIndex: v, Unit: u, Multiplier: mul}
					m, err := e.Searcher.Match(n, cp)
					if err != nil {
						continue
					}
					r.add(m)
					found++
					break
				}
			}
		}
		if found == 0 {
			r.Unmatched = append(r.Unmatched, n)
		}
		if e.OnNote != nil {
			e.OnNote(n, found, r)
		}
	}
	return r
}
