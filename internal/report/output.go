// Package report は探索結果をテキスト・表・TSV・xlsx に書き出す。
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ichijohodaka/tune555/internal/tuning"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

func fmt2(x float64) string { return fmt.Sprintf("%.2f", x) }

// 表・TSV の列（順序固定）
var headers = []string{"No", "Note", "f [Hz]", "C", "Trim [Ω]", "R [Ω]", "Trim [%]", "f_out [Hz]"}

func row(i int, m tuning.Match) []string {
	return []string{
		fmt.Sprintf("%d", i+1),
		m.Note.Name(),
		fmt2(m.Note.Freq),
		m.Capacitor.String(),
		fmt2(m.Trim.Ohms),
		fmt2(m.Resistance()),
		fmt2(m.Percent()),
		fmt2(m.Trim.Freq),
	}
}

// WriteTable は結果ファイル形式（1 採用 1 行）で書き出す。
func WriteTable(w io.Writer, list []tuning.Match) error {
	bw := bufio.NewWriter(w)
	for _, m := range list {
		if _, err := fmt.Fprintln(bw, m.Line()); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(bw.Flush())
}

// SaveTable は WriteTable の結果を filename に保存する。
func SaveTable(filename string, list []tuning.Match) error {
	fp, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer fp.Close()
	if err := WriteTable(fp, list); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return errors.Wrapf(fp.Close(), "close %s", filename)
}

// PrintSummary は採用件数・コンデンサ種類数・トリム範囲を表示する。
func PrintSummary(w io.Writer, r *tuning.Result) {
	fmt.Fprintf(w, "Found %d\n", r.Found())
	fmt.Fprintf(w, "Capacitor values #%d\n", len(r.Inventory))
	if r.HasTrim() {
		fmt.Fprintf(w, "Trim from %g to %g\n", r.MinTrim, r.MaxTrim)
	} else {
		fmt.Fprintln(w, "Trim from - to - (no match)")
	}
	if n := len(r.Unmatched); n > 0 {
		fmt.Fprintf(w, "Unmatched notes #%d\n", n)
	}
}

// PrintInventory は使用したコンデンサ値を 1 行 1 件で表示する。
func PrintInventory(w io.Writer, inv tuning.Inventory) {
	for _, e := range inv.Sorted() {
		fmt.Fprintln(w, e)
	}
}

// Progress は進捗を固定幅で 1 行に上書き表示する（行頭 \r）。
func Progress(w io.Writer, n tuning.Note, total int, found int) {
	pct := float64(n.Index+1) / float64(total) * 100.0
	line := fmt.Sprintf("\rnote=%3d %-4s (%6.2f%%)  found=%6d", n.Index, n.Name(), pct, found)
	// 前回表示より短くなった場合に備えて行末を消す
	fmt.Fprint(w, line+"        ")
}

// PrintRecordTable は罫線付きの表を表示する。maxPrint < 0 なら全件。
func PrintRecordTable(w io.Writer, title string, list []tuning.Match, maxPrint int) {
	fmt.Fprintln(w, title)
	if len(list) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	shown := list
	if maxPrint >= 0 && len(list) > maxPrint {
		shown = list[:maxPrint]
	}

	rows := make([][]string, len(shown))
	for i, m := range shown {
		rows[i] = row(i, m)
	}

	// 列幅を決定（ヘッダ or 中身の最大）
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for j, cell := range r {
			if l := len([]rune(cell)); l > widths[j] {
				widths[j] = l
			}
		}
	}

	printLine := func() {
		fmt.Fprint(w, "+")
		for _, wd := range widths {
			fmt.Fprint(w, strings.Repeat("-", wd+2)+"+")
		}
		fmt.Fprintln(w)
	}

	printLine()
	fmt.Fprint(w, "|")
	for i, h := range headers {
		fmt.Fprintf(w, " %-*s |", widths[i], h)
	}
	fmt.Fprintln(w)
	printLine()

	for _, r := range rows {
		fmt.Fprint(w, "|")
		for j, cell := range r {
			fmt.Fprintf(w, " %*s |", widths[j], cell) // 右寄せ
		}
		fmt.Fprintln(w)
	}
	printLine()
	if len(shown) < len(list) {
		fmt.Fprintf(w, "... %d more\n", len(list)-len(shown))
	}
	fmt.Fprintln(w)
}

// SaveToTSV は list を TSV で保存する（headers の列順）。
func SaveToTSV(filename string, list []tuning.Match) error {
	if filename == "" {
		return nil
	}

	fp, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	w.Comma = '\t'

	if err := w.Write(headers); err != nil {
		return errors.WithStack(err)
	}
	for i, m := range list {
		if err := w.Write(row(i, m)); err != nil {
			return errors.WithStack(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return errors.Wrapf(fp.Close(), "close %s", filename)
}

// SaveToXLSX は Summary / Matches / Inventory / Unmatched の 4 シートで保存する。
// 数値は丸め後の値をそのまま数値セルとして書く。
func SaveToXLSX(filename string, r *tuning.Result) error {
	if filename == "" {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	set := func(sheet string, col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}
	setRow := func(sheet string, row int, vals ...interface{}) error {
		for i, v := range vals {
			if err := set(sheet, i+1, row, v); err != nil {
				return err
			}
		}
		return nil
	}

	// Summary
	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return errors.WithStack(err)
	}
	minTrim, maxTrim := interface{}("-"), interface{}("-")
	if r.HasTrim() {
		minTrim, maxTrim = r.MinTrim, r.MaxTrim
	}
	summaryRows := [][]interface{}{
		{"Item", "Value"},
		{"Found", r.Found()},
		{"Capacitor values", len(r.Inventory)},
		{"Trim min [Ω]", minTrim},
		{"Trim max [Ω]", maxTrim},
		{"Unmatched notes", len(r.Unmatched)},
	}
	for i, vals := range summaryRows {
		if err := setRow(summary, i+1, vals...); err != nil {
			return errors.WithStack(err)
		}
	}

	// Matches
	if _, err := f.NewSheet("Matches"); err != nil {
		return errors.WithStack(err)
	}
	hdr := make([]interface{}, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := setRow("Matches", 1, hdr...); err != nil {
		return errors.WithStack(err)
	}
	for i, m := range r.Records {
		err := setRow("Matches", i+2,
			i+1, m.Note.Name(), m.Note.Freq, m.Capacitor.String(),
			m.Trim.Ohms, m.Resistance(), m.Percent(), m.Trim.Freq)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	// Inventory
	if _, err := f.NewSheet("Inventory"); err != nil {
		return errors.WithStack(err)
	}
	if err := setRow("Inventory", 1, "Value", "Unit"); err != nil {
		return errors.WithStack(err)
	}
	for i, e := range r.Inventory.Sorted() {
		if err := setRow("Inventory", i+2, e.Value, e.Unit+"F"); err != nil {
			return errors.WithStack(err)
		}
	}

	// Unmatched
	if _, err := f.NewSheet("Unmatched"); err != nil {
		return errors.WithStack(err)
	}
	if err := setRow("Unmatched", 1, "No", "Note", "f [Hz]"); err != nil {
		return errors.WithStack(err)
	}
	for i, n := range r.Unmatched {
		if err := setRow("Unmatched", i+2, n.Index, n.Name(), n.Freq); err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.Wrapf(f.SaveAs(filename), "save %s", filename)
}
