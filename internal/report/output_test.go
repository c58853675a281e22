package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ichijohodaka/tune555/internal/tuning"
	"github.com/xuri/excelize/v2"
)

func sampleResult() *tuning.Result {
	return tuning.Enumerator{Searcher: tuning.DefaultSearcher()}.Run()
}

func TestWriteTable(t *testing.T) {
	r := sampleResult()
	var buf bytes.Buffer
	if err := WriteTable(&buf, r.Records); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != r.Found() {
		t.Fatalf("%d lines, want %d", len(lines), r.Found())
	}
	if want := "0016.35Hz => 003.90uF\tTrim => 1818.4Ω -> 90.92%"; lines[0] != want {
		t.Errorf("first line = %q, want %q", lines[0], want)
	}
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "7902.13Hz => 008.20nF") {
		t.Errorf("last line = %q", last)
	}
}

func TestSaveTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	r := sampleResult()
	if err := SaveTable(path, r.Records); err != nil {
		t.Fatalf("SaveTable: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), "\n"); n != r.Found() {
		t.Errorf("%d lines written, want %d", n, r.Found())
	}
}

func TestSaveTable_BadPath(t *testing.T) {
	err := SaveTable(filepath.Join(t.TempDir(), "missing", "out.txt"), nil)
	if err == nil || !strings.Contains(err.Error(), "create") {
		t.Errorf("err = %v, want create error", err)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleResult())
	want := "Found 114\nCapacitor values #54\nTrim from -826.6 to 990.8\n"
	if got := buf.String(); got != want {
		t.Errorf("PrintSummary =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintSummary_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, &tuning.Result{Inventory: tuning.Inventory{}, MinTrim: 1000, MaxTrim: -1000})
	if !strings.Contains(buf.String(), "no match") {
		t.Errorf("sentinel trims should not be reported as values:\n%s", buf.String())
	}
}

func TestPrintRecordTable(t *testing.T) {
	r := sampleResult()
	var buf bytes.Buffer
	PrintRecordTable(&buf, "=== matches ===", r.Records, 2)
	out := buf.String()
	for _, s := range []string{"=== matches ===", "| No ", "C0", "C#0", "3.90uF", "... 112 more"} {
		if !strings.Contains(out, s) {
			t.Errorf("table missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "D0 ") {
		t.Errorf("table shows more than 2 rows:\n%s", out)
	}
}

func TestPrintRecordTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintRecordTable(&buf, "t", nil, -1)
	if buf.String() != "t\n(none)\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintInventory(t *testing.T) {
	inv := tuning.Inventory{}
	inv.Add(tuning.InventoryEntry{Value: 150, Unit: "n"})
	inv.Add(tuning.InventoryEntry{Value: 4, Unit: "u"})
	var buf bytes.Buffer
	PrintInventory(&buf, inv)
	if got := buf.String(); got != "4uF\n150nF\n" {
		t.Errorf("PrintInventory = %q", got)
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	Progress(&buf, tuning.Note{Index: 53, Freq: 349.23}, 108, 57)
	out := buf.String()
	if !strings.HasPrefix(out, "\rnote= 53 F4   ( 50.00%)  found=    57") {
		t.Errorf("Progress = %q", out)
	}
}

func TestSaveToTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.tsv")
	r := sampleResult()
	if err := SaveToTSV(path, r.Records); err != nil {
		t.Fatalf("SaveToTSV: %v", err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	cr := csv.NewReader(fp)
	cr.Comma = '\t'
	recs, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != r.Found()+1 {
		t.Fatalf("%d rows, want header + %d", len(recs), r.Found())
	}
	want := []string{"1", "C0", "16.35", "3.90uF", "818.40", "1818.40", "90.92", "16.35"}
	for i, v := range want {
		if recs[1][i] != v {
			t.Errorf("row 1 col %d (%s) = %q, want %q", i, recs[0][i], recs[1][i], v)
		}
	}
}

func TestSaveToTSV_EmptyName(t *testing.T) {
	if err := SaveToTSV("", nil); err != nil {
		t.Errorf("empty filename should be a no-op, got %v", err)
	}
}

func TestSaveToXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.xlsx")
	r := sampleResult()
	if err := SaveToXLSX(path, r); err != nil {
		t.Fatalf("SaveToXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	want := []string{"Summary", "Matches", "Inventory", "Unmatched"}
	got := f.GetSheetList()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("sheets = %v, want %v", got, want)
	}

	if v, _ := f.GetCellValue("Summary", "B2"); v != "114" {
		t.Errorf("Summary!B2 = %q, want 114", v)
	}
	if v, _ := f.GetCellValue("Summary", "B3"); v != "54" {
		t.Errorf("Summary!B3 = %q, want 54", v)
	}
	if v, _ := f.GetCellValue("Matches", "B2"); v != "C0" {
		t.Errorf("Matches!B2 = %q, want C0", v)
	}
	rows, err := f.GetRows("Inventory")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 55 {
		t.Errorf("Inventory rows = %d, want 55", len(rows))
	}
	if rows[1][0] != "1" || rows[1][1] != "uF" {
		t.Errorf("first inventory row = %v, want [1 uF]", rows[1])
	}
}
