package cmd

import (
	"fmt"
	"strconv"

	"github.com/ichijohodaka/tune555/internal/tuning"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <note> <base-index> <u|n|p> <1|10|100>",
	Short: "Tune one note with one capacitor",
	Long: "match checks whether the capacitor base[base-index] x multiplier (unit) can reach\n" +
		"the note within the trim travel and prints the best trim setting.",
	Example: "  tune555 match 57 4 n 100   # A4 with 150nF",
	Args:    cobra.ExactArgs(4),
	RunE:    runMatch,
}

// parseCombination は match の引数を Note と Capacitor に変換する。
func parseCombination(args []string) (tuning.Note, tuning.Capacitor, error) {
	ni, err := strconv.Atoi(args[0])
	if err != nil {
		return tuning.Note{}, tuning.Capacitor{}, errors.Wrapf(err, "note %q", args[0])
	}
	n, err := tuning.NoteAt(ni)
	if err != nil {
		return tuning.Note{}, tuning.Capacitor{}, err
	}
	bi, err := strconv.Atoi(args[1])
	if err != nil {
		return tuning.Note{}, tuning.Capacitor{}, errors.Wrapf(err, "base index %q", args[1])
	}
	u, err := tuning.UnitByLabel(args[2])
	if err != nil {
		return tuning.Note{}, tuning.Capacitor{}, err
	}
	mul, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return tuning.Note{}, tuning.Capacitor{}, errors.Wrapf(err, "multiplier %q", args[3])
	}
	cp, err := tuning.NewCapacitor(bi, u, mul)
	if err != nil {
		return tuning.Note{}, tuning.Capacitor{}, err
	}
	return n, cp, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, cp, err := parseCombination(args)
	if err != nil {
		return err
	}

	s := cfg.Searcher()
	iv := s.Interval(cp.Farads())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "note:      #%d %s %.2f Hz\n", n.Index, n.Name(), n.Freq)
	fmt.Fprintf(out, "capacitor: %s (%g F)\n", cp, cp.Farads())
	fmt.Fprintf(out, "reachable: %.2f .. %.2f Hz\n", iv.Min, iv.Max)

	m, err := s.Match(n, cp)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "trim:      %.2f Ω -> %.2f Hz (error %.4f Hz)\n", m.Trim.Ohms, m.Trim.Freq, m.Trim.Error)
	fmt.Fprintln(out, m.Line())
	return nil
}
