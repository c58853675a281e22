package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ichijohodaka/tune555/internal/log"
	"github.com/ichijohodaka/tune555/internal/preview"
	"github.com/ichijohodaka/tune555/internal/tuning"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <note>",
	Short: "Render the tuned oscillator output for a note to WAV",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().Int("pick", 0, "which match to render when the note has several (0 = first)")
	previewCmd.Flags().StringP("file", "f", "", "output file (default <note name>.wav)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ni, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(err, "note %q", args[0])
	}
	n, err := tuning.NoteAt(ni)
	if err != nil {
		return err
	}

	r := enumerate(cfg, []tuning.Note{n})
	pick, _ := cmd.Flags().GetInt("pick")
	if len(r.Records) == 0 {
		return errors.Wrapf(tuning.ErrNoMatch, "%s", n.Name())
	}
	if pick < 0 || pick >= len(r.Records) {
		return errors.Errorf("--pick %d out of range: %s has %d match(es)", pick, n.Name(), len(r.Records))
	}
	m := r.Records[pick]

	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		file = cfg.Preview.File
	}
	if file == "" {
		file = n.Name() + ".wav"
	}
	opt := preview.Options{
		Duration:   time.Duration(cfg.Preview.Seconds * float64(time.Second)),
		SampleRate: cfg.Preview.SampleRate,
		Amplitude:  cfg.Preview.Amplitude,
	}
	if err := preview.Save(file, m, opt); err != nil {
		return err
	}
	log.Infof("wav saved: %s", file)
	fmt.Fprintln(cmd.OutOrStdout(), m.Line())
	return nil
}
