package cmd

import (
	"fmt"
	"os"

	"github.com/ichijohodaka/tune555/internal/config"
	"github.com/ichijohodaka/tune555/internal/log"
	"github.com/ichijohodaka/tune555/internal/report"
	"github.com/ichijohodaka/tune555/internal/tuning"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "tune555",
	Short: "Capacitor & trim calculator for a 555 synth",
	Long: "tune555 finds, for every note C0..B8, an E24 capacitor and a trim-pot setting\n" +
		"that tune a 555 astable oscillator to the note, and writes them to a table.",
	SilenceUsage: true,
	RunE:         runTable,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .tune555.toml)")
	pf.Float64("tolerance", 0.005, "stop the trim sweep once |f - target| <= tolerance [Hz]")
	pf.Float64("step", 0.1, "trim sweep step [Ω]")
	pf.BoolP("debug", "d", false, "show debug messages")
	pf.BoolP("quiet", "q", false, "suppress information messages")
	pf.BoolP("silent", "Q", false, "do not output any messages")
	_ = viper.BindPFlag("tolerance", pf.Lookup("tolerance"))
	_ = viper.BindPFlag("step", pf.Lookup("step"))

	f := rootCmd.Flags()
	f.StringP("output", "o", "tune_triple_fives.txt", "result table file")
	f.String("tsv", "", "also save results as TSV")
	f.String("xlsx", "", "also save results as xlsx")
	f.Int("max-print", 0, "print up to N results to the console (-1: all)")
	f.Bool("progress", true, "show progress")
	_ = viper.BindPFlag("output_file", f.Lookup("output"))
	_ = viper.BindPFlag("tsv_file", f.Lookup("tsv"))
	_ = viper.BindPFlag("xlsx_file", f.Lookup("xlsx"))
	_ = viper.BindPFlag("max_print", f.Lookup("max-print"))
	_ = viper.BindPFlag("progress", f.Lookup("progress"))

	rootCmd.AddCommand(matchCmd, inventoryCmd, previewCmd, configCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".tune555")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("TUNE555")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
}

// loadConfig は設定を読み、ログレベルを反映する。
// --debug / --silent / --quiet は log_level より優先。
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}
	lvl, _ := log.ParseLevel(cfg.LogLevel)
	if v, _ := cmd.Flags().GetBool("debug"); v {
		lvl = log.LogLevel_Debug
	} else if v, _ := cmd.Flags().GetBool("silent"); v {
		lvl = log.LogLevel_None
	} else if v, _ := cmd.Flags().GetBool("quiet"); v {
		lvl = log.LogLevel_Warn
	}
	log.Level = lvl
	log.Debugf("tolerance=%g step=%g trim=[%g, %g]", cfg.Tolerance, cfg.Step, cfg.TrimMin, cfg.TrimMax)
	return cfg, nil
}

// enumerate は全探索を行い、進捗と合わない音の診断を出す。
func enumerate(cfg config.Config, notes []tuning.Note) *tuning.Result {
	total := len(notes)
	if notes == nil {
		total = len(tuning.NoteFrequencies)
	}
	progress := cfg.Progress && log.LogLevel_Info <= log.Level
	e := tuning.Enumerator{
		Searcher: cfg.Searcher(),
		Notes:    notes,
		OnNote: func(n tuning.Note, matches int, r *tuning.Result) {
			if progress {
				report.Progress(log.Output, n, total, r.Found())
			}
			log.Debugf("%s: %d match(es)", n.Name(), matches)
		},
	}
	r := e.Run()
	if progress {
		fmt.Fprintln(log.Output)
	}
	for _, n := range r.Unmatched {
		log.Errorf("No match for #%d:%v", n.Index, n.Freq)
	}
	return r
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	log.Infof("CAPACITOR & TRIM CALCULATOR FOR 555 SYNTH:\n")
	log.Infof("Writing to file `%s`", cfg.OutputFile)

	r := enumerate(cfg, nil)

	if err := report.SaveTable(cfg.OutputFile, r.Records); err != nil {
		return err
	}
	if cfg.TSVFile != "" {
		if err := report.SaveToTSV(cfg.TSVFile, r.Records); err != nil {
			return err
		}
		log.Infof("tsv saved: %s", cfg.TSVFile)
	}
	if cfg.XLSXFile != "" {
		if err := report.SaveToXLSX(cfg.XLSXFile, r); err != nil {
			return errors.Wrap(err, "xlsx save error")
		}
		log.Infof("xlsx saved: %s", cfg.XLSXFile)
	}

	if cfg.MaxPrint != 0 {
		report.PrintRecordTable(out, "=== Matches ===", r.Records, cfg.MaxPrint)
	}
	report.PrintSummary(out, r)
	return nil
}
