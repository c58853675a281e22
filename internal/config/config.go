// Package config は探索パラメータと出力先をまとめる。
// 既定値 → 設定ファイル (.tune555.toml) → 環境変数 TUNE555_* → フラグ の順に上書きされる。
package config

import (
	"github.com/ichijohodaka/tune555/internal/log"
	"github.com/ichijohodaka/tune555/internal/tuning"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// PreviewConfig は WAV プレビューの設定。
type PreviewConfig struct {
	Seconds    float64 `mapstructure:"seconds" toml:"seconds"`
	SampleRate int     `mapstructure:"sample_rate" toml:"sample_rate"`
	Amplitude  float64 `mapstructure:"amplitude" toml:"amplitude"`
	File       string  `mapstructure:"file" toml:"file"` // "" なら <音名>.wav
}

// Config は「ユーザー設定」をまとめたもの
type Config struct {
	Tolerance float64 `mapstructure:"tolerance" toml:"tolerance"` // 許容誤差 [Hz]
	Step      float64 `mapstructure:"step" toml:"step"`           // トリムの刻み [Ω]
	TrimMin   float64 `mapstructure:"trim_min" toml:"trim_min"`   // [Ω]
	TrimMax   float64 `mapstructure:"trim_max" toml:"trim_max"`   // [Ω]

	OutputFile string `mapstructure:"output_file" toml:"output_file"`
	TSVFile    string `mapstructure:"tsv_file" toml:"tsv_file"`   // "" なら保存しない
	XLSXFile   string `mapstructure:"xlsx_file" toml:"xlsx_file"` // "" なら保存しない
	MaxPrint   int    `mapstructure:"max_print" toml:"max_print"` // コンソールに表示する最大件数（0 なら表示しない、負なら全件）
	Progress   bool   `mapstructure:"progress" toml:"progress"`
	LogLevel   string `mapstructure:"log_level" toml:"log_level"`

	Preview PreviewConfig `mapstructure:"preview" toml:"preview"`
}

func DefaultConfig() Config {
	s := tuning.DefaultSearcher()
	return Config{
		Tolerance:  s.Tolerance,
		Step:       s.Step,
		TrimMin:    s.Trim.Min,
		TrimMax:    s.Trim.Max,
		OutputFile: "tune_triple_fives.txt",
		TSVFile:    "",
		XLSXFile:   "",
		MaxPrint:   0,
		Progress:   true,
		LogLevel:   "info",
		Preview: PreviewConfig{
			Seconds:    2,
			SampleRate: 44100,
			Amplitude:  0.5,
			File:       "",
		},
	}
}

// SetDefaults は DefaultConfig の値を viper の既定値として登録する。
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("tolerance", d.Tolerance)
	v.SetDefault("step", d.Step)
	v.SetDefault("trim_min", d.TrimMin)
	v.SetDefault("trim_max", d.TrimMax)
	v.SetDefault("output_file", d.OutputFile)
	v.SetDefault("tsv_file", d.TSVFile)
	v.SetDefault("xlsx_file", d.XLSXFile)
	v.SetDefault("max_print", d.MaxPrint)
	v.SetDefault("progress", d.Progress)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("preview.seconds", d.Preview.Seconds)
	v.SetDefault("preview.sample_rate", d.Preview.SampleRate)
	v.SetDefault("preview.amplitude", d.Preview.Amplitude)
	v.SetDefault("preview.file", d.Preview.File)
}

// Load は v から設定を読み出し、検証して返す。
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate は探索が終わらない・意味を持たない設定を弾く。
func (c Config) Validate() error {
	if c.Step <= 0 {
		return errors.Errorf("step must be > 0 (got %g)", c.Step)
	}
	if c.TrimMin >= c.TrimMax {
		return errors.Errorf("trim_min must be < trim_max (got %g, %g)", c.TrimMin, c.TrimMax)
	}
	if c.Tolerance < 0 {
		return errors.Errorf("tolerance must be >= 0 (got %g)", c.Tolerance)
	}
	if tuning.R2Base+c.TrimMin <= 0 {
		return errors.Errorf("trim_min %g makes R2 non-positive", c.TrimMin)
	}
	if c.Preview.SampleRate <= 0 {
		return errors.Errorf("preview.sample_rate must be > 0 (got %d)", c.Preview.SampleRate)
	}
	if c.Preview.Seconds <= 0 {
		return errors.Errorf("preview.seconds must be > 0 (got %g)", c.Preview.Seconds)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Searcher は探索パラメータを tuning.Searcher に変換する。
func (c Config) Searcher() tuning.Searcher {
	return tuning.Searcher{
		Tolerance: c.Tolerance,
		Step:      c.Step,
		Trim:      tuning.Range{Min: c.TrimMin, Max: c.TrimMax},
	}
}

// TOML は設定を .tune555.toml と同じ形式で書き出す。
func (c Config) TOML() (string, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "encode config")
	}
	return string(b), nil
}
