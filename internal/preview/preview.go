// Package preview は採用結果の 555 出力波形を WAV に書き出す。
package preview

import (
	"io"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/ichijohodaka/tune555/internal/tuning"
	"github.com/pkg/errors"
)

// pulse は周波数 freq、High の割合 duty の矩形波（555 の出力）を無限に生成する。
type pulse struct {
	freq  float64
	duty  float64
	amp   float64
	phase float64
	rate  beep.SampleRate
}

// NewPulse は矩形波の Streamer を作る。長さは beep.Take で区切る。
func NewPulse(freq, duty, amp float64, rate beep.SampleRate) beep.Streamer {
	return &pulse{freq: freq, duty: duty, amp: amp, rate: rate}
}

func (p *pulse) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		val := -p.amp
		if p.phase < p.duty {
			val = p.amp
		}
		samples[i][0] = val
		samples[i][1] = val

		p.phase += p.freq / float64(p.rate)
		for p.phase >= 1 {
			p.phase--
		}
	}
	return len(samples), true
}

func (p *pulse) Err() error { return nil }

// Options は書き出しの設定。
type Options struct {
	Duration   time.Duration
	SampleRate int
	Amplitude  float64
}

// Streamer は m のトリム設定で鳴る波形を Duration 分だけ返す。
func Streamer(m tuning.Match, opt Options) beep.Streamer {
	rate := beep.SampleRate(opt.SampleRate)
	s := NewPulse(m.Trim.Freq, tuning.DutyCycle(m.Trim.Ohms), opt.Amplitude, rate)
	return beep.Take(rate.N(opt.Duration), s)
}

// Encode は m の波形を 16bit モノラル WAV で w に書く。
func Encode(w io.WriteSeeker, m tuning.Match, opt Options) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(opt.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	return errors.Wrap(wav.Encode(w, Streamer(m, opt), format), "encode wav")
}

// Save は Encode の結果を filename に保存する。
func Save(filename string, m tuning.Match, opt Options) error {
	fp, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer fp.Close()
	if err := Encode(fp, m, opt); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return errors.Wrapf(fp.Close(), "close %s", filename)
}
