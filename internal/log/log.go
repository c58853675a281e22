package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

type LogLevel int

const (
	LogLevel_None LogLevel = iota
	LogLevel_Warn
	LogLevel_Info
	LogLevel_Debug
)

var Level = LogLevel_Info

// Output は出力先（既定は標準エラー）。
var Output io.Writer = os.Stderr

var (
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

// ParseLevel は "none" / "warn" / "info" / "debug" を LogLevel に変換する。
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "none", "silent":
		return LogLevel_None, nil
	case "warn", "quiet":
		return LogLevel_Warn, nil
	case "info", "":
		return LogLevel_Info, nil
	case "debug":
		return LogLevel_Debug, nil
	}
	return LogLevel_Info, errors.Errorf("unknown log level %q", s)
}

// Errorf は合わない音などの診断を出す。Level が None 以外なら常に出る。
func Errorf(f string, args ...interface{}) {
	if LogLevel_Warn <= Level {
		red.Fprintf(Output, "ERROR: "+f+"\n", args...)
	}
}

func Warnf(f string, args ...interface{}) {
	if LogLevel_Warn <= Level {
		yellow.Fprintf(Output, "[WARNING] "+f+"\n", args...)
	}
}

func Infof(f string, args ...interface{}) {
	if LogLevel_Info <= Level {
		fmt.Fprintf(Output, f+"\n", args...)
	}
}

func Debugf(f string, args ...interface{}) {
	if LogLevel_Debug <= Level {
		cyan.Fprintf(Output, f+"\n", args...)
	}
}
