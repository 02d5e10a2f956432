// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var (
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Logger()
	developer bool
)

// SetOutput replaces the log destination. console selects the human readable
// writer instead of JSON lines.
func SetOutput(w io.Writer, console bool) {
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// SetDeveloper enables DPrintf output.
func SetDeveloper(b bool) {
	developer = b
	if b {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
}

func Developer() bool {
	return developer
}

func Printf(format string, v ...interface{}) {
	logger.Info().Msg(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

// DPrintf only prints in developer mode.
func DPrintf(format string, v ...interface{}) {
	if !developer {
		return
	}
	logger.Debug().Msg(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

func Warnf(format string, v ...interface{}) {
	logger.Warn().Msg(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

func Info() *zerolog.Event {
	return logger.Info()
}

func Debug() *zerolog.Event {
	return logger.Debug()
}

func Error() *zerolog.Event {
	return logger.Error()
}
