// Package logger はzerologのロガーを環境に応じて構築します。
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a console logger in dev and a JSON logger otherwise.
// The global zerolog logger is replaced as well.
func New(appEnv string) zerolog.Logger {
	return newWithWriter(appEnv, os.Stdout)
}

func newWithWriter(appEnv string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	var w io.Writer = out
	if appEnv == "dev" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = l
	return l
}
