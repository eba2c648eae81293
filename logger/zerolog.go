package logger

import (
	"fmt"

	"github.com/pipepulse/pipepulse/pulselib"
	"github.com/rs/zerolog"
)

type zeroLogContext struct {
	name string
	log  zerolog.Logger
}

func (z zeroLogContext) Named(name string) pulselib.Logger {
	newName := name
	if z.name != "" {
		newName = z.name + "." + name
	}

	return zeroLogContext{
		name: newName,
		log:  z.log,
	}
}

func (z zeroLogContext) BindInt(name string, value int) pulselib.Logger {
	return zeroLogContext{
		name: z.name,
		log:  z.log.With().Int(name, value).Logger(),
	}
}

func (z zeroLogContext) BindStr(name, value string) pulselib.Logger {
	return zeroLogContext{
		name: z.name,
		log:  z.log.With().Str(name, value).Logger(),
	}
}

func (z zeroLogContext) Printf(format string, args ...interface{}) {
	z.Debug(fmt.Sprintf(format, args...))
}

func (z zeroLogContext) Info(msg string) {
	z.emit(z.log.Info(), msg, nil)
}

func (z zeroLogContext) InfoError(msg string, err error) {
	z.emit(z.log.Info(), msg, err)
}

func (z zeroLogContext) Warning(msg string) {
	z.emit(z.log.Warn(), msg, nil)
}

func (z zeroLogContext) WarningError(msg string, err error) {
	z.emit(z.log.Warn(), msg, err)
}

func (z zeroLogContext) Debug(msg string) {
	z.emit(z.log.Debug(), msg, nil)
}

func (z zeroLogContext) DebugError(msg string, err error) {
	z.emit(z.log.Debug(), msg, err)
}

func (z zeroLogContext) emit(evt *zerolog.Event, msg string, err error) {
	// nil, если уровень отключён.
	if evt == nil {
		return
	}

	if z.name != "" {
		evt = evt.Str("logger", z.name)
	}

	if err != nil {
		evt = evt.Err(err)
	}

	evt.Msg(msg)
}

// NewZeroLogger returns a logger which uses rs/zerolog as a backend.
func NewZeroLogger(log zerolog.Logger) pulselib.Logger {
	return zeroLogContext{
		log: log,
	}
}
