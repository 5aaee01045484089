// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"go.uber.org/zap"
)

var (
	_ Logger  = NoLog{}
	_ Factory = NoFactory{}
)

type NoLog struct{}

func (NoLog) Write(b []byte) (int, error) {
	return len(b), nil
}

func (NoLog) Fatal(string, ...zap.Field) {}

func (NoLog) Error(string, ...zap.Field) {}

func (NoLog) Warn(string, ...zap.Field) {}

func (NoLog) Info(string, ...zap.Field) {}

func (NoLog) Trace(string, ...zap.Field) {}

func (NoLog) Debug(string, ...zap.Field) {}

func (NoLog) Verbo(string, ...zap.Field) {}

func (l NoLog) With(...zap.Field) Logger { return l }

func (NoLog) SetLevel(Level) {}

func (NoLog) StopOnPanic() {}

func (NoLog) RecoverAndPanic(f func()) {
	f()
}

func (NoLog) RecoverAndExit(f, exit func()) {
	defer exit()
	f()
}

func (NoLog) Stop() {}

// NoFactory hands out NoLog loggers.
type NoFactory struct{}

func (NoFactory) Make(string) (Logger, error) {
	return NoLog{}, nil
}

func (NoFactory) SetLogLevel(string, Level) error { return nil }

func (NoFactory) SetDisplayLevel(string, Level) error { return nil }

func (NoFactory) GetLogLevel(string) (Level, error) { return Off, nil }

func (NoFactory) GetDisplayLevel(string) (Level, error) { return Off, nil }

func (NoFactory) GetLoggerNames() []string { return nil }

func (NoFactory) Close() {}
