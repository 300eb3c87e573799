// logger_test.go
//
// SPDX-License-Identifier: MIT
package sinter

import "testing"

type recordingLogger struct {
	debugCalls int
}

func (l *recordingLogger) Debug(msg string, keyvals ...interface{}) { l.debugCalls++ }
func (l *recordingLogger) Info(msg string, keyvals ...interface{})  {}
func (l *recordingLogger) Warn(msg string, keyvals ...interface{})  {}
func (l *recordingLogger) Error(msg string, keyvals ...interface{}) {}

func TestNoOpLoggerDoesNothing(t *testing.T) {
	var l NoOpLogger
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestInternerLogsOnMissOnly(t *testing.T) {
	logger := &recordingLogger{}
	in := NewInterner(WithLogger(logger))

	in.Intern("once")
	in.Intern("once")
	in.Intern("twice")

	if logger.debugCalls != 2 {
		t.Fatalf("debugCalls = %d, want 2 (one per distinct string interned)", logger.debugCalls)
	}
}
