package zaplog_test

import (
	"errors"
	"github.com/brickingsoft/elastic"
	"github.com/brickingsoft/elastic/pkg/zaplog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

func TestObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := zaplog.New(zap.New(core))

	o.Reallocated(0, 16)
	o.Reallocated(64, 32)
	o.ReallocateFailed(16, 32, errors.New("no memory"))
	o.Released(32)

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if got := entries[0].ContextMap()["direction"]; got != "grow" {
		t.Errorf("direction = %v, want grow", got)
	}
	if got := entries[1].ContextMap()["direction"]; got != "shrink" {
		t.Errorf("direction = %v, want shrink", got)
	}
	if entries[2].Level != zapcore.WarnLevel {
		t.Errorf("failure level = %v, want warn", entries[2].Level)
	}
	if entries[3].LoggerName != "elastic" {
		t.Errorf("logger name = %q", entries[3].LoggerName)
	}
}

func TestObserver_Buffer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	buf, err := elastic.New(0, 4, elastic.WithObserver(zaplog.New(zap.New(core))))
	if err != nil {
		t.Fatal(err)
	}
	if err = buf.Append([]byte("abcdefgh"), 2, 4); err != nil {
		t.Fatal(err)
	}
	buf.Free()

	if n := logs.FilterMessage("reallocated").Len(); n != 1 {
		t.Errorf("reallocated entries = %d, want 1", n)
	}
	if n := logs.FilterMessage("released").Len(); n != 1 {
		t.Errorf("released entries = %d, want 1", n)
	}
}

func TestNew_NilLogger(t *testing.T) {
	o := zaplog.New(nil)
	o.Reallocated(0, 1)
	o.Released(1)
}
