package logging

import (
	"bytes"
	"errors"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx/fxevent"
)

func TestFxLogger_LogEvent(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(prev)

	tests := []struct {
		name     string
		event    fxevent.Event
		contains []string
	}{
		{
			name:     "start_failed",
			event:    &fxevent.OnStartExecuted{FunctionName: "server.NewHTTPServer", Err: errors.New("bind")},
			contains: []string{`"level":"error"`, "OnStart hook failed", "bind"},
		},
		{
			name:     "start_ok",
			event:    &fxevent.OnStartExecuted{FunctionName: "server.NewHTTPServer", Runtime: time.Millisecond},
			contains: []string{`"level":"debug"`, "OnStart hook executed"},
		},
		{
			name:     "provided",
			event:    &fxevent.Provided{ConstructorName: "cache.NewManager", OutputTypeNames: []string{"*cache.Manager"}},
			contains: []string{"Provided", "*cache.Manager"},
		},
		{
			name:     "stopping",
			event:    &fxevent.Stopping{Signal: syscall.SIGTERM},
			contains: []string{`"level":"info"`, "Received signal", "TERMINATED"},
		},
		{
			name:     "started",
			event:    &fxevent.Started{},
			contains: []string{"Application started"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := &FxLogger{Logger: zerolog.New(buf).Level(zerolog.DebugLevel)}
			l.LogEvent(tt.event)

			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestFxLogger_SilentOnSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	l := &FxLogger{Logger: zerolog.New(buf)}

	l.LogEvent(&fxevent.Invoked{FunctionName: "main.run"})
	l.LogEvent(&fxevent.Stopped{})

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
