package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/anilpal6795/crime-linker/internal/logger"
	"github.com/anilpal6795/crime-linker/internal/logger/console"
)

func TestFacadeDispatchesToConsole(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(console.New(console.Params{Writer: &buf}))
	t.Cleanup(func() { logger.Init() })

	logger.Debug("hidden at info level")
	logger.Info("case created", "id", "c-1")
	logger.Warn("slow query", "ms", 1200)

	out := buf.String()
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug line leaked at info level: %s", out)
	}
	if !strings.Contains(out, "case created") || !strings.Contains(out, "id=c-1") {
		t.Fatalf("missing info line: %s", out)
	}
	if !strings.Contains(out, "slow query") || !strings.Contains(out, "ms=1200") {
		t.Fatalf("missing warn line: %s", out)
	}
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(console.New(console.Params{Writer: &buf, Debug: true}))
	t.Cleanup(func() { logger.Init() })

	logger.Debug("resolver call", "relation", "incident.people")
	if !strings.Contains(buf.String(), "relation=incident.people") {
		t.Fatalf("debug line missing: %s", buf.String())
	}
}

func TestUninitializedIsSilent(t *testing.T) {
	logger.Init()
	logger.Error("nobody listens")
}
