package profiler

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithLogf(func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }),
		WithReporter(func() string { return "Stage: BoxOpening" }),
		WithReporter(func() string { return "" }),
		WithInterval(500*time.Millisecond),
	)

	for i := 0; i < 49; i++ {
		now = now.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("reported early at frame %d", i)
		}
	}
	now = now.Add(10 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("Tick() = false after a full interval")
	}

	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if !strings.HasPrefix(lines[0], "[Profiler] FPS: 100.00") {
		t.Errorf("line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "| Stage: BoxOpening") {
		t.Errorf("reporter fragment missing: %q", lines[0])
	}
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	if p.updateInterval != time.Second {
		t.Errorf("interval = %v, want 1s", p.updateInterval)
	}
	p = NewProfiler(WithInterval(250 * time.Millisecond))
	if p.updateInterval != 250*time.Millisecond {
		t.Errorf("interval = %v", p.updateInterval)
	}
}
