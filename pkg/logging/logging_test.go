package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q): err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	log := New(rec)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.Warnf("worker %d", i)
		}(i)
	}
	wg.Wait()
	log.Errorf("done")

	if got := rec.Count(LevelWarn); got != 8 {
		t.Errorf("warn count: got %d, want 8", got)
	}
	entries := rec.Entries()
	if len(entries) != 9 {
		t.Fatalf("entries: got %d, want 9", len(entries))
	}
	if last := entries[8]; last.Level != LevelError || last.Message != "done" {
		t.Errorf("last entry: got %+v", last)
	}
}

func TestConsoleFiltersBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	log := New(NewConsole(&buf, LevelWarn))

	log.Debugf("hidden debug")
	log.Infof("hidden info")
	log.Warnf("shown warn")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected messages below warn to be dropped, got %q", out)
	}
	if !strings.Contains(out, "shown warn") {
		t.Errorf("expected warn message in output, got %q", out)
	}
}

func TestNilSinkDiscards(t *testing.T) {
	log := New(nil)
	log.Errorf("nobody listens")
}
