package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcherFiresOnSourceWrite(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "postings.csv")
	if err := os.WriteFile(source, []byte("title,description\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int64
	w := New(source, func() { fired.Add(1) }, WithDebounce(50*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(source, []byte("title,description\na,b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 3*time.Second, func() bool { return fired.Load() >= 1 }) {
		t.Fatal("callback did not fire after source write")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "postings.csv")
	if err := os.WriteFile(source, []byte("title,description\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int64
	w := New(source, func() { fired.Add(1) }, WithDebounce(20*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if fired.Load() != 0 {
		t.Errorf("callback fired %d times for a sibling file", fired.Load())
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "postings.csv")
	if err := os.WriteFile(source, []byte("title,description\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int64
	w := New(source, func() { fired.Add(1) }, WithDebounce(150*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(source, []byte("title,description\nrow\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !waitFor(t, 3*time.Second, func() bool { return fired.Load() >= 1 }) {
		t.Fatal("callback did not fire")
	}
	time.Sleep(300 * time.Millisecond)
	if got := fired.Load(); got > 2 {
		t.Errorf("burst of writes fired %d callbacks, want coalesced", got)
	}
}

func TestWatcherStartMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent", "postings.csv"), func() {})
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Error("expected error for missing parent directory")
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "postings.csv")
	w := New(source, func() {})
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcherContextCancelStops(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "postings.csv")
	w := New(source, func() {})
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	if !waitFor(t, 2*time.Second, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return !w.started
	}) {
		t.Error("watcher did not stop on context cancel")
	}
}
