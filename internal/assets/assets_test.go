package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"testing/fstest"
	"time"
)

func TestManagerLoad(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{
		"models/car.yaml":  {Data: []byte("base")},
		"models/tree.yaml": {Data: []byte("tree")},
	})
	m.AddFS(fstest.MapFS{
		"models/car.yaml": {Data: []byte("override")},
	})

	tests := []struct {
		path string
		want string
	}{
		{"models/car.yaml", "override"},
		{"models/tree.yaml", "tree"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			data, err := m.Load(tt.path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, data)
			}
		})
	}
}

func TestManagerNotFound(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{})

	for _, path := range []string{"missing.yaml", "../escape.yaml", "/abs.yaml"} {
		if _, err := m.Load(path); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q): expected ErrNotFound, got %v", path, err)
		}
	}
}

func TestManagerCache(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"a.txt": {Data: []byte("a")}})

	for i := 0; i < 3; i++ {
		if _, err := m.Load("a.txt"); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	hits, misses := m.Cache().Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("expected 2 hits and 1 miss, got %d/%d", hits, misses)
	}

	m.Close()
	if _, err := m.Load("a.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Close, got %v", err)
	}
}

func TestManagerAddDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "models", "car.yaml"), []byte("disk"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}
	data, err := m.Load("models/car.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "disk" {
		t.Errorf("expected disk, got %q", data)
	}

	if err := m.AddDir(filepath.Join(dir, "nope")); err == nil {
		t.Error("expected error for missing dir")
	}
	if err := m.AddDir(filepath.Join(dir, "models", "car.yaml")); err == nil {
		t.Error("expected error for file instead of dir")
	}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoadAsync(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"n.txt": {Data: []byte("42")}})

	p := LoadAsync(m, "n.txt", func(b []byte) (int, error) { return strconv.Atoi(string(b)) })
	res, err := p.Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("load failed: %v", res.Err)
	}
	if res.Value != 42 || res.Path != "n.txt" {
		t.Errorf("unexpected result %+v", res)
	}
	if !p.Done() {
		t.Error("expected Done after Wait")
	}
	if _, ok := p.Poll(); ok {
		t.Error("Poll delivered a second result")
	}
}

func TestLoadAsyncFailures(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"bad.txt": {Data: []byte("x")}})
	decode := func(b []byte) (int, error) { return strconv.Atoi(string(b)) }

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing", "missing.txt", ErrNotFound},
		{"decode", "bad.txt", strconv.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := LoadAsync(m, tt.path, decode).Wait(waitCtx(t))
			if err != nil {
				t.Fatalf("Wait: %v", err)
			}
			if !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, res.Err)
			}
		})
	}
}

func TestPollDeliversOnce(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"s.txt": {Data: []byte("hello")}})

	release := make(chan struct{})
	p := LoadAsync(m, "s.txt", func(b []byte) (string, error) {
		<-release
		return string(b), nil
	})

	if _, ok := p.Poll(); ok {
		t.Fatal("Poll returned a result before decode finished")
	}
	close(release)

	deadline := time.Now().Add(5 * time.Second)
	delivered := 0
	for time.Now().Before(deadline) && !p.Done() {
		if res, ok := p.Poll(); ok {
			delivered++
			if res.Value != "hello" {
				t.Errorf("expected hello, got %q", res.Value)
			}
		}
		time.Sleep(time.Millisecond)
	}
	for i := 0; i < 10; i++ {
		if _, ok := p.Poll(); ok {
			delivered++
		}
	}
	if delivered != 1 {
		t.Errorf("expected exactly one delivery, got %d", delivered)
	}
}

func TestWaitHonoursContext(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"s.txt": {Data: []byte("x")}})

	block := make(chan struct{})
	defer close(block)
	p := LoadAsync(m, "s.txt", func(b []byte) (string, error) {
		<-block
		return "", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSlot(t *testing.T) {
	var s Slot[string]
	if _, ok := s.Get(); ok || s.IsSet() {
		t.Fatal("new slot reports a value")
	}
	if !s.Set("first") {
		t.Fatal("first Set refused")
	}
	if s.Set("second") {
		t.Error("second Set accepted")
	}
	if v, ok := s.Get(); !ok || v != "first" {
		t.Errorf("Get = %q, %v; want first, true", v, ok)
	}
}
