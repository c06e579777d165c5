package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Errorf("Clear error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	want := []byte(`{"count":2}`)
	if err := c.Set(ctx, "run", want, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "run")
	if err != nil || !hit {
		t.Fatalf("Get(run) = hit %v, err %v", hit, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get(run) = %s, want %s", got, want)
	}

	if err := c.Delete(ctx, "run"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "run"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "run"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned as hit")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl missing")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	path := c.(*FileCache).path("k")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s survived Clear", k)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Config{Backend: BackendNone})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(none) = %T, want NullCache", c)
	}

	dir := filepath.Join(t.TempDir(), "nested")
	c, err = Open(ctx, Config{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*FileCache); !ok || fc.Dir() != dir {
		t.Errorf("Open(default) = %T, want *FileCache in %s", c, dir)
	}

	_, err = Open(ctx, Config{Backend: "memcached"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(memcached) error = %v, want ErrUnknownBackend", err)
	}
}

func TestRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache error = %v, want ErrNetwork", err)
	}
}

func TestMongoBadURI(t *testing.T) {
	_, err := NewMongoCache(context.Background(), MongoConfig{URI: "not-a-mongo-uri"})
	if err == nil {
		t.Fatal("NewMongoCache accepted an invalid URI")
	}
	if !strings.Contains(err.Error(), "connect mongo") {
		t.Errorf("error = %v, want connect failure", err)
	}
}

func TestClassifyRedis(t *testing.T) {
	if classifyRedis(nil) != nil {
		t.Error("nil should stay nil")
	}
	if IsRetryable(classifyRedis(context.Canceled)) {
		t.Error("context errors must not be retried")
	}
	err := classifyRedis(errors.New("connection reset"))
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("classifyRedis(reset) = %v, want retryable network error", err)
	}
}

func TestRunKeyOptsMaterial(t *testing.T) {
	tests := []struct {
		opts RunKeyOpts
		want string
	}{
		{RunKeyOpts{Degrees: []int{3, 3, 2, 2, 1, 1}, Partitioner: "signature"}, "d=3,3,2,2,1,1;p=signature;c=1;m=0"},
		{RunKeyOpts{Degrees: []int{1, 1, 1, 1}, Partitioner: "morgan", Disconnected: true, MaxResults: 5}, "d=1,1,1,1;p=morgan;c=0;m=5"},
		{RunKeyOpts{}, "d=;p=;c=1;m=0"},
	}
	for _, tt := range tests {
		if got := tt.opts.material(); got != tt.want {
			t.Errorf("material(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestDigest(t *testing.T) {
	key := digest("graph:dot:v1", "0:1")
	if !strings.HasPrefix(key, "graph:dot:v1:") || len(key) != len("graph:dot:v1:")+64 {
		t.Errorf("digest = %q, want prefix and 64 hex digits", key)
	}
	if key == digest("graph:dot:v1", "0:2") {
		t.Error("different graphs share a key")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := RunKeyOpts{Degrees: []int{3, 3, 2, 2, 1, 1}, Partitioner: "signature"}

	if k.RunKey(base) != k.RunKey(base) {
		t.Error("RunKey should be deterministic")
	}
	if !strings.HasPrefix(k.RunKey(base), "run:v1:") {
		t.Errorf("RunKey prefix unexpected: %s", k.RunKey(base))
	}

	variants := []RunKeyOpts{
		{Degrees: []int{3, 3, 2, 2, 2}, Partitioner: "signature"},
		{Degrees: base.Degrees, Partitioner: "morgan"},
		{Degrees: base.Degrees, Partitioner: "signature", Disconnected: true},
		{Degrees: base.Degrees, Partitioner: "signature", MaxResults: 10},
	}
	for _, v := range variants {
		if k.RunKey(v) == k.RunKey(base) {
			t.Errorf("RunKey(%+v) collides with base", v)
		}
	}

	if k.GraphKey("svg", "0:1") == k.GraphKey("dot", "0:1") {
		t.Error("Different kinds should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "staging:")

	if key := scoped.RunKey(RunKeyOpts{}); !strings.HasPrefix(key, "staging:run:") {
		t.Errorf("ScopedKeyer RunKey should be prefixed: %s", key)
	}
	if key := scoped.GraphKey("svg", "0:1"); !strings.HasPrefix(key, "staging:graph:svg:") {
		t.Errorf("ScopedKeyer GraphKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().GraphKey("dot", "0:1")
	if key := scoped.GraphKey("dot", "0:1"); key != want {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("Retryable(ErrNetwork) = %v, want a retryable ErrNetwork", err)
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrNetwork.Error())
	}
	if IsRetryable(ErrUnknownBackend) {
		t.Error("plain errors are not retryable")
	}
}

func TestBackoffRetry(t *testing.T) {
	fast := Backoff{Attempts: 3, Initial: time.Millisecond, Max: 2 * time.Millisecond}
	tests := []struct {
		name      string
		fails     int   // calls that fail before success
		err       error // error returned by failing calls
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, ErrUnknownBackend, 1, ErrUnknownBackend},
		{"transient", 1, Retryable(ErrNetwork), 2, nil},
		{"exhausted", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Retry(context.Background(), func() error {
				calls++
				if calls <= tt.fails {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (tt.wantErr == nil) != (err == nil) || (tt.wantErr != nil && !errors.Is(err, tt.wantErr)) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
