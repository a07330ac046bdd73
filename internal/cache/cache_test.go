package cache

import (
	"testing"
	"time"

	"github.com/suryansh-23/subspot/internal/subtitle"
)

func entry(path string) Entry {
	return Entry{
		Path:    path,
		ModTime: time.Unix(50, 0),
		Size:    10,
		Records: []subtitle.Record{subtitle.NewRecord(1, "00:00:01.000", "00:00:02.000", path)},
	}
}

func TestCachePutGet(t *testing.T) {
	c := New(2, 5*time.Second)
	c.now = func() time.Time { return time.Unix(100, 0) }

	c.Put(entry("a.srt"))
	got, ok := c.Get("a.srt")
	if !ok {
		t.Fatalf("expected entry")
	}
	if got.Records[0].Lines()[0] != "a.srt" {
		t.Fatalf("records = %v", got.Records)
	}
	if !got.Fresh(time.Unix(50, 0), 10) || got.Fresh(time.Unix(51, 0), 10) {
		t.Fatalf("freshness check wrong")
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 0 {
		t.Fatalf("stats = %d/%d", hits, misses)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(2, 1*time.Second)
	base := time.Unix(100, 0)
	c.now = func() time.Time { return base }

	c.Put(entry("a.srt"))

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	if _, ok := c.Get("a.srt"); ok {
		t.Fatalf("expected expired entry")
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d", c.Len())
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := New(1, 5*time.Second)
	c.now = func() time.Time { return time.Unix(100, 0) }

	c.Put(entry("a.srt"))
	c.Put(entry("b.srt"))

	if _, ok := c.Get("a.srt"); ok {
		t.Fatalf("expected a.srt to be evicted")
	}
	if _, ok := c.Get("b.srt"); !ok {
		t.Fatalf("expected b.srt to remain")
	}
}

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	c := New(4, 0)
	c.Put(entry("a.srt"))
	if _, ok := c.Get("a.srt"); ok {
		t.Fatalf("expected caching to be disabled")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New(4, time.Minute)
	c.Put(entry("a.srt"))
	c.Invalidate("a.srt")
	if _, ok := c.Get("a.srt"); ok {
		t.Fatalf("expected entry to be dropped")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	c.Put(entry("a.srt"))
	if _, ok := c.Get("a.srt"); ok {
		t.Fatalf("nil cache returned entry")
	}
}
