package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("/point/5")
	k2 := Key("/point/5")
	k3 := Key("/point/6")

	if k1 != k2 {
		t.Errorf("key derivation should be deterministic")
	}
	if k1 == k3 {
		t.Errorf("different urls should derive different keys")
	}
	if !strings.HasPrefix(k1, "claimtree:v1:") {
		t.Errorf("expected versioned prefix, got %q", k1)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)

	if _, ok := m.Get("missing"); ok {
		t.Errorf("expected miss for unknown key")
	}

	m.Set("k", []byte("v"), time.Minute)
	if v, ok := m.Get("k"); !ok || string(v) != "v" {
		t.Errorf("expected hit with value v, got %q ok=%v", v, ok)
	}

	m.Delete("k")
	if _, ok := m.Get("k"); ok {
		t.Errorf("expected miss after delete")
	}

	m.Set("a", []byte("1"), time.Minute)
	m.Set("b", []byte("2"), time.Minute)
	m.Clear()
	if _, ok := m.Get("a"); ok {
		t.Errorf("expected miss after clear")
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)
	m.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	if _, ok := m.Get("k"); ok {
		t.Errorf("expected expired entry to miss")
	}
}

func TestDisk(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Minute)

	if _, ok := d.Get("missing"); ok {
		t.Errorf("expected miss for unknown key")
	}

	if err := d.Set(Key("/point/5"), []byte(`{"id":"p5"}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if v, ok := d.Get(Key("/point/5")); !ok || string(v) != `{"id":"p5"}` {
		t.Errorf("expected hit, got %q ok=%v", v, ok)
	}

	d.Delete(Key("/point/5"))
	if _, ok := d.Get(Key("/point/5")); ok {
		t.Errorf("expected miss after delete")
	}
}

func TestDisk_Expiry(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Minute)
	d.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	if _, ok := d.Get("k"); ok {
		t.Errorf("expected expired entry to miss")
	}
}

func TestDisk_DefaultTTL(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Minute)
	d.Set("k", []byte("v"), 0)

	if _, ok := d.Get("k"); !ok {
		t.Errorf("zero ttl should fall back to the configured default")
	}
}

func TestLayered_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer directly, then read through a fresh layered cache
	seed := NewDisk(dir, time.Minute)
	seed.Set("k", []byte("v"), time.Minute)

	l := NewLayered(time.Minute, dir, time.Minute)
	if v, ok := l.Get("k"); !ok || string(v) != "v" {
		t.Fatalf("expected disk hit through layered cache, got %q ok=%v", v, ok)
	}

	// Entry should now also live in the memory layer
	if v, ok := l.memory.Get("k"); !ok || string(v) != "v" {
		t.Errorf("expected disk hit promoted to memory, got %q ok=%v", v, ok)
	}
}

func TestLayered_SetAndDelete(t *testing.T) {
	l := NewLayered(time.Minute, t.TempDir(), time.Minute)

	l.Set("k", []byte("v"), time.Minute)
	if v, ok := l.Get("k"); !ok || string(v) != "v" {
		t.Errorf("expected hit, got %q ok=%v", v, ok)
	}

	l.Delete("k")
	if _, ok := l.Get("k"); ok {
		t.Errorf("expected miss after delete")
	}
}
