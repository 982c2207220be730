package cache

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	key := "test-set-get"
	c.Set(key, "val", 0, nil)
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("nonexistent-key-xyz")
	if ok {
		t.Error("Get missing key: want false")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	key := "test-delete"
	c.Set(key, "x", 0, nil)
	c.Delete(key)
	if _, ok := c.Get(key); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewCache()
	c.Set("ttl-key", "v", 1, nil)
	if _, ok := c.Get("ttl-key"); !ok {
		t.Fatal("entry should be readable before expiry")
	}
	time.Sleep(1100 * time.Millisecond)
	if _, ok := c.Get("ttl-key"); ok {
		t.Error("entry should expire after TTL")
	}
}

func TestDeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("stock:1:1", 5, 0, []string{"stock"})
	c.Set("stock:2:1", 7, 0, []string{"stock"})
	c.Set("other", 1, 0, []string{"misc"})

	c.DeleteByTag("stock")

	if _, ok := c.Get("stock:1:1"); ok {
		t.Error("tagged entry stock:1:1 should be gone")
	}
	if _, ok := c.Get("stock:2:1"); ok {
		t.Error("tagged entry stock:2:1 should be gone")
	}
	if _, ok := c.Get("other"); !ok {
		t.Error("entry with other tag should survive")
	}
}

func TestGetKeysByTag(t *testing.T) {
	c := NewCache()
	c.Set("k1", 1, 0, []string{"t"})
	c.Set("k2", 2, 0, []string{"t"})
	keys := c.GetKeysByTag("t")
	if len(keys) != 2 {
		t.Errorf("keys by tag = %d, want 2", len(keys))
	}
}
