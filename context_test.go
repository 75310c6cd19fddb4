package stepz

import (
	"strings"
	"testing"
)

func TestNewContext(t *testing.T) {
	t.Run("Nil Initial", func(t *testing.T) {
		c := NewContext(nil)
		if c.Len() != 0 {
			t.Errorf("expected empty context, got %d keys", c.Len())
		}
	})

	t.Run("Seeded Initial", func(t *testing.T) {
		c := NewContext(map[string]any{"a": 1, "b": "two"})
		if c.Len() != 2 {
			t.Errorf("expected 2 keys, got %d", c.Len())
		}
		if got := c.Get("a", nil); got != 1 {
			t.Errorf("expected 1, got %v", got)
		}
	})

	t.Run("Initial Is Copied", func(t *testing.T) {
		initial := map[string]any{"a": 1}
		c := NewContext(initial)

		initial["a"] = 99
		initial["b"] = 2

		if got := c.Get("a", nil); got != 1 {
			t.Errorf("mutating the initial map leaked into the context: got %v", got)
		}
		if c.Len() != 1 {
			t.Errorf("expected 1 key, got %d", c.Len())
		}
	})
}

func TestContextGet(t *testing.T) {
	t.Run("Present Key", func(t *testing.T) {
		c := NewContext(map[string]any{"text": "abc"})
		if got := c.Get("text", "fallback"); got != "abc" {
			t.Errorf("expected abc, got %v", got)
		}
	})

	t.Run("Absent Key Returns Default", func(t *testing.T) {
		c := NewContext(nil)
		if got := c.Get("missing", "fallback"); got != "fallback" {
			t.Errorf("expected fallback, got %v", got)
		}
		if got := c.Get("missing", nil); got != nil {
			t.Errorf("expected nil default, got %v", got)
		}
	})
}

func TestContextSet(t *testing.T) {
	t.Run("Insert", func(t *testing.T) {
		c := NewContext(nil)
		c.Set("k", 42)
		if got := c.Get("k", nil); got != 42 {
			t.Errorf("expected 42, got %v", got)
		}
	})

	t.Run("Last Write Wins", func(t *testing.T) {
		c := NewContext(map[string]any{"k": "first"})
		c.Set("k", "second")
		c.Set("k", "third")
		if got := c.Get("k", nil); got != "third" {
			t.Errorf("expected third, got %v", got)
		}
		if c.Len() != 1 {
			t.Errorf("overwrite should not add keys, got %d", c.Len())
		}
	})
}

func TestContextItems(t *testing.T) {
	c := NewContext(map[string]any{"a": 1, "b": 2, "c": 3})

	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	seen := make(map[string]any, len(items))
	for _, item := range items {
		seen[item.Key] = item.Value
	}
	for _, key := range []string{"a", "b", "c"} {
		if seen[key] != c.Get(key, nil) {
			t.Errorf("item %q = %v, want %v", key, seen[key], c.Get(key, nil))
		}
	}
}

func TestContextToMap(t *testing.T) {
	t.Run("Full Copy", func(t *testing.T) {
		c := NewContext(map[string]any{"a": 1, "b": "two"})
		m := c.ToMap()
		if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
			t.Errorf("unexpected map contents: %v", m)
		}
	})

	t.Run("Mutating Copy Does Not Affect Context", func(t *testing.T) {
		c := NewContext(map[string]any{"a": 1})
		m := c.ToMap()

		m["a"] = 99
		delete(m, "a")
		m["b"] = 2

		if got := c.Get("a", nil); got != 1 {
			t.Errorf("copy mutation leaked into context: got %v", got)
		}
		if c.Len() != 1 {
			t.Errorf("expected 1 key, got %d", c.Len())
		}
	})
}

func TestContextString(t *testing.T) {
	c := NewContext(map[string]any{"k": 1})
	s := c.String()
	if !strings.HasPrefix(s, "Context(") {
		t.Errorf("unexpected rendering: %s", s)
	}
	if !strings.Contains(s, "k") {
		t.Errorf("rendering should mention stored keys: %s", s)
	}
}
