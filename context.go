package stepz

import "fmt"

// Item is a single key-value pair snapshot from a Context.
type Item struct {
	Value any
	Key   string
}

// Context is the mutable data bag shared by every step during one pipeline
// run. It maps string keys to values of any type; keys are unique and the
// last write wins. A Context is created before a run, passed by reference
// through every step, and inspected (or discarded) after the run.
//
// Context is not safe for concurrent mutation. The design assumes exactly
// one logical goroutine drives a given Context through a given Pipeline at
// a time; a host wanting parallel fan-out must clone per branch via ToMap
// and merge results itself.
//
// Steps must not assume any other step has or has not run: reads go through
// Get with a caller-supplied default rather than trusting a key to exist.
type Context struct {
	data map[string]any
}

// NewContext creates a Context seeded from the initial mapping. The mapping
// is copied, so later mutations of the argument do not affect the Context.
// A nil initial mapping yields an empty Context.
func NewContext(initial map[string]any) *Context {
	data := make(map[string]any, len(initial))
	for k, v := range initial {
		data[k] = v
	}
	return &Context{data: data}
}

// Get returns the value stored for key, or def if the key is absent.
// Get never fails; absence is not an error.
func (c *Context) Get(key string, def any) any {
	if v, ok := c.data[key]; ok {
		return v
	}
	return def
}

// Set inserts or overwrites the value for key.
func (c *Context) Set(key string, value any) {
	c.data[key] = value
}

// Items returns a snapshot of all key-value pairs for iteration or export.
// No ordering is guaranteed between keys.
func (c *Context) Items() []Item {
	items := make([]Item, 0, len(c.data))
	for k, v := range c.data {
		items = append(items, Item{Key: k, Value: v})
	}
	return items
}

// ToMap returns a copy of the underlying mapping. Mutating the copy does
// not affect the Context. Values are copied by assignment, so reference
// values (slices, maps) are shared with the Context, matching the
// snapshot-and-write-back contract LegacyAdapter relies on.
func (c *Context) ToMap() map[string]any {
	data := make(map[string]any, len(c.data))
	for k, v := range c.data {
		data[k] = v
	}
	return data
}

// Len returns the number of keys currently stored.
func (c *Context) Len() int {
	return len(c.data)
}

// String renders the Context for debugging.
func (c *Context) String() string {
	return fmt.Sprintf("Context(%v)", c.data)
}
