package uigf

import (
	"encoding/json"
	"fmt"
)

// catalog is a fixed two-way table between enum variants and their wire codes.
// Order is the enumeration order used when iterating all variants.
type catalog[T comparable] struct {
	name   string
	order  []T
	codes  map[T]string
	byCode map[string]T
}

type entry[T comparable] struct {
	variant T
	code    string
}

func newCatalog[T comparable](name string, entries ...entry[T]) *catalog[T] {
	c := &catalog[T]{
		name:   name,
		order:  make([]T, 0, len(entries)),
		codes:  make(map[T]string, len(entries)),
		byCode: make(map[string]T, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byCode[e.code]; dup {
			panic(fmt.Sprintf("uigf: duplicate %s code %q", name, e.code))
		}
		c.order = append(c.order, e.variant)
		c.codes[e.variant] = e.code
		c.byCode[e.code] = e.variant
	}
	return c
}

func (c *catalog[T]) code(v T) string {
	return c.codes[v]
}

func (c *catalog[T]) parse(code string) (T, bool) {
	v, ok := c.byCode[code]
	return v, ok
}

func (c *catalog[T]) all() []T {
	out := make([]T, len(c.order))
	copy(out, c.order)
	return out
}

func (c *catalog[T]) marshal(v T) ([]byte, error) {
	code, ok := c.codes[v]
	if !ok {
		return nil, fmt.Errorf("uigf: unknown %s variant %v", c.name, v)
	}
	return json.Marshal(code)
}

func (c *catalog[T]) unmarshal(data []byte) (T, error) {
	var zero T
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return zero, fmt.Errorf("uigf: %s must be a string: %w", c.name, err)
	}
	v, ok := c.byCode[code]
	if !ok {
		return zero, fmt.Errorf("uigf: invalid %s %q", c.name, code)
	}
	return v, nil
}
