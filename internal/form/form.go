// Package form keeps the editable state behind an entity edit screen.
package form

import (
	"fmt"
	"sort"
	"strconv"
)

// Control is one named field. A nil value means the field is empty.
type Control struct {
	name  string
	value any
	dirty bool
}

func (c *Control) Name() string {
	return c.name
}

func (c *Control) Value() any {
	return c.value
}

func (c *Control) Dirty() bool {
	return c.dirty
}

// SetValue stores v as typed by the user and marks the control dirty.
func (c *Control) SetValue(v any) {
	c.value = v
	c.dirty = true
}

// Int64 reads the value as an optional integer.
func (c *Control) Int64() (*int64, error) {
	switch v := c.value.(type) {
	case nil:
		return nil, nil
	case *int64:
		return v, nil
	case int64:
		return &v, nil
	case int:
		n := int64(v)
		return &n, nil
	case string:
		if v == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", c.name, err)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("field %s: unsupported value %T", c.name, v)
	}
}

// String reads the value as an optional string.
func (c *Control) String() *string {
	switch v := c.value.(type) {
	case nil:
		return nil
	case *string:
		return v
	case string:
		return &v
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

// Group is a fixed set of controls.
type Group struct {
	controls map[string]*Control
}

func NewGroup(names ...string) *Group {
	g := &Group{controls: make(map[string]*Control, len(names))}
	for _, name := range names {
		g.controls[name] = &Control{name: name}
	}
	return g
}

// Get returns the named control, or nil when the group has none.
func (g *Group) Get(name string) *Control {
	return g.controls[name]
}

// PatchValue overwrites the controls named in values and ignores unknown keys.
// Patched controls are not marked dirty. Typed nil pointers are stored as nil.
func (g *Group) PatchValue(values map[string]any) {
	for name, v := range values {
		c, ok := g.controls[name]
		if !ok {
			continue
		}
		c.value = normalize(v)
		c.dirty = false
	}
}

// Value returns a snapshot of every control's value.
func (g *Group) Value() map[string]any {
	out := make(map[string]any, len(g.controls))
	for name, c := range g.controls {
		out[name] = c.value
	}
	return out
}

func (g *Group) Dirty() bool {
	for _, c := range g.controls {
		if c.dirty {
			return true
		}
	}
	return false
}

func (g *Group) Names() []string {
	names := make([]string, 0, len(g.controls))
	for name := range g.controls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(v any) any {
	switch p := v.(type) {
	case *int64:
		if p == nil {
			return nil
		}
		return *p
	case *string:
		if p == nil {
			return nil
		}
		return *p
	default:
		return v
	}
}
