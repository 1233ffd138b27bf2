package dot

import "strings"

// Attr is a single attribute. Bare attributes carry no value and are written
// without "=value".
type Attr struct {
	Key   string
	Value string
	Bare  bool
}

// Attrs is an insertion-ordered attribute set. The zero value is empty and
// ready to use.
type Attrs struct {
	keys []string
	vals map[string]Attr
}

// Set stores value under key. A key that is already present keeps its
// original position.
func (a *Attrs) Set(key, value string) {
	a.put(Attr{Key: key, Value: value})
}

// SetFlag stores key as a bare attribute.
func (a *Attrs) SetFlag(key string) {
	a.put(Attr{Key: key, Bare: true})
}

func (a *Attrs) put(attr Attr) {
	if a.vals == nil {
		a.vals = make(map[string]Attr)
	}
	if _, ok := a.vals[attr.Key]; !ok {
		a.keys = append(a.keys, attr.Key)
	}
	a.vals[attr.Key] = attr
}

// Get returns the value stored under key. Bare attributes report an empty
// value and true.
func (a *Attrs) Get(key string) (string, bool) {
	attr, ok := a.vals[key]
	return attr.Value, ok
}

// IsFlag reports whether key is present as a bare attribute.
func (a *Attrs) IsFlag(key string) bool {
	return a.vals[key].Bare
}

// Delete removes key and reports whether it was present.
func (a *Attrs) Delete(key string) bool {
	if _, ok := a.vals[key]; !ok {
		return false
	}
	delete(a.vals, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of attributes.
func (a *Attrs) Len() int { return len(a.keys) }

// Keys returns the attribute keys in insertion order.
func (a *Attrs) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Pairs returns the attributes in insertion order.
func (a *Attrs) Pairs() []Attr {
	out := make([]Attr, 0, len(a.keys))
	for _, k := range a.keys {
		out = append(out, a.vals[k])
	}
	return out
}

// AddStyle appends token to the comma-separated style attribute.
func (a *Attrs) AddStyle(token string) {
	style, ok := a.Get("style")
	if !ok || style == "" {
		a.Set("style", token)
		return
	}
	a.Set("style", style+","+token)
}

// Merge upserts every attribute of other, in other's order.
func (a *Attrs) Merge(other *Attrs) {
	if other == nil {
		return
	}
	for _, attr := range other.Pairs() {
		a.put(attr)
	}
}

// Clone returns an independent copy.
func (a *Attrs) Clone() Attrs {
	var out Attrs
	out.Merge(a)
	return out
}

// String formats the set as a DOT attribute clause body: key=value pairs
// joined by ", ".
func (a *Attrs) String() string {
	var b strings.Builder
	for i, k := range a.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		attr := a.vals[k]
		b.WriteString(Quote(attr.Key))
		if !attr.Bare {
			b.WriteByte('=')
			b.WriteString(Quote(attr.Value))
		}
	}
	return b.String()
}
