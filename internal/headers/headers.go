// Package headers implements the ordered, duplicate-permitting header
// collection used by internal/request and internal/response.
package headers

// Header is a single name/value pair. Name comparison elsewhere in this
// package is case-sensitive — a documented quirk of this runtime, not an
// oversight; see SPEC_FULL.md §9.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered multi-map: insertion order is preserved and
// duplicate names are kept as distinct entries rather than merged.
type Headers struct {
	entries []Header
}

// New returns an empty Headers collection.
func New() Headers {
	return Headers{}
}

// Add appends a header, preserving any existing entry with the same name.
func (h *Headers) Add(name, value string) {
	h.entries = append(h.entries, Header{Name: name, Value: value})
}

// Set replaces every existing entry named name with a single entry
// carrying value, preserving the position of the first match (or
// appending at the end if name was not present).
func (h *Headers) Set(name, value string) {
	for i := range h.entries {
		if h.entries[i].Name == name {
			h.entries[i].Value = value
			h.entries = append(h.entries[:i+1], pruneName(h.entries[i+1:], name)...)
			return
		}
	}
	h.entries = append(h.entries, Header{Name: name, Value: value})
}

func pruneName(entries []Header, name string) []Header {
	out := entries[:0]
	for _, e := range entries {
		if e.Name == name {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Get returns the first value stored under name and whether it was found.
func (h Headers) Get(name string) (string, bool) {
	for _, e := range h.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under name, in insertion order.
func (h Headers) Values(name string) []string {
	var out []string
	for _, e := range h.entries {
		if e.Name == name {
			out = append(out, e.Value)
		}
	}
	return out
}

// All returns the ordered list of all headers. The returned slice must
// not be mutated by the caller.
func (h Headers) All() []Header {
	return h.entries
}

// Len reports the number of header entries (duplicates counted
// separately).
func (h Headers) Len() int {
	return len(h.entries)
}
