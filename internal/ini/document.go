package ini

import "strings"

// Document is a two-level ordered mapping: section name to key/value
// pairs. Section and key lookups are case-insensitive; the casing and
// order of first insertion are preserved for iteration. A Document is
// built in one pass by a Parser and not mutated afterwards.
type Document struct {
	sections map[string]*Section
	order    []string
}

// Section is an ordered, case-insensitive key/value mapping. A nil
// value records a key that was declared without '=' (when the parser
// allows bare keys).
type Section struct {
	name    string
	entries map[string]*entry
	order   []string
}

type entry struct {
	key   string
	value *string
}

func newDocument() *Document {
	return &Document{sections: make(map[string]*Section)}
}

// section returns the named section, creating it on first use.
func (d *Document) section(name string) *Section {
	key := strings.ToLower(name)
	if s, ok := d.sections[key]; ok {
		return s
	}
	s := &Section{name: name, entries: make(map[string]*entry)}
	d.sections[key] = s
	d.order = append(d.order, name)
	return s
}

// Sections returns the section names in insertion order, with their
// original casing.
func (d *Document) Sections() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Section looks up a section by name, case-insensitively.
func (d *Document) Section(name string) (*Section, bool) {
	s, ok := d.sections[strings.ToLower(name)]
	return s, ok
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.order)
}

// Name returns the section name with its original casing.
func (s *Section) Name() string {
	return s.name
}

// Keys returns the key names in insertion order, with their original
// casing.
func (s *Section) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Lookup returns the value stored under key, case-insensitively. The
// returned pointer is nil for keys declared without a value.
func (s *Section) Lookup(key string) (*string, bool) {
	e, ok := s.entries[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Get returns the value stored under key, with null values rendered as
// the empty string.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return "", ok
	}
	return *v, true
}

// set inserts or overwrites a key. It returns the previous value and
// whether the key already existed, so the parser can surface a
// diagnostic. The casing and position of the first insertion win.
func (s *Section) set(key string, value *string) (*string, bool) {
	lower := strings.ToLower(key)
	if e, ok := s.entries[lower]; ok {
		old := e.value
		e.value = value
		return old, true
	}
	s.entries[lower] = &entry{key: key, value: value}
	s.order = append(s.order, key)
	return nil, false
}
