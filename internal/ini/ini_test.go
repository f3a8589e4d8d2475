package ini

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/davine-io/mellow/internal/core"
)

func newTestParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	return NewParser(core.NewMockFileSystem(), opts, log.New(io.Discard))
}

func parseString(t *testing.T, opts Options, text string) (*Document, []Diagnostic) {
	t.Helper()
	doc, diags, err := newTestParser(t, opts).Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc, diags
}

func mustGet(t *testing.T, doc *Document, section, key string) string {
	t.Helper()
	s, ok := doc.Section(section)
	if !ok {
		t.Fatalf("section %q not found", section)
	}
	v, ok := s.Get(key)
	if !ok {
		t.Fatalf("key %q not found in section %q", key, section)
	}
	return v
}

func TestParser_SectionsAndKeys(t *testing.T) {
	text := `
[server]
host = example.com
port = 8080

[client]
timeout = 30
`
	doc, diags := parseString(t, DefaultOptions(), text)

	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	wantSections := []string{"server", "client"}
	got := doc.Sections()
	if len(got) != len(wantSections) {
		t.Fatalf("Sections() = %v, want %v", got, wantSections)
	}
	for i, name := range wantSections {
		if got[i] != name {
			t.Errorf("Sections()[%d] = %q, want %q", i, got[i], name)
		}
	}
	if v := mustGet(t, doc, "server", "host"); v != "example.com" {
		t.Errorf("server.host = %q, want %q", v, "example.com")
	}
	if v := mustGet(t, doc, "client", "timeout"); v != "30" {
		t.Errorf("client.timeout = %q, want %q", v, "30")
	}
}

func TestParser_NullSection(t *testing.T) {
	text := "orphan = 1\n[real]\nkey = 2\n"
	doc, _ := parseString(t, DefaultOptions(), text)

	if v := mustGet(t, doc, DefaultNullSectionName, "orphan"); v != "1" {
		t.Errorf("null section orphan = %q, want %q", v, "1")
	}
	sections := doc.Sections()
	if len(sections) != 2 || sections[0] != DefaultNullSectionName {
		t.Errorf("Sections() = %v, want null section first", sections)
	}
}

func TestParser_CaseInsensitiveLookup(t *testing.T) {
	text := "[Database]\nHost = db.local\n"
	doc, _ := parseString(t, DefaultOptions(), text)

	for _, section := range []string{"Database", "DATABASE", "database"} {
		for _, key := range []string{"Host", "HOST", "host"} {
			s, ok := doc.Section(section)
			if !ok {
				t.Fatalf("section lookup %q failed", section)
			}
			if v, _ := s.Get(key); v != "db.local" {
				t.Errorf("doc[%q][%q] = %q, want %q", section, key, v, "db.local")
			}
		}
	}

	// Original casing preserved for iteration.
	if doc.Sections()[0] != "Database" {
		t.Errorf("Sections()[0] = %q, want %q", doc.Sections()[0], "Database")
	}
	s, _ := doc.Section("database")
	if s.Name() != "Database" || s.Keys()[0] != "Host" {
		t.Errorf("original casing lost: name=%q keys=%v", s.Name(), s.Keys())
	}
}

func TestParser_DuplicateKeyOverwrites(t *testing.T) {
	text := "[s]\nkey = old\nkey = new\nKEY = newest\n"
	doc, diags := parseString(t, DefaultOptions(), text)

	if v := mustGet(t, doc, "s", "key"); v != "newest" {
		t.Errorf("value = %q, want last write %q", v, "newest")
	}
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(diags))
	}
	first := diags[0]
	if first.Section != "s" || first.Key != "key" || first.Old != "old" || first.New != "new" {
		t.Errorf("unexpected diagnostic: %+v", first)
	}
	if !strings.Contains(first.String(), "duplicate key") {
		t.Errorf("diagnostic text = %q", first.String())
	}
	// Key order keeps the first insertion only.
	s, _ := doc.Section("s")
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "key" {
		t.Errorf("Keys() = %v, want [key]", keys)
	}
}

func TestParser_CommentsRecorded(t *testing.T) {
	text := "; first\n[s]\n# one\nkey = v\n; two\n"
	doc, _ := parseString(t, DefaultOptions(), text)

	if v := mustGet(t, doc, DefaultNullSectionName, "Comment1"); v != " first" {
		t.Errorf("null Comment1 = %q, want %q", v, " first")
	}
	// Counter resets per section.
	if v := mustGet(t, doc, "s", "Comment1"); v != " one" {
		t.Errorf("s.Comment1 = %q, want %q", v, " one")
	}
	if v := mustGet(t, doc, "s", "Comment2"); v != " two" {
		t.Errorf("s.Comment2 = %q, want %q", v, " two")
	}
}

func TestParser_CommentsIgnored(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreComments = true
	text := "[s]\n; hidden\nkey = v\n"
	doc, _ := parseString(t, opts, text)

	s, _ := doc.Section("s")
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "key" {
		t.Errorf("Keys() = %v, want only [key]", keys)
	}
}

func TestParser_InlineComments(t *testing.T) {
	opts := DefaultOptions()
	opts.CommentsMustBeOwnLine = false
	text := "[s]\nkey = value ; trailing\nescaped = a\\;b\n"
	doc, _ := parseString(t, opts, text)

	if v := mustGet(t, doc, "s", "key"); v != "value" {
		t.Errorf("key = %q, want %q", v, "value")
	}
	if v := mustGet(t, doc, "s", "Comment1"); v != " trailing" {
		t.Errorf("Comment1 = %q, want %q", v, " trailing")
	}
	// Escaped markers do not start a comment.
	if v := mustGet(t, doc, "s", "escaped"); v != "a\\;b" {
		t.Errorf("escaped = %q, want %q", v, "a\\;b")
	}
}

func TestParser_InlineCommentsDisabledByDefault(t *testing.T) {
	text := "[s]\nkey = value ; kept\n"
	doc, _ := parseString(t, DefaultOptions(), text)

	if v := mustGet(t, doc, "s", "key"); v != "value ; kept" {
		t.Errorf("key = %q, want comment kept", v)
	}
}

func TestParser_QuotedValues(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"double quotes stripped", `key = "hello world"`, "hello world"},
		{"single quotes stripped", `key = 'hello'`, "hello"},
		{"mismatched quotes kept", `key = "hello'`, `"hello'`},
		{"inner quotes kept", `key = say "hi"`, `say "hi"`},
		{"empty quoted value", `key = ""`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := parseString(t, DefaultOptions(), "[s]\n"+tt.line+"\n")
			if v := mustGet(t, doc, "s", "key"); v != tt.want {
				t.Errorf("value = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestParser_BareKeys(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowKeyWithoutValue = true
	doc, _ := parseString(t, opts, "[s]\nstandalone\n")

	s, _ := doc.Section("s")
	v, ok := s.Lookup("standalone")
	if !ok {
		t.Fatal("bare key not stored")
	}
	if v != nil {
		t.Errorf("bare key value = %q, want null", *v)
	}
}

func TestParser_BareKeysSkippedByDefault(t *testing.T) {
	doc, _ := parseString(t, DefaultOptions(), "[s]\nstandalone\n")
	s, _ := doc.Section("s")
	if _, ok := s.Lookup("standalone"); ok {
		t.Error("bare key stored despite AllowKeyWithoutValue=false")
	}
}

func TestParser_BlankAndUnmatchedLinesSkipped(t *testing.T) {
	doc, diags := parseString(t, DefaultOptions(), "\n   \nnot a pair\n[s]\nkey = v\n")
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if doc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", doc.Len())
	}
}

func TestParser_Idempotent(t *testing.T) {
	text := "[b]\nz = 1\na = 2\n[A]\nk = v\n"
	opts := DefaultOptions()

	first, _ := parseString(t, opts, text)
	second, _ := parseString(t, opts, text)

	fs, ss := first.Sections(), second.Sections()
	if len(fs) != len(ss) {
		t.Fatalf("section counts differ: %d vs %d", len(fs), len(ss))
	}
	for i := range fs {
		if fs[i] != ss[i] {
			t.Errorf("section order differs at %d: %q vs %q", i, fs[i], ss[i])
		}
		s1, _ := first.Section(fs[i])
		s2, _ := second.Section(ss[i])
		k1, k2 := s1.Keys(), s2.Keys()
		if len(k1) != len(k2) {
			t.Fatalf("key counts differ in %q", fs[i])
		}
		for j := range k1 {
			if k1[j] != k2[j] {
				t.Errorf("key order differs in %q at %d", fs[i], j)
			}
			v1, _ := s1.Get(k1[j])
			v2, _ := s2.Get(k2[j])
			if v1 != v2 {
				t.Errorf("value differs for %s.%s", fs[i], k1[j])
			}
		}
	}
}

func TestParser_ParseFile(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/etc/app.ini", []byte("[s]\nkey = v\n"))
	p := NewParser(fs, DefaultOptions(), log.New(io.Discard))

	doc, diags, err := p.ParseFile(context.Background(), "/etc/app.ini")
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if v := mustGet(t, doc, "s", "key"); v != "v" {
		t.Errorf("key = %q, want %q", v, "v")
	}
}

func TestParser_ParseFileNotFound(t *testing.T) {
	p := NewParser(core.NewMockFileSystem(), DefaultOptions(), log.New(io.Discard))
	if _, _, err := p.ParseFile(context.Background(), "/missing.ini"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_VeryLongValueLine(t *testing.T) {
	value := strings.Repeat("x", 70*1024)
	doc, diags := parseString(t, DefaultOptions(), "key = "+value+"\n")

	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if v := mustGet(t, doc, DefaultNullSectionName, "key"); v != value {
		t.Errorf("value truncated: got %d bytes, want %d", len(v), len(value))
	}
}

func TestParser_ParseFileReadError(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetReadError("/etc/app.ini", errors.New("input/output error"))
	p := NewParser(fs, DefaultOptions(), log.New(io.Discard))

	_, _, err := p.ParseFile(context.Background(), "/etc/app.ini")
	if err == nil {
		t.Fatal("expected read error")
	}
	if !strings.Contains(err.Error(), "input/output error") {
		t.Errorf("error = %v", err)
	}
}

func TestOptions_Normalized(t *testing.T) {
	opts := Options{}.normalized()
	if opts.CommentMarkers != DefaultCommentMarkers {
		t.Errorf("CommentMarkers = %q", opts.CommentMarkers)
	}
	if opts.NullSectionName != DefaultNullSectionName {
		t.Errorf("NullSectionName = %q", opts.NullSectionName)
	}
	if opts.CommentKeyPrefix != DefaultCommentKeyPrefix {
		t.Errorf("CommentKeyPrefix = %q", opts.CommentKeyPrefix)
	}
}
