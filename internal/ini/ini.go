// Package ini converts ini-formatted text into an ordered,
// case-insensitive section/key/value document. It is deliberately
// lenient: duplicate keys overwrite with a diagnostic, comments can be
// preserved as synthetic keys, and unmatched lines are skipped, so
// files written by arbitrary legacy tools still produce a usable
// result.
package ini

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/davine-io/mellow/internal/core"
)

var (
	sectionRE = regexp.MustCompile(`^\s*\[(.+)\]\s*$`)
	kvRE      = regexp.MustCompile(`^\s*(.+?)\s*=\s*(.*?)\s*$`)
)

// maxLineBytes bounds a single input line. Legacy tools write value
// lines far past bufio's default 64KB token limit.
const maxLineBytes = 16 * 1024 * 1024

// Diagnostic records a non-fatal irregularity found while parsing,
// currently always a duplicate key whose previous value was
// overwritten. Old and New render null values as "<null>".
type Diagnostic struct {
	Section string
	Key     string
	Old     string
	New     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("duplicate key %q in section %q: %q overwritten by %q", d.Key, d.Section, d.Old, d.New)
}

// Parser converts ini text into Documents. The zero value is not
// usable; construct with NewParser.
type Parser struct {
	fs     core.FileSystem
	opts   Options
	logger *log.Logger
}

// NewParser creates a Parser. A nil filesystem defaults to the host
// filesystem and a nil logger to the package default.
func NewParser(fs core.FileSystem, opts Options, logger *log.Logger) *Parser {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{fs: fs, opts: opts.normalized(), logger: logger}
}

// ParseFile reads and parses the file at path. Open failures are
// returned as errors; malformed content never is.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Document, []Diagnostic, error) {
	data, err := p.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	doc, diags, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return doc, diags, nil
}

// Parse consumes r line by line in a single forward pass. The returned
// error only reflects reader failures; content problems surface as
// diagnostics.
func (p *Parser) Parse(r io.Reader) (*Document, []Diagnostic, error) {
	doc := newDocument()
	var diags []Diagnostic
	var current *Section
	commentCount := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()

		if m := sectionRE.FindStringSubmatch(line); m != nil {
			current = doc.section(m[1])
			commentCount = 0
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")

		// Whole-line comment.
		if len(trimmed) > 0 && p.opts.isMarker(trimmed[0]) {
			if !p.opts.IgnoreComments {
				commentCount++
				p.insert(doc, &current, &diags, p.opts.CommentKeyPrefix+strconv.Itoa(commentCount), ptr(trimmed[1:]))
			}
			continue
		}

		// Trailing same-line comment, when permitted.
		if !p.opts.CommentsMustBeOwnLine {
			if idx := p.inlineCommentIndex(line); idx >= 0 {
				comment := line[idx+1:]
				line = line[:idx]
				if !p.opts.IgnoreComments {
					commentCount++
					p.insert(doc, &current, &diags, p.opts.CommentKeyPrefix+strconv.Itoa(commentCount), ptr(comment))
				}
			}
		}

		if m := kvRE.FindStringSubmatch(line); m != nil {
			p.insert(doc, &current, &diags, m[1], ptr(unquote(m[2])))
			continue
		}

		if p.opts.AllowKeyWithoutValue {
			if bare := strings.TrimSpace(line); bare != "" {
				p.insert(doc, &current, &diags, bare, nil)
			}
		}
		// Blank and otherwise unmatched lines are skipped.
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return doc, diags, nil
}

// insert stores a key under the current section, opening the null
// section when no [Header] has been seen yet, and surfaces duplicates.
func (p *Parser) insert(doc *Document, current **Section, diags *[]Diagnostic, key string, value *string) {
	if *current == nil {
		*current = doc.section(p.opts.NullSectionName)
	}
	old, existed := (*current).set(key, value)
	if existed {
		d := Diagnostic{
			Section: (*current).Name(),
			Key:     key,
			Old:     render(old),
			New:     render(value),
		}
		*diags = append(*diags, d)
		p.logger.Warn("duplicate key overwritten",
			"section", d.Section, "key", d.Key, "old", d.Old, "new", d.New)
	}
}

// inlineCommentIndex finds the first unescaped comment marker in line,
// or -1. A marker preceded by a backslash does not start a comment.
func (p *Parser) inlineCommentIndex(line string) int {
	for i := 0; i < len(line); i++ {
		if p.opts.isMarker(line[i]) && (i == 0 || line[i-1] != '\\') {
			return i
		}
	}
	return -1
}

// unquote strips one pair of matching single or double quotes wrapping
// the whole value.
func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

func render(v *string) string {
	if v == nil {
		return "<null>"
	}
	return *v
}

func ptr(s string) *string {
	return &s
}
