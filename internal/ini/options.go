package ini

// Default parsing settings. They mirror how most legacy tools write
// their files: comments on their own line introduced by ';' or '#'.
const (
	DefaultCommentMarkers   = ";#"
	DefaultNullSectionName  = "NoSection"
	DefaultCommentKeyPrefix = "Comment"
)

// Options controls how lenient the parser is about the many INI
// dialects found in the wild.
type Options struct {
	// CommentMarkers holds the bytes that introduce a comment.
	CommentMarkers string

	// IgnoreComments drops comment text instead of recording it under
	// synthetic CommentN keys.
	IgnoreComments bool

	// CommentsMustBeOwnLine disables stripping of trailing same-line
	// comments from key=value lines.
	CommentsMustBeOwnLine bool

	// NullSectionName is the synthetic section that collects keys
	// appearing before any [Header] line.
	NullSectionName string

	// AllowKeyWithoutValue treats a non-empty line without '=' as a
	// key with a null value.
	AllowKeyWithoutValue bool

	// CommentKeyPrefix is the prefix for synthetic comment keys
	// (Comment1, Comment2, ...). Used when IgnoreComments is false.
	CommentKeyPrefix string
}

// DefaultOptions returns the parser defaults: ';' and '#' comments on
// their own line, recorded under CommentN keys, null section "NoSection".
func DefaultOptions() Options {
	return Options{
		CommentMarkers:        DefaultCommentMarkers,
		CommentsMustBeOwnLine: true,
		NullSectionName:       DefaultNullSectionName,
		CommentKeyPrefix:      DefaultCommentKeyPrefix,
	}
}

// normalized fills in zero-valued fields with defaults so a partially
// populated Options literal behaves sensibly.
func (o Options) normalized() Options {
	if o.CommentMarkers == "" {
		o.CommentMarkers = DefaultCommentMarkers
	}
	if o.NullSectionName == "" {
		o.NullSectionName = DefaultNullSectionName
	}
	if o.CommentKeyPrefix == "" {
		o.CommentKeyPrefix = DefaultCommentKeyPrefix
	}
	return o
}

// isMarker reports whether b introduces a comment.
func (o Options) isMarker(b byte) bool {
	for i := 0; i < len(o.CommentMarkers); i++ {
		if o.CommentMarkers[i] == b {
			return true
		}
	}
	return false
}
