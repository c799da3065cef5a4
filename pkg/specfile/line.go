package specfile

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/slink/pkg/types"
)

// specLineRe matches a line carrying a symlink specification: a target path
// and a link path separated by whitespace. A path token is either a run of
// characters without whitespace or quotes, or a double-quote-delimited string.
// There is no escape mechanism, so a token with an embedded quote never matches.
var specLineRe = regexp.MustCompile(`^\s*(?P<target>[^\s"]+|"[^"]+")\s+(?P<link>[^\s"]+|"[^"]+")\s*$`)

// Kind classifies a single line of a spec file
type Kind int

const (
	// Empty is a line with no characters at all
	Empty Kind = iota
	// Comment is a line starting with //
	Comment
	// Invalid is a line that fails the specification grammar or names a
	// target that does not exist
	Invalid
	// Spec is a valid symlink specification
	Spec
)

// InvalidReason says why an Invalid line failed classification
type InvalidReason int

const (
	// NoMatch means the line does not match the two-token grammar
	NoMatch InvalidReason = iota
	// TargetMissing means the grammar matched but the target path does not exist
	TargetMissing
)

// Line is the outcome of classifying one line of a spec file
type Line struct {
	Kind   Kind
	Reason InvalidReason // only meaningful when Kind is Invalid
	Target string        // only set when Kind is Spec, surrounding quotes stripped
	Link   string        // only set when Kind is Spec, surrounding quotes stripped
}

// Classify determines what a single spec-file line means.
//
// The comment prefix is checked before anything else, so a comment never
// reaches the grammar. Only a fully empty line counts as Empty; a
// whitespace-only line is Invalid. A line matching the grammar is a Spec only
// when its target exists, checked through fsys.Stat so that a target behind a
// dangling symlink counts as missing. That existence check is the only I/O
// the classifier performs.
func Classify(line string, fsys types.FS) Line {
	if strings.HasPrefix(line, "//") {
		return Line{Kind: Comment}
	}
	if line == "" {
		return Line{Kind: Empty}
	}

	m := specLineRe.FindStringSubmatch(line)
	if m == nil {
		return Line{Kind: Invalid, Reason: NoMatch}
	}

	target := unquote(m[1])
	link := unquote(m[2])

	if _, err := fsys.Stat(target); err != nil {
		return Line{Kind: Invalid, Reason: TargetMissing}
	}

	return Line{Kind: Spec, Target: target, Link: link}
}

// unquote strips the delimiting double quotes from a quoted grammar token
func unquote(token string) string {
	if strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) && len(token) >= 2 {
		return token[1 : len(token)-1]
	}
	return token
}
