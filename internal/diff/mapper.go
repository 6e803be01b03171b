// Package diff maps a single file's unified diff to the 1-based positions
// the hosting platform requires to anchor inline comments.
package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies one line of a unified diff.
type LineKind string

const (
	LineAdded   LineKind = "added"
	LineRemoved LineKind = "removed"
	LineContext LineKind = "context"
)

// Line is one content line of a file's diff. OldLine and NewLine are 0 when
// the line does not exist on that side. Position is the 1-based index of
// the line within the file's whole diff, counted across every hunk.
type Line struct {
	OldLine  int
	NewLine  int
	Kind     LineKind
	Position int
}

// FileDiff is the parsed diff for one file: the ordered line sequence and
// the derived position index. The index contains only added and context
// lines; removed lines consume a position but are not commentable.
type FileDiff struct {
	Lines     []Line
	positions map[int]int // head line number -> diff position
}

// Position resolves a head-file line number to its diff position.
func (d *FileDiff) Position(newLine int) (int, bool) {
	pos, ok := d.positions[newLine]
	return pos, ok
}

// Empty reports whether the diff carried no content lines, as with
// rename-only or binary changes.
func (d *FileDiff) Empty() bool {
	return len(d.Lines) == 0
}

// ParseError reports a malformed diff. It is scoped to the one file whose
// patch failed; callers fall back to summary-only comment placement.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed diff: %s (%q)", e.Reason, e.Line)
}

var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse walks a single file's unified diff text and builds its FileDiff.
// The position counter starts at 1 and increments for every diff line,
// including hunk headers and file headers, in file order. Content lines
// before the first hunk header are malformed.
func Parse(patch string) (*FileDiff, error) {
	d := &FileDiff{positions: make(map[int]int)}
	if strings.TrimSpace(patch) == "" {
		return d, nil
	}

	lines := strings.Split(patch, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var (
		position int
		oldLine  int
		newLine  int
		inHunk   bool
	)

	for _, raw := range lines {
		position++

		if strings.HasPrefix(raw, "@@") {
			m := hunkHeader.FindStringSubmatch(raw)
			if m == nil {
				return nil, &ParseError{Line: raw, Reason: "invalid hunk header"}
			}
			oldLine, _ = strconv.Atoi(m[1])
			newLine, _ = strconv.Atoi(m[3])
			inHunk = true
			continue
		}

		if !inHunk {
			// Git file headers consume a position but carry no content.
			// Only recognized outside hunks: inside one, "+++ x" is a
			// real added line whose content begins "++ x".
			if strings.HasPrefix(raw, "diff --git") ||
				strings.HasPrefix(raw, "index ") ||
				strings.HasPrefix(raw, "--- ") ||
				strings.HasPrefix(raw, "+++ ") {
				continue
			}
			return nil, &ParseError{Line: raw, Reason: "content before hunk header"}
		}

		// "\ No newline at end of file" markers consume a position
		// without advancing either line counter.
		if strings.HasPrefix(raw, "\\") {
			continue
		}

		switch {
		case strings.HasPrefix(raw, "+"):
			d.Lines = append(d.Lines, Line{NewLine: newLine, Kind: LineAdded, Position: position})
			d.positions[newLine] = position
			newLine++
		case strings.HasPrefix(raw, "-"):
			d.Lines = append(d.Lines, Line{OldLine: oldLine, Kind: LineRemoved, Position: position})
			oldLine++
		default:
			d.Lines = append(d.Lines, Line{OldLine: oldLine, NewLine: newLine, Kind: LineContext, Position: position})
			d.positions[newLine] = position
			oldLine++
			newLine++
		}
	}

	return d, nil
}
