// Package commitmsg decides whether a commit message honors the worship suffix
// and provides the message transformations the git hooks apply.
package commitmsg

import (
	"strings"
	"unicode"
)

// DefaultSuffix is the suffix used when no override is configured.
const DefaultSuffix = "BECAUSE I WORSHIP THE DOT"

// scissors marks the start of the diff git appends to verbose commit drafts.
// Everything from this line down is discarded by git.
const scissors = "------------------------ >8 ------------------------"

// Validate reports whether message, with trailing whitespace removed, ends with suffix.
// The comparison is byte-exact and case-sensitive. Comment lines are not stripped.
func Validate(message, suffix string) bool {
	trimmed := strings.TrimRightFunc(message, unicode.IsSpace)
	if trimmed == "" || suffix == "" {
		return false
	}
	return strings.HasSuffix(trimmed, suffix)
}

// isComment reports whether the first non-blank character of line is '#'.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

func isScissors(line string) bool {
	return isComment(line) && strings.Contains(line, scissors)
}

// Cleanup applies git's default "strip" cleanup to a commit message: the scissors
// section and comment lines are removed, trailing whitespace is trimmed from every
// line, runs of blank lines collapse to one, and leading and trailing blank lines
// are dropped. A non-empty result ends with a single newline.
func Cleanup(message string) string {
	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")

	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if isScissors(line) {
			break
		}
		if isComment(line) {
			continue
		}
		line = strings.TrimRight(line, " \t\r\v\f")
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}

	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// AppendSuffix adds suffix to a commit draft as its own paragraph.
//
// The draft is split at the first comment line into a body and a trailer. If the
// last non-empty body line already ends with suffix the draft is returned as is.
// Otherwise trailing blank body lines are dropped, a blank line and the suffix are
// appended, and the trailer follows after one blank line.
func AppendSuffix(message, suffix string) string {
	lines := strings.Split(message, "\n")

	cut := len(lines)
	for i, line := range lines {
		if isComment(line) {
			cut = i
			break
		}
	}
	body, trailer := lines[:cut], lines[cut:]

	for i := len(body) - 1; i >= 0; i-- {
		line := strings.TrimRight(body[i], " \t\r")
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, suffix) {
			return message
		}
		break
	}

	text := strings.TrimRight(strings.Join(body, "\n"), " \t\r\n")

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(suffix)
	b.WriteString("\n")
	if len(trailer) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(trailer, "\n"))
	}
	return b.String()
}
