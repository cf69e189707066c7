package config

import (
	"strings"

	"gopkg.in/ini.v1"
)

// setSuffixEntry returns data with every [dot] worship_suffix entry set to suffix.
// Bytes outside those entries are returned unchanged. A missing key is added after
// the last entry of the first [dot] section; a missing section is appended.
// data must already parse with iniOptions.
func setSuffixEntry(data []byte, suffix string) []byte {
	nl := "\n"
	if strings.Contains(string(data), "\r\n") {
		nl = "\r\n"
	}
	entry := Key + " = " + suffix

	lines := splitLines(string(data))
	out := make([]string, 0, len(lines)+3)

	section := ini.DefaultSection
	seenDot, inFirstDot := false, false
	insertAt := -1
	replaced := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';':
			out = append(out, line)
			continue
		case trimmed[0] == '[':
			if end := strings.LastIndexByte(trimmed, ']'); end > 0 {
				section = trimmed[1:end]
			}
			inFirstDot = section == Section && !seenDot
			seenDot = seenDot || section == Section
			out = append(out, line)
			if inFirstDot {
				insertAt = len(out)
			}
			continue
		}

		name, value := cutEntry(trimmed)
		span := entrySpan(lines[i:], value)
		if section == Section && name == Key {
			out = append(out, entry+lineEnding(lines[i+span-1]))
			replaced = true
		} else {
			out = append(out, lines[i:i+span]...)
		}
		if inFirstDot {
			insertAt = len(out)
		}
		i += span - 1
	}

	if replaced {
		return []byte(strings.Join(out, ""))
	}

	if insertAt >= 0 {
		if lineEnding(out[insertAt-1]) == "" {
			out[insertAt-1] += nl
		}
		out = append(out[:insertAt], append([]string{entry + nl}, out[insertAt:]...)...)
		return []byte(strings.Join(out, ""))
	}

	var b strings.Builder
	b.WriteString(strings.Join(out, ""))
	if b.Len() > 0 {
		if !strings.HasSuffix(b.String(), "\n") {
			b.WriteString(nl)
		}
		b.WriteString(nl)
	}
	b.WriteString("[" + Section + "]" + nl + entry + nl)
	return []byte(b.String())
}

// splitLines splits s after each newline. Every element keeps its line ending.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	}
	return ""
}

// cutEntry splits a key line at its first '=' or ':'.
func cutEntry(trimmed string) (name, value string) {
	i := strings.IndexAny(trimmed, "=:")
	if i < 0 {
		return trimmed, ""
	}
	return strings.TrimSpace(trimmed[:i]), strings.TrimSpace(trimmed[i+1:])
}

// entrySpan is the number of lines taken by an entry whose value starts on lines[0].
// Only """ and backtick values continue onto later lines.
func entrySpan(lines []string, value string) int {
	var quote string
	switch {
	case len(value) > 3 && strings.HasPrefix(value, `"""`):
		quote = `"""`
	case strings.HasPrefix(value, "`"):
		quote = "`"
	default:
		return 1
	}
	if strings.Contains(value[len(quote):], quote) {
		return 1
	}
	for n := 1; n < len(lines); n++ {
		if strings.Contains(lines[n], quote) {
			return n + 1
		}
	}
	return len(lines)
}
