package minutes

import "strings"

// between extracts the trimmed text after marker and before next. Either
// marker missing yields "".
func between(text, marker, next string) string {
	_, rest, ok := strings.Cut(text, marker)
	if !ok {
		return ""
	}
	if idx := strings.Index(rest, next); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSpace(rest)
}

// after extracts the trimmed text following marker, to end of input.
func after(text, marker string) string {
	_, rest, ok := strings.Cut(text, marker)
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}

func contains(text, marker string) bool {
	return strings.Contains(text, marker)
}
