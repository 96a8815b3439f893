package llm

import "strings"

// ExtractJSON reduces raw model output to its JSON payload. It never fails:
// the result is a best-effort substring and invalid JSON is detected by the
// validation stage. Applied in order: trim, drop code-fence marker lines,
// cut everything before the first '{' and after the last '}'.
//
// The heuristic assumes the structured payload is the only brace-delimited
// block of interest; stray braces in surrounding prose are an accepted
// limitation.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripFenceLines(s)

	if i := strings.IndexByte(s, '{'); i >= 0 {
		s = s[i:]
	}
	if i := strings.LastIndexByte(s, '}'); i >= 0 {
		s = s[:i+1]
	}
	return strings.TrimSpace(s)
}

// stripFenceLines removes markdown code-fence marker lines (``` with or
// without a language tag) wherever they occur as their own line.
func stripFenceLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
