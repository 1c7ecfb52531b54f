package clipboard

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseTSV turns raw text/plain clipboard content into a string matrix: the
// text is NFC-normalized so paste sources using distinct but
// visually-equivalent Unicode encodings land on the same field bytes, CR
// characters are dropped, the text is split on LF, a single trailing empty
// line (from a terminating newline) is discarded, and each line is split on
// TAB. The result may be ragged if source rows have different field counts.
func ParseTSV(raw string) [][]string {
	normalized := strings.ReplaceAll(norm.NFC.String(raw), "\r", "")
	lines := strings.Split(normalized, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	matrix := make([][]string, len(lines))
	for i, line := range lines {
		matrix[i] = strings.Split(line, "\t")
	}
	return matrix
}
