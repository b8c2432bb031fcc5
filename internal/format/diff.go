package format

import (
	"fmt"
	"strings"
)

// LineType represents the type of a diff line.
type LineType int

const (
	LineTypeContext LineType = iota // Unchanged context line
	LineTypeAdded                   // Added line (+)
	LineTypeRemoved                 // Removed line (-)
)

// Line represents a single line in a diff.
type Line struct {
	Type    LineType
	Content string
}

// Hunk represents a contiguous block of changes.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Header returns the unified diff range line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// DiffStat contains statistics about changes.
type DiffStat struct {
	LinesAdded   int
	LinesRemoved int
}

// edit is one step of the line edit script. a and b are the indices into
// the original and modified lines at which the step applies.
type edit struct {
	kind LineType
	a, b int
}

// Diff computes the hunks turning original into modified, with context
// unchanged lines around each change.
func Diff(original, modified string, context int) []Hunk {
	a := splitLines(original)
	b := splitLines(modified)
	script := editScript(a, b)

	var hunks []Hunk
	for i := 0; i < len(script); {
		if script[i].kind == LineTypeContext {
			i++
			continue
		}

		start := max(0, i-context)
		last := i
		j := i + 1
		for j < len(script) {
			if script[j].kind != LineTypeContext {
				last = j
				j++
				continue
			}
			k := j
			for k < len(script) && script[k].kind == LineTypeContext {
				k++
			}
			if k == len(script) || k-j > 2*context {
				break
			}
			j = k
		}
		stop := min(len(script), last+1+context)

		hunks = append(hunks, buildHunk(script[start:stop], a, b))
		i = stop
	}

	return hunks
}

func buildHunk(script []edit, a, b []string) Hunk {
	h := Hunk{OriginalStart: script[0].a, ModifiedStart: script[0].b}
	for _, e := range script {
		switch e.kind {
		case LineTypeContext:
			h.Lines = append(h.Lines, Line{Type: LineTypeContext, Content: a[e.a]})
			h.OriginalCount++
			h.ModifiedCount++
		case LineTypeRemoved:
			h.Lines = append(h.Lines, Line{Type: LineTypeRemoved, Content: a[e.a]})
			h.OriginalCount++
		case LineTypeAdded:
			h.Lines = append(h.Lines, Line{Type: LineTypeAdded, Content: b[e.b]})
			h.ModifiedCount++
		}
	}

	// Ranges are 1-based; an empty range names the line before it.
	if h.OriginalCount > 0 {
		h.OriginalStart++
	}
	if h.ModifiedCount > 0 {
		h.ModifiedStart++
	}
	return h
}

// editScript returns a shortest edit script from a to b based on the
// longest common subsequence. Removals are listed before additions.
func editScript(a, b []string) []edit {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]edit, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			script = append(script, edit{LineTypeContext, i, j})
			i++
			j++
		case j == m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			script = append(script, edit{LineTypeRemoved, i, j})
			i++
		default:
			script = append(script, edit{LineTypeAdded, i, j})
			j++
		}
	}

	return script
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Stat counts the added and removed lines of hunks.
func Stat(hunks []Hunk) DiffStat {
	var stats DiffStat
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Type {
			case LineTypeAdded:
				stats.LinesAdded++
			case LineTypeRemoved:
				stats.LinesRemoved++
			}
		}
	}
	return stats
}

// Unified renders hunks as a unified diff of filename. It returns "" when
// there are no hunks.
func Unified(filename string, hunks []Hunk) string {
	if len(hunks) == 0 {
		return ""
	}

	var output strings.Builder
	fmt.Fprintf(&output, "--- %s\t(original)\n", filename)
	fmt.Fprintf(&output, "+++ %s\t(formatted)\n", filename)

	for _, h := range hunks {
		output.WriteString(h.Header() + "\n")
		for _, l := range h.Lines {
			prefix := " "
			switch l.Type {
			case LineTypeAdded:
				prefix = "+"
			case LineTypeRemoved:
				prefix = "-"
			}
			output.WriteString(prefix + l.Content + "\n")
		}
	}

	return output.String()
}
