// Package report summarizes the annotation markers a conversion leaves
// behind. It reads converted output, not the IR: the markers are a
// persisted contract, so a report can be produced for any past run's
// files without re-converting them.
package report

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/testshift/core/pkg/converter/annotate"
)

// Annotation is one marker found in converted output.
type Annotation struct {
	// Marker is the marker prefix, annotate.TodoMarker or
	// annotate.WarnMarker.
	Marker string `json:"marker"`

	// ID is the stable construct-class identifier for TODO markers
	// (e.g. "chai-plugin"). Empty for warnings.
	ID string `json:"id,omitempty"`

	// Line is the 1-based line number of the marker in the converted file.
	Line int `json:"line"`

	// Description is the human-readable explanation on the marker line.
	Description string `json:"description"`
}

// FileReport holds the annotations of one converted file.
type FileReport struct {
	Path     string       `json:"path"`
	Todos    []Annotation `json:"todos,omitempty"`
	Warnings []Annotation `json:"warnings,omitempty"`
}

// Clean reports whether the file converted without any annotation.
func (f FileReport) Clean() bool {
	return len(f.Todos) == 0 && len(f.Warnings) == 0
}

// Parse scans converted output for annotation markers.
func Parse(path, content string) FileReport {
	r := FileReport{Path: path}

	for idx, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(trimmed, "// ")
		if !ok {
			continue
		}

		if body, ok := strings.CutPrefix(rest, annotate.TodoMarker+"("); ok {
			id, desc, found := strings.Cut(body, "): ")
			if !found {
				continue
			}
			r.Todos = append(r.Todos, Annotation{
				Marker:      annotate.TodoMarker,
				ID:          id,
				Line:        idx + 1,
				Description: desc,
			})
			continue
		}

		if desc, ok := strings.CutPrefix(rest, annotate.WarnMarker+": "); ok {
			r.Warnings = append(r.Warnings, Annotation{
				Marker:      annotate.WarnMarker,
				Line:        idx + 1,
				Description: desc,
			})
		}
	}

	return r
}

// Summary aggregates file reports for one run.
type Summary struct {
	// Files lists every inspected file, annotated or not, sorted by path.
	Files []FileReport `json:"files"`

	TotalFiles    int `json:"totalFiles"`
	CleanFiles    int `json:"cleanFiles"`
	TotalTodos    int `json:"totalTodos"`
	TotalWarnings int `json:"totalWarnings"`

	// TodosByID counts TODO markers per construct class, the input to
	// migration effort estimation.
	TodosByID map[string]int `json:"todosByID,omitempty"`
}

// Build aggregates per-file reports into a run summary.
func Build(files []FileReport) *Summary {
	s := &Summary{
		Files:      make([]FileReport, len(files)),
		TotalFiles: len(files),
		TodosByID:  make(map[string]int),
	}
	copy(s.Files, files)
	sort.Slice(s.Files, func(i, j int) bool {
		return s.Files[i].Path < s.Files[j].Path
	})

	for _, f := range s.Files {
		if f.Clean() {
			s.CleanFiles++
		}
		s.TotalTodos += len(f.Todos)
		s.TotalWarnings += len(f.Warnings)
		for _, t := range f.Todos {
			s.TodosByID[t.ID]++
		}
	}

	return s
}

// WriteJSON renders the summary as indented JSON.
func (s *Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Markdown renders the summary as a Markdown document: totals, a
// blocker table sorted by count, then per-file detail for annotated
// files only.
func (s *Summary) Markdown() string {
	var b strings.Builder

	b.WriteString("# Conversion Report\n\n")
	b.WriteString("| Files | Clean | TODOs | Warnings |\n")
	b.WriteString("|---|---|---|---|\n")
	b.WriteString(markdownRow(s.TotalFiles, s.CleanFiles, s.TotalTodos, s.TotalWarnings))

	if len(s.TodosByID) > 0 {
		b.WriteString("\n## Blockers\n\n")
		b.WriteString("| Construct | Count |\n")
		b.WriteString("|---|---|\n")
		for _, id := range s.sortedTodoIDs() {
			b.WriteString("| `")
			b.WriteString(id)
			b.WriteString("` | ")
			b.WriteString(strconv.Itoa(s.TodosByID[id]))
			b.WriteString(" |\n")
		}
	}

	annotated := false
	for _, f := range s.Files {
		if f.Clean() {
			continue
		}
		if !annotated {
			b.WriteString("\n## Files\n")
			annotated = true
		}
		b.WriteString("\n### ")
		b.WriteString(f.Path)
		b.WriteString("\n\n")
		for _, t := range f.Todos {
			b.WriteString("- TODO `")
			b.WriteString(t.ID)
			b.WriteString("` (line ")
			b.WriteString(strconv.Itoa(t.Line))
			b.WriteString("): ")
			b.WriteString(t.Description)
			b.WriteString("\n")
		}
		for _, w := range f.Warnings {
			b.WriteString("- WARN (line ")
			b.WriteString(strconv.Itoa(w.Line))
			b.WriteString("): ")
			b.WriteString(w.Description)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// sortedTodoIDs orders construct classes by descending count, then by ID
// for deterministic output.
func (s *Summary) sortedTodoIDs() []string {
	ids := make([]string, 0, len(s.TodosByID))
	for id := range s.TodosByID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if s.TodosByID[ids[i]] != s.TodosByID[ids[j]] {
			return s.TodosByID[ids[i]] > s.TodosByID[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func markdownRow(cells ...int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = strconv.Itoa(c)
	}
	return "| " + strings.Join(parts, " | ") + " |\n"
}
