// Package source provides the minimal positional information the core
// attaches to diagnostics. Lexing and parsing are external collaborators
// (spec §1); this package only carries the position contract they hand in,
// adapted from the teacher's source-file bookkeeping.
package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFile represents a source file with its content and metadata.
type SourceFile struct {
	Name    string // Display name (e.g., "policy.why", "<fixture>")
	Path    string // Full file path (empty for in-memory fixtures)
	Content string
	lines   []string
}

// NewSourceFile creates a new source file.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{Name: name, Path: path, Content: content}
}

// FromFile creates a SourceFile from a file path and content.
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Lines returns the source split into lines (cached).
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name).
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// Position locates a diagnostic in externally-parsed source text.
type Position struct {
	File     string
	Line     int
	Column   int
	StartPos int
	EndPos   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Zero is the position used for synthesized nodes with no concrete location.
var Zero = Position{}
