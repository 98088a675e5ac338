// Package extract pulls lightweight structural facts out of firmware sources
// by surface pattern matching. It does not parse C or C++: false positives
// from macro invocations, multi-statement lines and nested braces are
// accepted, and records from different patterns are never deduplicated.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"
)

// FunctionRecord is one function-like declaration found by a pattern pass.
type FunctionRecord struct {
	Name       string
	ReturnType string
	File       string // base name of the originating file
	Class      string // owning class, set only by the qualified pattern
	Pattern    string // name of the pattern that produced the record
}

// Pattern is a single surface pattern. Capture groups are return type and
// name, or return type, class and name when Qualified is set.
type Pattern struct {
	Name      string
	Expr      *regexp.Regexp
	Qualified bool
}

// PatternSet is an ordered list of patterns plus the words that may never be
// reported as a function name.
type PatternSet struct {
	Patterns []Pattern
	Excluded map[string]bool
}

var (
	definedRe     = regexp.MustCompile(`(\w+)\s+(\w+)\s*\([^)]*\)\s*\{`)
	definedBodyRe = regexp.MustCompile(`(\w+)\s+(\w+)\s*\([^)]*\)\s*\{[^}]*\}`)
	declaredRe    = regexp.MustCompile(`(\w+)\s+(\w+)\s*\([^)]*\)\s*;`)
	qualifiedRe   = regexp.MustCompile(`(\w+)\s+(\w+)\s*::\s*(\w+)\s*\([^)]*\)\s*\{`)
)

// BasicPatterns matches definitions and forward declarations and excludes
// the common control-flow keywords.
func BasicPatterns() PatternSet {
	return PatternSet{
		Patterns: []Pattern{
			{Name: "defined", Expr: definedRe},
			{Name: "declared", Expr: declaredRe},
		},
		Excluded: map[string]bool{"if": true, "for": true, "while": true, "switch": true},
	}
}

// FullPatterns adds body-bounded definitions and qualified Class::method
// definitions, and also excludes "else".
func FullPatterns() PatternSet {
	return PatternSet{
		Patterns: []Pattern{
			{Name: "defined", Expr: definedBodyRe},
			{Name: "declared", Expr: declaredRe},
			{Name: "qualified", Expr: qualifiedRe, Qualified: true},
		},
		Excluded: map[string]bool{"if": true, "for": true, "while": true, "switch": true, "else": true},
	}
}

// Extract applies every pattern of set to text in order. Each pattern scans
// the whole text independently, so one declaration may be reported more than
// once.
func Extract(text, file string, set PatternSet) []FunctionRecord {
	var records []FunctionRecord
	for _, p := range set.Patterns {
		for _, m := range p.Expr.FindAllStringSubmatch(text, -1) {
			rec := FunctionRecord{File: file, Pattern: p.Name, ReturnType: m[1]}
			if p.Qualified {
				if len(m) < 4 {
					continue
				}
				rec.Class = m[2]
				rec.Name = m[3]
			} else {
				rec.Name = m[2]
			}
			if set.Excluded[rec.Name] {
				continue
			}
			records = append(records, rec)
		}
	}
	return records
}

// FileError records a file that could not be read or decoded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// ExtractFile reads path and returns its records. Content that is not valid
// UTF-8 is rejected.
func ExtractFile(path string, set PatternSet) ([]FunctionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decoding: not valid UTF-8")
	}
	return Extract(string(data), filepath.Base(path), set), nil
}
