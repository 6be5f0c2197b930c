// Package pathinfo decomposes image paths into project, period and sub-unit
// metadata according to a folder naming convention.
package pathinfo

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/pflag"
)

// Convention selects the rule set used to decompose a path.
type Convention string

const (
	// Named splits project/period/sub-unit and strips a numeric "N. " prefix
	// from the sub-unit folder.
	Named Convention = "named"
	// Marker splits project/period/sub-unit and takes the sub-unit from the
	// first "D.I" marker in the folder name.
	Marker Convention = "marker"
	// Fixed maps the first two folders to the first two columns, the
	// remaining folders to the third and the file name to the fourth.
	Fixed Convention = "fixed"
)

// Conventions lists every supported convention in flag help order.
var Conventions = []Convention{Named, Marker, Fixed}

// DotMarker is the optional "./" display prefix.
const DotMarker = "./"

// SubunitMarker is the literal searched for by the Marker convention.
const SubunitMarker = "D.I"

var _ pflag.Value = (*Convention)(nil)

// String implements pflag.Value.
func (c *Convention) String() string {
	return string(*c)
}

// Set implements pflag.Value.
func (c *Convention) Set(v string) error {
	for _, known := range Conventions {
		if strings.EqualFold(v, string(known)) {
			*c = known
			return nil
		}
	}
	return fmt.Errorf("unknown convention %q (want one of %s)", v, conventionList())
}

// Type implements pflag.Value.
func (c *Convention) Type() string {
	return "convention"
}

func conventionList() string {
	names := make([]string, len(Conventions))
	for i, c := range Conventions {
		names[i] = string(c)
	}
	return strings.Join(names, "|")
}

// Record is the decomposition of a single path. Empty strings mean absent.
// Under the Fixed convention the fields hold folder0, folder1, the remaining
// folders and the file name, in that order.
type Record struct {
	Project     string
	Period      string
	Subunit     string
	DisplayName string
}

// Fields returns the record as the four leading report columns.
func (r Record) Fields() []string {
	return []string{r.Project, r.Period, r.Subunit, r.DisplayName}
}

// Decompose splits a slash-separated relative path according to c.
//
// Callers must pass at least two segments (scan root plus file name); a
// bare file name only yields a DisplayName under the named conventions.
// An empty path yields an empty Record.
func Decompose(path string, c Convention) Record {
	if path == "" {
		return Record{}
	}
	switch c {
	case Fixed:
		return decomposeFixed(path)
	case Marker:
		return decomposeNamed(path, ExtractMarker)
	default:
		return decomposeNamed(path, CleanFolderName)
	}
}

func decomposeNamed(path string, subunit func(string) string) Record {
	parts := strings.Split(strings.TrimPrefix(path, DotMarker), "/")

	switch {
	case len(parts) < 2:
		return Record{DisplayName: path}
	case len(parts) == 2:
		return Record{Project: parts[0], DisplayName: path}
	case len(parts) == 3:
		return Record{Project: parts[0], Period: parts[1], DisplayName: path}
	}

	return Record{
		Project:     parts[0],
		Period:      parts[1],
		Subunit:     blankToEmpty(subunit(parts[2])),
		DisplayName: path,
	}
}

func decomposeFixed(path string) Record {
	parts := strings.Split(strings.TrimPrefix(path, DotMarker), "/")
	folders, name := parts[:len(parts)-1], parts[len(parts)-1]

	var r Record
	if len(folders) >= 1 {
		r.Project = folders[0]
	}
	if len(folders) >= 2 {
		r.Period = folders[1]
	}
	if len(folders) >= 3 {
		r.Subunit = strings.Join(folders[2:], "/")
	}
	r.DisplayName = name
	return r
}

// CleanFolderName drops a leading numbering such as "1. " from a folder name.
// Names that do not start with a digit or lack ". " are returned unchanged.
func CleanFolderName(name string) string {
	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsDigit(first) {
		return name
	}
	if _, rest, ok := strings.Cut(name, ". "); ok {
		return rest
	}
	return name
}

// ExtractMarker returns the trimmed suffix of name starting at the first
// SubunitMarker, or "" when the marker is absent.
func ExtractMarker(name string) string {
	i := strings.Index(name, SubunitMarker)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(name[i:])
}

func blankToEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
