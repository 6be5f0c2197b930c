// Package catalog turns scanned image paths into report rows.
package catalog

import (
	"sort"
	"strings"

	"github.com/bagtoad/imglist/internal/links"
	"github.com/bagtoad/imglist/internal/pathinfo"
	"github.com/bagtoad/imglist/internal/remote"
)

// Header is the report header. Column order and count are fixed.
var Header = []string{"project", "period", "subunit", "displayName", "url"}

// Row is one report line: the decomposed path plus its public URL.
type Row struct {
	pathinfo.Record
	URL string
}

// Values returns the row in Header order.
func (r Row) Values() []string {
	return append(r.Fields(), r.URL)
}

// Options controls how rows are built.
type Options struct {
	Convention pathinfo.Convention
	// Remote is nil when the remote could not be resolved; every URL is
	// then empty.
	Remote *remote.Info
	Links  links.Builder
}

// Build decomposes every path and attaches its URL.
func Build(paths []string, opts Options, progressFn func(current, total int)) []Row {
	rows := make([]Row, 0, len(paths))

	for i, p := range paths {
		if progressFn != nil {
			progressFn(i+1, len(paths))
		}

		row := Row{Record: pathinfo.Decompose(p, opts.Convention)}
		if opts.Remote != nil {
			row.URL = opts.Links.Build(*opts.Remote, strings.TrimPrefix(p, pathinfo.DotMarker))
		}
		rows = append(rows, row)
	}

	return rows
}

// ProjectCount is the number of rows sharing a first column value.
type ProjectCount struct {
	Project string
	Count   int
}

// CountByProject groups rows by project, sorted by project name.
func CountByProject(rows []Row) []ProjectCount {
	groups := make(map[string]int)
	for _, r := range rows {
		groups[r.Project]++
	}

	counts := make([]ProjectCount, 0, len(groups))
	for name, n := range groups {
		counts = append(counts, ProjectCount{Project: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Project < counts[j].Project })
	return counts
}
