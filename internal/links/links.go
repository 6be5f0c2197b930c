// Package links builds public file URLs for a hosted repository.
package links

import (
	"fmt"
	"strings"

	"github.com/bagtoad/imglist/internal/remote"
	"github.com/spf13/pflag"
)

// Shape selects the URL template.
type Shape string

const (
	// Raw points at the file content on the raw content host.
	Raw Shape = "raw"
	// View points at the browsable blob page.
	View Shape = "view"
)

const (
	// DefaultHost serves the browsable blob pages.
	DefaultHost = "github.com"
	// DefaultRawHost serves raw file content.
	DefaultRawHost = "raw.githubusercontent.com"
)

var _ pflag.Value = (*Shape)(nil)

// String implements pflag.Value.
func (s *Shape) String() string {
	return string(*s)
}

// Set implements pflag.Value.
func (s *Shape) Set(v string) error {
	switch Shape(strings.ToLower(v)) {
	case Raw:
		*s = Raw
	case View:
		*s = View
	default:
		return fmt.Errorf("unknown url style %q (want raw|view)", v)
	}
	return nil
}

// Type implements pflag.Value.
func (s *Shape) Type() string {
	return "style"
}

// Builder produces URLs of a single shape.
type Builder struct {
	Host    string
	RawHost string
	Shape   Shape
}

// NewBuilder returns a Builder for the default hosts.
func NewBuilder(shape Shape) Builder {
	return Builder{Host: DefaultHost, RawHost: DefaultRawHost, Shape: shape}
}

// Build returns the URL of path inside the repository described by info.
func (b Builder) Build(info remote.Info, path string) string {
	encoded := EncodePath(path)
	if b.Shape == View {
		return fmt.Sprintf("https://%s/%s/%s/blob/%s/%s", b.Host, info.Owner, info.Repo, info.Branch, encoded)
	}
	return fmt.Sprintf("https://%s/%s/%s/refs/heads/%s/%s", b.RawHost, info.Owner, info.Repo, info.Branch, encoded)
}

// EncodePath replaces spaces with %20 in every segment. No other characters
// are escaped, so "#", "?" and "%" pass through as-is.
func EncodePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, " ", "%20")
	}
	return strings.Join(parts, "/")
}
