package catalog

import (
	"testing"

	"github.com/bagtoad/imglist/internal/links"
	"github.com/bagtoad/imglist/internal/pathinfo"
	"github.com/bagtoad/imglist/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithRemote(t *testing.T) {
	opts := Options{
		Convention: pathinfo.Named,
		Remote:     &remote.Info{Owner: "o", Repo: "r", Branch: "main"},
		Links:      links.NewBuilder(links.Raw),
	}

	rows := Build([]string{"Proj/M3/1. D.I Foo/img.png"}, opts, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"Proj",
		"M3",
		"D.I Foo",
		"Proj/M3/1. D.I Foo/img.png",
		"https://raw.githubusercontent.com/o/r/refs/heads/main/Proj/M3/1.%20D.I%20Foo/img.png",
	}, rows[0].Values())
}

func TestBuildDotMarkerURL(t *testing.T) {
	opts := Options{
		Convention: pathinfo.Marker,
		Remote:     &remote.Info{Owner: "o", Repo: "r", Branch: "main"},
		Links:      links.NewBuilder(links.View),
	}

	rows := Build([]string{"./Proj/M3/a b.png"}, opts, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "./Proj/M3/a b.png", rows[0].DisplayName)
	assert.Equal(t, "https://github.com/o/r/blob/main/Proj/M3/a%20b.png", rows[0].URL)
}

func TestBuildWithoutRemote(t *testing.T) {
	paths := []string{"A/a.png", "A/M3/b.png", "A/M3/1. D.I X/c.png"}
	rows := Build(paths, Options{Convention: pathinfo.Named, Links: links.NewBuilder(links.Raw)}, nil)

	require.Len(t, rows, len(paths))
	for _, r := range rows {
		assert.Empty(t, r.URL, "row %s", r.DisplayName)
	}
}

func TestBuildProgress(t *testing.T) {
	var calls []int
	Build([]string{"A/a.png", "A/b.png"}, Options{Convention: pathinfo.Fixed}, func(current, total int) {
		assert.Equal(t, 2, total)
		calls = append(calls, current)
	})
	assert.Equal(t, []int{1, 2}, calls)
}

func TestCountByProject(t *testing.T) {
	rows := Build([]string{"B/a.png", "A/a.png", "B/b.png"}, Options{Convention: pathinfo.Named}, nil)

	assert.Equal(t, []ProjectCount{
		{Project: "A", Count: 1},
		{Project: "B", Count: 2},
	}, CountByProject(rows))
}

func TestHeader(t *testing.T) {
	assert.Len(t, Header, 5)
	assert.Equal(t, "url", Header[4])
}
