//go:build !integration

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollux-motors/showroom/internal/compare"
	"github.com/pollux-motors/showroom/internal/model"
	"github.com/pollux-motors/showroom/internal/search"
	"github.com/pollux-motors/showroom/internal/showroom"
)

func TestFormatVehicleList(t *testing.T) {
	var buf bytes.Buffer
	formatVehicleList(&buf, []model.Vehicle{
		{ID: "1", Name: "Ferrari SF90", Brand: "Ferrari", Category: "Supercar", Year: "2024",
			Price: model.ParseMeasure("AED 2,100,000"), Featured: true},
		{ID: "2", Name: "Mystery Coupe"},
	})

	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "FEATURED")
	assert.Contains(t, output, "Ferrari SF90")
	assert.Contains(t, output, "AED 2,100,000")
	assert.Contains(t, output, "yes")
	assert.Contains(t, output, "Mystery Coupe")
	assert.Contains(t, output, "-")
}

func TestFormatComparison(t *testing.T) {
	vehicles := []model.Vehicle{
		{ID: "1", Name: "Ferrari SF90", Specs: model.Specs{Speed: model.ParseMeasure("340 km/h")}, Category: "Supercar"},
		{ID: "2", Name: "Bentley Bentayga", Specs: model.Specs{Speed: model.ParseMeasure("290 km/h")}, Category: "Supercar"},
		{ID: "3", Name: "Rolls-Royce Cullinan", Specs: model.Specs{Speed: model.ParseMeasure("250 km/h")}, Category: "Supercar"},
	}
	attrs := []compare.Attribute{
		{Key: "specs.speed", Label: "Top Speed", Polarity: compare.HigherIsBetter, Parse: compare.ParseNumeric},
		{Key: "category", Label: "Category", Parse: compare.ParseText},
		{Key: "color", Label: "Colour", Parse: compare.ParseText},
	}
	cmp := &showroom.Comparison{Vehicles: vehicles, Attributes: attrs, Results: compare.Compare(vehicles, attrs)}

	var buf bytes.Buffer
	formatComparison(&buf, cmp)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "ATTRIBUTE")
	assert.Contains(t, lines[0], "Rolls-Royce Cullinan")

	assert.True(t, strings.HasPrefix(lines[1], "*"), "speeds differ")
	assert.Contains(t, lines[1], "340 km/h ▲")
	assert.Contains(t, lines[1], "250 km/h ▼")
	assert.NotContains(t, lines[1], "290 km/h ▲")

	assert.False(t, strings.HasPrefix(lines[2], "*"), "identical categories")
	assert.NotContains(t, lines[2], "▲")

	assert.Contains(t, lines[3], "-")
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "1 ▲", formatCell(compare.Result{Value: "1", IsBest: true}))
	assert.Equal(t, "2 ▼", formatCell(compare.Result{Value: "2", IsWorst: true}))
	assert.Equal(t, "-", formatCell(compare.Result{}))
}

func TestFormatSearchResults(t *testing.T) {
	var buf bytes.Buffer
	formatSearchResults(&buf, []search.Result{
		{Record: search.Record{Title: "Civic", Kind: model.KindCar, URL: "/cars/2", Metadata: search.Metadata{Price: "AED 90,000"}}, Score: 1},
		{Record: search.Record{Title: "Contact", Kind: model.KindPage, URL: "/contact"}, Score: 0.7},
	})

	output := buf.String()
	assert.Contains(t, output, "SCORE")
	assert.Contains(t, output, "1.00")
	assert.Contains(t, output, "0.70")
	assert.Contains(t, output, "AED 90,000")
	assert.Contains(t, output, "/contact")
}

func TestSearchFilters(t *testing.T) {
	cmd := &cobra.Command{Use: "search"}
	addSearchFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--kind", "car,Service", "--brand", "Ferrari", "--brand", "Bentley",
		"--max-price", "500000", "--min-year", "2020",
	}))

	f, err := searchFilters(cmd)
	require.NoError(t, err)
	assert.Equal(t, []model.RecordKind{model.KindCar, model.KindService}, f.Kinds)
	assert.Equal(t, []string{"Ferrari", "Bentley"}, f.Brands)
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, 500000.0, *f.PriceMax)
	assert.Nil(t, f.PriceMin, "unset flags stay inactive")
	require.NotNil(t, f.YearMin)
	assert.Equal(t, 2020, *f.YearMin)
	assert.Nil(t, f.YearMax)
}

func TestSearchFilters_ZeroIsAnActiveBound(t *testing.T) {
	cmd := &cobra.Command{Use: "search"}
	addSearchFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--min-price", "0"}))

	f, err := searchFilters(cmd)
	require.NoError(t, err)
	require.NotNil(t, f.PriceMin)
	assert.Zero(t, *f.PriceMin)
}

func TestSearchFilters_UnknownKind(t *testing.T) {
	cmd := &cobra.Command{Use: "search"}
	addSearchFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--kind", "blog"}))

	_, err := searchFilters(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "a, b", joinIDs([]model.ID{"a", "b"}))
}
