// Package ratings turns the provider's heterogeneous rating strings into
// chartable points on a single 0-10 scale.
package ratings

import (
	"math"
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/omdb"
)

// Canonical source names.
const (
	SourceIMDb           = "IMDb"
	SourceRottenTomatoes = "Rotten Tomatoes"
	SourceMetacritic     = "Metacritic"

	imdbLongName = "Internet Movie Database"
)

// MaxValue is the top of the common scale every Point uses.
const MaxValue = 10.0

// Colors used for chart bars.
const (
	ColorIMDb           = "#F5C518"
	ColorRottenTomatoes = "#FA320A"
	ColorMetacritic     = "#0DB4E7"
	ColorDefault        = "#E85D04"
)

// GenrePalette is cycled by position when coloring genre slices.
var GenrePalette = []string{
	"#E85D04", "#F48C06", "#FAA307", "#FFBA08",
	"#DC2F02", "#9D0208", "#6A040F", "#370617",
}

// Point is one normalized rating.
type Point struct {
	Source string
	Value  float64
	Color  string
}

// GenreSlice is one genre in the distribution chart.
type GenreSlice struct {
	Genre  string
	Weight int
	Color  string
}

// Normalize maps detail.Ratings onto the 0-10 scale, renaming the IMDb source.
// Entries whose value cannot be parsed are skipped. If there is no IMDb entry
// and imdbRating is a number, an IMDb point is appended from it.
func Normalize(detail *omdb.MovieDetail) []Point {
	if detail == nil {
		return []Point{}
	}

	points := make([]Point, 0, len(detail.Ratings)+1)
	hasIMDb := false

	for _, r := range detail.Ratings {
		source := CanonicalSource(r.Source)
		value, ok := parseValue(r.Value)
		if !ok {
			continue
		}
		if source == SourceIMDb {
			hasIMDb = true
		}
		points = append(points, Point{Source: source, Value: value, Color: Color(source)})
	}

	if !hasIMDb {
		if value, ok := parseNumber(detail.ImdbRating); ok && value >= 0 && value <= MaxValue {
			points = append(points, Point{Source: SourceIMDb, Value: value, Color: ColorIMDb})
		}
	}

	return points
}

// CanonicalSource renames "Internet Movie Database" to "IMDb"; other names pass through.
func CanonicalSource(source string) string {
	source = strings.TrimSpace(source)
	if source == imdbLongName {
		return SourceIMDb
	}
	return source
}

// Color returns the chart color for a canonical source name.
func Color(source string) string {
	switch source {
	case SourceIMDb:
		return ColorIMDb
	case SourceRottenTomatoes:
		return ColorRottenTomatoes
	case SourceMetacritic:
		return ColorMetacritic
	default:
		return ColorDefault
	}
}

// parseValue understands "X/10", "NN/100" (any "a/b" really) and "NN%".
func parseValue(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == omdb.NotAvailable {
		return 0, false
	}

	if pct, found := strings.CutSuffix(raw, "%"); found {
		v, ok := parseNumber(pct)
		if !ok {
			return 0, false
		}
		return round1(v / 100 * MaxValue), true
	}

	num, den, found := strings.Cut(raw, "/")
	if !found {
		return 0, false
	}
	n, ok := parseNumber(num)
	if !ok {
		return 0, false
	}
	d, ok := parseNumber(den)
	if !ok || d == 0 {
		return 0, false
	}
	return round1(n / d * MaxValue), true
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == omdb.NotAvailable {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// round1 rounds to one decimal so 91% reads as 9.1 instead of 9.100000000000001.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Genres splits the comma-separated genre string into equally weighted slices.
func Genres(detail *omdb.MovieDetail) []GenreSlice {
	if detail == nil {
		return []GenreSlice{}
	}
	genre := strings.TrimSpace(detail.Genre)
	if genre == "" || genre == omdb.NotAvailable {
		return []GenreSlice{}
	}

	var slices []GenreSlice
	for _, g := range strings.Split(genre, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		slices = append(slices, GenreSlice{
			Genre:  g,
			Weight: 1,
			Color:  GenrePalette[len(slices)%len(GenrePalette)],
		})
	}
	if slices == nil {
		return []GenreSlice{}
	}
	return slices
}

// ParseVotes parses a comma-formatted vote count such as "1,234,567".
func ParseVotes(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == omdb.NotAvailable {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
