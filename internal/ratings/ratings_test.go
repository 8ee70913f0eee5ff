package ratings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/omdb"
)

func TestNormalizeThreeSources(t *testing.T) {
	detail := &omdb.MovieDetail{
		ImdbRating: "8.5",
		Ratings: []omdb.Rating{
			{Source: "Internet Movie Database", Value: "8.5/10"},
			{Source: "Rotten Tomatoes", Value: "91%"},
			{Source: "Metacritic", Value: "74/100"},
		},
	}

	got := Normalize(detail)
	assert.Equal(t, []Point{
		{Source: "IMDb", Value: 8.5, Color: ColorIMDb},
		{Source: "Rotten Tomatoes", Value: 9.1, Color: ColorRottenTomatoes},
		{Source: "Metacritic", Value: 7.4, Color: ColorMetacritic},
	}, got)
}

func TestNormalizeSynthesizesIMDb(t *testing.T) {
	detail := &omdb.MovieDetail{
		ImdbRating: "7.2",
		Ratings:    []omdb.Rating{{Source: "Rotten Tomatoes", Value: "64%"}},
	}

	got := Normalize(detail)
	require.Len(t, got, 2)
	assert.Equal(t, Point{Source: "Rotten Tomatoes", Value: 6.4, Color: ColorRottenTomatoes}, got[0])
	assert.Equal(t, Point{Source: "IMDb", Value: 7.2, Color: ColorIMDb}, got[1])
}

func TestNormalizeEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		detail *omdb.MovieDetail
		want   []Point
	}{
		{
			name:   "nil detail",
			detail: nil,
			want:   []Point{},
		},
		{
			name:   "no ratings and imdb N/A",
			detail: &omdb.MovieDetail{ImdbRating: "N/A"},
			want:   []Point{},
		},
		{
			name:   "no ratings and imdb garbage",
			detail: &omdb.MovieDetail{ImdbRating: "soon"},
			want:   []Point{},
		},
		{
			name:   "only synthesized imdb",
			detail: &omdb.MovieDetail{ImdbRating: "6.0"},
			want:   []Point{{Source: "IMDb", Value: 6, Color: ColorIMDb}},
		},
		{
			name: "existing imdb entry is not duplicated",
			detail: &omdb.MovieDetail{
				ImdbRating: "9.9",
				Ratings:    []omdb.Rating{{Source: "Internet Movie Database", Value: "9.3/10"}},
			},
			want: []Point{{Source: "IMDb", Value: 9.3, Color: ColorIMDb}},
		},
		{
			name: "unparsable values are skipped",
			detail: &omdb.MovieDetail{
				ImdbRating: "N/A",
				Ratings: []omdb.Rating{
					{Source: "Rotten Tomatoes", Value: "N/A"},
					{Source: "Metacritic", Value: "/100"},
					{Source: "Letterboxd", Value: "great"},
					{Source: "Somewhere", Value: "3/0"},
				},
			},
			want: []Point{},
		},
		{
			name: "unknown source gets default color",
			detail: &omdb.MovieDetail{
				ImdbRating: "N/A",
				Ratings:    []omdb.Rating{{Source: "Letterboxd", Value: "4/5"}},
			},
			want: []Point{{Source: "Letterboxd", Value: 8, Color: ColorDefault}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.detail)
			assert.Equal(t, tt.want, got)
			for _, p := range got {
				assert.False(t, math.IsNaN(p.Value))
				assert.GreaterOrEqual(t, p.Value, 0.0)
			}
		})
	}
}

func TestCanonicalSourceAndColor(t *testing.T) {
	assert.Equal(t, "IMDb", CanonicalSource("Internet Movie Database"))
	assert.Equal(t, "Rotten Tomatoes", CanonicalSource("Rotten Tomatoes"))
	assert.Equal(t, ColorDefault, Color("Letterboxd"))
	assert.Equal(t, ColorMetacritic, Color("Metacritic"))
}

func TestGenres(t *testing.T) {
	detail := &omdb.MovieDetail{Genre: "Action, Adventure, Sci-Fi"}

	got := Genres(detail)
	assert.Equal(t, []GenreSlice{
		{Genre: "Action", Weight: 1, Color: "#E85D04"},
		{Genre: "Adventure", Weight: 1, Color: "#F48C06"},
		{Genre: "Sci-Fi", Weight: 1, Color: "#FAA307"},
	}, got)
}

func TestGenresPaletteWraps(t *testing.T) {
	detail := &omdb.MovieDetail{Genre: "A, B, C, D, E, F, G, H, I, J"}

	got := Genres(detail)
	require.Len(t, got, 10)
	assert.Equal(t, GenrePalette[0], got[8].Color)
	assert.Equal(t, GenrePalette[1], got[9].Color)
}

func TestGenresEmpty(t *testing.T) {
	assert.Empty(t, Genres(nil))
	assert.Empty(t, Genres(&omdb.MovieDetail{Genre: "N/A"}))
	assert.Empty(t, Genres(&omdb.MovieDetail{Genre: ""}))
	assert.Empty(t, Genres(&omdb.MovieDetail{Genre: " , "}))
}

func TestParseVotes(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{raw: "1,234,567", want: 1234567, wantOK: true},
		{raw: "987", want: 987, wantOK: true},
		{raw: "N/A"},
		{raw: ""},
		{raw: "lots"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseVotes(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
