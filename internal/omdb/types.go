package omdb

import (
	"fmt"
	"strconv"
	"time"
)

// Media types accepted by the type filter.
const (
	TypeMovie   = "movie"
	TypeSeries  = "series"
	TypeEpisode = "episode"

	// FilterAll disables a filter.
	FilterAll = "All"

	// NotAvailable is OMDb's placeholder for a missing field.
	NotAvailable = "N/A"

	// MinYear is the earliest year offered by the year filter.
	MinYear = 1900
)

// MovieSummary is one entry of a search page.
type MovieSummary struct {
	ID     string `json:"imdbID" yaml:"imdbID"`
	Title  string `json:"Title" yaml:"title"`
	Year   string `json:"Year" yaml:"year"`
	Type   string `json:"Type" yaml:"type"`
	Poster string `json:"Poster" yaml:"poster"`
}

// HasPoster reports whether the summary carries a usable poster URL.
func (m MovieSummary) HasPoster() bool {
	return m.Poster != "" && m.Poster != NotAvailable
}

// Rating represents a rating from a specific source
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// MovieDetail represents the full-plot response for a single title.
// Response and Error are the envelope fields and are passed through unmodified.
type MovieDetail struct {
	ID         string   `json:"imdbID"`
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Type       string   `json:"Type"`
	Poster     string   `json:"Poster"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	BoxOffice  string   `json:"BoxOffice"`
	Production string   `json:"Production"`
	Ratings    []Rating `json:"Ratings"`
	ImdbRating string   `json:"imdbRating"`
	ImdbVotes  string   `json:"imdbVotes"`
	Response   string   `json:"Response"` // "True" or "False"
	Error      string   `json:"Error"`    // Present if Response is "False"
}

// OK reports whether the provider answered Response "True".
func (d *MovieDetail) OK() bool {
	return d != nil && d.Response == "True"
}

// Summary returns the MovieSummary part of the detail record.
func (d *MovieDetail) Summary() MovieSummary {
	return MovieSummary{ID: d.ID, Title: d.Title, Year: d.Year, Type: d.Type, Poster: d.Poster}
}

// SearchResponse is the raw search envelope.
type SearchResponse struct {
	Search       []MovieSummary `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
}

// OK reports whether the provider answered Response "True".
func (r *SearchResponse) OK() bool {
	return r != nil && r.Response == "True"
}

// Total parses totalResults; unparsable or missing values count as 0.
func (r *SearchResponse) Total() int {
	if r == nil {
		return 0
	}
	n, err := strconv.Atoi(r.TotalResults)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FilterOptions narrows a search by media type and release year.
type FilterOptions struct {
	Type string `json:"type"`
	Year string `json:"year"`
}

// DefaultFilters returns {All, All}.
func DefaultFilters() FilterOptions {
	return FilterOptions{Type: FilterAll, Year: FilterAll}
}

// normalized treats empty fields as All.
func (f FilterOptions) normalized() FilterOptions {
	if f.Type == "" {
		f.Type = FilterAll
	}
	if f.Year == "" {
		f.Year = FilterAll
	}
	return f
}

// ActiveCount returns how many filters are set to something other than All.
func (f FilterOptions) ActiveCount() int {
	f = f.normalized()
	n := 0
	if f.Type != FilterAll {
		n++
	}
	if f.Year != FilterAll {
		n++
	}
	return n
}

// Validate checks the filter values against the options the UI offers.
func (f FilterOptions) Validate() error {
	f = f.normalized()
	switch f.Type {
	case FilterAll, TypeMovie, TypeSeries, TypeEpisode:
	default:
		return fmt.Errorf("invalid type filter %q (valid: All, movie, series, episode)", f.Type)
	}
	if f.Year == FilterAll {
		return nil
	}
	year, err := strconv.Atoi(f.Year)
	if err != nil || len(f.Year) != 4 {
		return fmt.Errorf("invalid year filter %q: must be a 4-digit year", f.Year)
	}
	if year < MinYear || year > time.Now().Year() {
		return fmt.Errorf("invalid year filter %q: must be between %d and %d", f.Year, MinYear, time.Now().Year())
	}
	return nil
}

// TypeOptions lists the choices of the type filter, All first.
func TypeOptions() []string {
	return []string{FilterAll, TypeMovie, TypeSeries, TypeEpisode}
}

// YearOptions lists All followed by every year from the current year down to MinYear.
func YearOptions(now time.Time) []string {
	current := now.Year()
	opts := make([]string, 0, current-MinYear+2)
	opts = append(opts, FilterAll)
	for y := current; y >= MinYear; y-- {
		opts = append(opts, strconv.Itoa(y))
	}
	return opts
}
