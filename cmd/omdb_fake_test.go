package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/lepinkainen/marquee/internal/omdb"
)

// fakeOMDb serves a small fixed catalog in OMDb's wire format.
type fakeOMDb struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

func newFakeOMDb(t *testing.T) *fakeOMDb {
	t.Helper()

	f := &fakeOMDb{}
	mux := http.NewServeMux()
	mux.HandleFunc("/poster.png", f.servePoster)
	mux.HandleFunc("/", f.serveAPI)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeOMDb) serveAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.RawQuery)
	f.mu.Unlock()

	if q.Get("apikey") != "test-omdb-key" {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
		return
	}

	if id := q.Get("i"); id != "" {
		_ = json.NewEncoder(w).Encode(f.detail(id))
		return
	}

	if q.Get("s") == "Outage" {
		http.Error(w, "upstream db-7.internal timed out", http.StatusInternalServerError)
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	_ = json.NewEncoder(w).Encode(f.search(q.Get("s"), page))
}

func (f *fakeOMDb) search(term string, page int) omdb.SearchResponse {
	switch term {
	case "Marvel":
		resp := omdb.SearchResponse{Response: "True", TotalResults: "25"}
		for i := (page - 1) * 10; i < page*10 && i < 25; i++ {
			resp.Search = append(resp.Search, omdb.MovieSummary{
				ID: fmt.Sprintf("tt90000%02d", i+1), Title: fmt.Sprintf("Marvel Title %d", i+1), Year: "2019", Type: "movie", Poster: "N/A",
			})
		}
		return resp
	case "Avengers":
		return omdb.SearchResponse{
			Response:     "True",
			TotalResults: "2",
			Search: []omdb.MovieSummary{
				{ID: "tt0848228", Title: "The Avengers", Year: "2012", Type: "movie", Poster: "N/A"},
				{ID: "tt4154796", Title: "Avengers: Endgame", Year: "2019", Type: "movie", Poster: f.URL + "/poster.png"},
			},
		}
	default:
		return omdb.SearchResponse{Response: "False", Error: "Movie not found!"}
	}
}

func (f *fakeOMDb) detail(id string) omdb.MovieDetail {
	switch id {
	case "tt0848228":
		return omdb.MovieDetail{
			ID: id, Title: "The Avengers", Year: "2012", Type: "movie", Poster: "N/A",
			Rated: "PG-13", Runtime: "143 min", Genre: "Action, Sci-Fi", Director: "Joss Whedon",
			Plot: "Earth's mightiest heroes must come together.", ImdbRating: "8.0", ImdbVotes: "1,502,321",
			Ratings: []omdb.Rating{
				{Source: "Internet Movie Database", Value: "8.0/10"},
				{Source: "Rotten Tomatoes", Value: "91%"},
				{Source: "Metacritic", Value: "69/100"},
			},
			Response: "True",
		}
	case "tt4154796":
		return omdb.MovieDetail{
			ID: id, Title: "Avengers: Endgame", Year: "2019", Type: "movie", Poster: f.URL + "/poster.png",
			Genre: "Action, Adventure, Drama", ImdbRating: "8.4", Response: "True",
		}
	case "tt0111161", "tt0068646":
		return omdb.MovieDetail{ID: id, Title: "Featured " + id, Year: "1994", Genre: "Drama", ImdbRating: "9.3", Response: "True"}
	default:
		return omdb.MovieDetail{Response: "False", Error: "Incorrect IMDb ID."}
	}
}

func (f *fakeOMDb) servePoster(w http.ResponseWriter, _ *http.Request) {
	img := image.NewRGBA(image.Rect(0, 0, 900, 1350))
	for y := range 1350 {
		for x := range 900 {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (f *fakeOMDb) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
