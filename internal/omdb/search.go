package omdb

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

// Search fetches one page of titles matching term. An empty term falls back to
// the client's default term. The envelope is returned as sent by OMDb: callers
// decide what Response "False" means for them.
func (c *Client) Search(ctx context.Context, term string, page int, filters *FilterOptions) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	term = strings.TrimSpace(term)
	if term == "" {
		term = c.defaultTerm
	}

	params := url.Values{}
	params.Set("s", term)
	params.Set("page", strconv.Itoa(page))
	if filters != nil {
		f := filters.normalized()
		if f.Type != FilterAll {
			params.Set("type", f.Type)
		}
		if f.Year != FilterAll {
			params.Set("y", f.Year)
		}
	}

	slog.Debug("Searching OMDb", "term", term, "page", page, "type", params.Get("type"), "year", params.Get("y"))

	var response SearchResponse
	if err := c.getJSON(ctx, "omdb search", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID fetches the full-plot record for an IMDb ID. The envelope,
// including Response and Error, is returned unmodified.
func (c *Client) GetByID(ctx context.Context, id string) (*MovieDetail, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	slog.Debug("Fetching OMDb detail", "imdb_id", id)

	var detail MovieDetail
	if err := c.getJSON(ctx, "omdb detail", params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
