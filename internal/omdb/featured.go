package omdb

import (
	"context"
	"log/slog"
)

// FeaturedIDs are the titles shown in the featured strip.
var FeaturedIDs = []string{
	"tt0111161", // The Shawshank Redemption
	"tt0068646", // The Godfather
	"tt0468569", // The Dark Knight
	"tt0071562", // The Godfather: Part II
	"tt0050083", // 12 Angry Men
}

// Featured fetches the details of ids in order. Titles OMDb does not know are
// skipped; the first transport or rate-limit error aborts the whole fetch.
func (c *Client) Featured(ctx context.Context, ids []string) ([]*MovieDetail, error) {
	movies := make([]*MovieDetail, 0, len(ids))
	for _, id := range ids {
		detail, err := c.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !detail.OK() {
			slog.Debug("Skipping featured title", "imdb_id", id, "reason", detail.Error)
			continue
		}
		movies = append(movies, detail)
	}
	return movies, nil
}
