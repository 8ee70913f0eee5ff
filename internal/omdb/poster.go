package omdb

import (
	"bytes"
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/fileutil"
)

const defaultPosterWidth = 600

// ErrNoPoster is returned when a title has no poster ("N/A" or empty).
var ErrNoPoster = stdErrors.New("poster not available")

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-. ()]+`)

// PosterFilename builds "Title (Year) - poster.jpg" with filesystem-unsafe characters removed.
func PosterFilename(m MovieSummary) string {
	name := strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(m.Title, ""))
	if name == "" {
		name = m.ID
	}
	if m.Year != "" {
		name = fmt.Sprintf("%s (%s)", name, unsafeFilenameChars.ReplaceAllString(m.Year, "-"))
	}
	return name + " - poster.jpg"
}

// DownloadPoster downloads posterURL and writes it to savePath as JPEG,
// shrinking it to maxWidth when it is wider.
func (c *Client) DownloadPoster(ctx context.Context, posterURL, savePath string, maxWidth int) error {
	if posterURL == "" || posterURL == NotAvailable {
		return ErrNoPoster
	}
	if maxWidth <= 0 {
		maxWidth = defaultPosterWidth
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, posterURL, nil)
	if err != nil {
		return errors.NewTransportError("poster download", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError("poster download", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewStatusError("poster download", resp.StatusCode, posterURL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode poster: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("failed to encode poster: %w", err)
	}
	if _, err := fileutil.WriteFile(savePath, buf.Bytes(), true); err != nil {
		return fmt.Errorf("failed to save poster: %w", err)
	}
	return nil
}
