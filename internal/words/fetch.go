package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPClient is used by Fetch; tests may replace it.
var HTTPClient = &http.Client{Timeout: 2 * time.Minute}

// Fetch downloads a source word list. The caller closes the body.
func Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	log.Info().Str("url", url).Msg("downloading word list")
	res, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("download %s: unexpected status %s", url, res.Status)
	}
	return res.Body, nil
}
