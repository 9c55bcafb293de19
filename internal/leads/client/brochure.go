package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"leadcapture_frontend/platform/apperr"
)

// DownloadBrochure fetches rawURL within the client timeout and copies the
// body into w. It returns the number of bytes written.
func (c *Client) DownloadBrochure(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	const op = "client.DownloadBrochure"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindBadRequest, "Invalid brochure URL.", err).WithOp(op)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, c.transportError(ctx, rawURL, err).WithOp(op)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apperr.HTTP(resp.StatusCode, fmt.Sprintf("HTTP %d", resp.StatusCode)).WithOp(op)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, c.transportError(ctx, rawURL, fmt.Errorf("copy brochure: %w", err)).WithOp(op)
	}
	c.log.Info("brochure downloaded", "url", rawURL, "bytes", n)
	return n, nil
}
