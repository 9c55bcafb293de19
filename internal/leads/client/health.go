package client

import (
	"context"
	"fmt"
	"net/http"

	"leadcapture_frontend/platform/apperr"
)

// Ping checks whether the lead API answers its health endpoint. Callers log
// the outcome and carry on; an unreachable API is never fatal.
func (c *Client) Ping(ctx context.Context) error {
	const op = "client.Ping"

	status, _, err := c.do(ctx, http.MethodGet, JoinURL(c.baseURL, PathHealth), nil)
	if err != nil {
		return err.WithOp(op)
	}
	if status < 200 || status > 299 {
		return apperr.HTTP(status, fmt.Sprintf("HTTP %d", status)).WithOp(op)
	}
	return nil
}
