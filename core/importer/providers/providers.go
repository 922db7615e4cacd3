// ABOUTME: Shared plumbing for provider adapters
// ABOUTME: JSON payload fetch over the injected HTTP client

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"natureshare-pipeline/core/interfaces"
)

// fetchJSON GETs a URL and decodes the JSON body into v.
func fetchJSON(ctx context.Context, client interfaces.HTTPClient, url string, v interface{}) error {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return err
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != 200 {
		io.Copy(io.Discard, body)
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode())
	}
	return json.NewDecoder(body).Decode(v)
}
