package pciids

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joshuapare/pciids/pkg/types"
)

// DefaultURL is the upstream location of the current database.
const DefaultURL = "https://pci-ids.ucw.cz/v2.2/pci.ids"

// Fetch downloads and parses the database at url. A nil client means
// http.DefaultClient and an empty url means DefaultURL.
//
// Any non-2xx response is an IO error. Fetch does not retry.
func Fetch(ctx context.Context, client *http.Client, url string, opts *Options) (*Database, error) {
	opts = opts.orDefault()
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, types.ErrIO.Wrap(err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := client.Do(req)
	if err != nil {
		return nil, types.ErrIO.Wrap(err)
	}
	defer resp.Body.Close()

	opts.logger().Info("fetched pci.ids", "url", url, "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, types.ErrIO.Wrap(fmt.Errorf("GET %s: %s", url, resp.Status))
	}

	return Parse(resp.Body, opts)
}
