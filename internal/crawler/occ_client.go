package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func (c *Client) FetchProductsByIDs(ctx context.Context, ids []string) ([]OCCProduct, error) {
	u := fmt.Sprintf(
		"%s/ccstoreui/v1/products?productIds=%s&pageSize=%d",
		c.BaseURL,
		url.QueryEscape(strings.Join(ids, ",")),
		len(ids),
	)

	req, err := c.newRequest(ctx, u)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCC status %d", resp.StatusCode)
	}

	var result OCCProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.Items, nil
}
