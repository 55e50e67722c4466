package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// FetchProductsByCategory fetches all products for a given category, handling pagination.
func (c *Client) FetchProductsByCategory(ctx context.Context, categoryID string, handler func(OCCProduct)) error {
	nextURL := fmt.Sprintf("%s/ccstoreui/v1/products?categoryId=%s&includeChildren=true&limit=50", c.BaseURL, url.QueryEscape(categoryID))

	for nextURL != "" {
		page, err := c.fetchCategoryPage(ctx, nextURL)
		if err != nil {
			return err
		}

		for _, p := range page.Items {
			handler(p)
		}

		// Find next page link
		nextURL = ""
		for _, link := range page.Links {
			if link.Rel == "next" {
				href := strings.TrimSpace(link.Href)
				if strings.HasPrefix(href, "/") {
					nextURL = c.BaseURL + href
				} else {
					nextURL = href
				}
				break
			}
		}
	}

	return nil
}

func (c *Client) fetchCategoryPage(ctx context.Context, pageURL string) (*OCCCategoryResponse, error) {
	req, err := c.newRequest(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCC status %d for %s", resp.StatusCode, pageURL)
	}

	var result OCCCategoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", pageURL, err)
	}
	return &result, nil
}
