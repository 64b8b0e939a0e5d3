package immojump

import (
	"fmt"
	"net/url"
	"strconv"
)

/*
 * Pager pulls one list operation page by page. Pages are fetched
 * lazily and sequentially: property listing uses limit/offset, contact
 * and activity listing use page/per_page. Iteration ends on the first
 * short page or once maxResults items have been collected.
 */
type Pager struct {
	client     *Client
	resource   string
	operation  string
	params     map[string]any
	style      string
	pageSize   int
	maxResults int

	fetched int
	offset  int
	page    int
	done    bool
}

func NewPager(client *Client, resource, operation string, params map[string]any) (*Pager, error) {
	pagination, ok := listOperation(resource, operation)
	if !ok {
		return nil, fmt.Errorf("operation %s for resource %s is not paginated", operation, resource)
	}

	pager := &Pager{
		client:    client,
		resource:  resource,
		operation: operation,
		params:    params,
		style:     pagination.style,
		page:      1,
	}

	if boolParam(params, "returnAll", false) {
		pager.pageSize = pagination.maxSize
		return pager, nil
	}

	limit := intParam(params, "limit", pagination.defaultSize)
	if limit < 1 {
		limit = 1
	}
	if limit > pagination.maxSize {
		limit = pagination.maxSize
	}
	pager.pageSize = limit
	pager.maxResults = limit

	return pager, nil
}

/*
 * Next fetches the next page and returns its items. Returns an empty
 * slice once the listing is exhausted.
 */
func (p *Pager) Next() ([]any, error) {
	if p.done {
		return nil, nil
	}

	size := p.pageSize
	if p.maxResults > 0 {
		if remaining := p.maxResults - p.fetched; remaining < size {
			size = remaining
		}
	}
	if size <= 0 {
		p.done = true
		return nil, nil
	}

	spec, err := BuildRequest(p.client, p.resource, p.operation, p.params)
	if err != nil {
		return nil, err
	}
	if spec.Query == nil {
		spec.Query = url.Values{}
	}

	switch p.style {
	case paginationStyleOffset:
		spec.Query.Set("limit", strconv.Itoa(size))
		spec.Query.Set("offset", strconv.Itoa(p.offset))
	case paginationStylePage:
		spec.Query.Set("page", strconv.Itoa(p.page))
		spec.Query.Set("per_page", strconv.Itoa(size))
	}

	result, err := p.client.Execute(spec)
	if err != nil {
		return nil, err
	}

	items := extractItems(result.Body)
	p.fetched += len(items)
	p.offset += len(items)
	p.page++

	if len(items) < size {
		p.done = true
	}
	if p.maxResults > 0 && p.fetched >= p.maxResults {
		p.done = true
	}

	return items, nil
}

// Collect drains the pager into a single slice.
func (p *Pager) Collect() ([]any, error) {
	all := []any{}
	for {
		items, err := p.Next()
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return all, nil
		}
		all = append(all, items...)
	}
}

/*
 * extractItems normalizes the two list response shapes the API uses:
 * a bare JSON array, or an envelope object carrying the array under
 * data/items/results.
 */
func extractItems(body any) []any {
	switch v := body.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range []string{"data", "items", "results"} {
			if items, ok := v[key].([]any); ok {
				return items
			}
		}
	}
	return nil
}
