package vaultsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListEntriesOptions selects a page of entries. Zero values use the server
// defaults.
type ListEntriesOptions struct {
	Query   string
	Page    int
	PerPage int
}

func (o ListEntriesOptions) encode() string {
	v := url.Values{}
	if o.Query != "" {
		v.Set("query", o.Query)
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListEntries(ctx context.Context, opts ListEntriesOptions) (*EntryListResponse, error) {
	var out EntryListResponse
	if err := c.call(ctx, http.MethodGet, "/v1/entries"+opts.encode(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEntry(ctx context.Context, req EntryRequest) (*EntryResponse, error) {
	var out EntryEnvelope
	if err := c.call(ctx, http.MethodPost, "/v1/entries", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Entry, nil
}

func (c *Client) GetEntry(ctx context.Context, id string) (*EntryResponse, error) {
	var out EntryEnvelope
	if err := c.call(ctx, http.MethodGet, "/v1/entries/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Entry, nil
}

func (c *Client) UpdateEntry(ctx context.Context, id string, req EntryUpdateRequest) (*EntryResponse, error) {
	var out EntryEnvelope
	if err := c.call(ctx, http.MethodPatch, "/v1/entries/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Entry, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/v1/entries/"+url.PathEscape(id), nil, nil, http.StatusOK)
}
