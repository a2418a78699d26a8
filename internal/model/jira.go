package model

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Page holds the pagination metadata Jira attaches to list responses.
// Fields are pointers because each endpoint reports a different subset.
type Page struct {
	StartAt    *int  `json:"startAt"`
	MaxResults *int  `json:"maxResults"`
	Total      *int  `json:"total"`
	IsLast     *bool `json:"isLast"`
	// search/jql pages by token instead of offset
	NextPageToken *string `json:"nextPageToken"`
}

// ParsePage reads pagination metadata from a response body. ok is false for
// arrays, non-JSON bodies and objects without any pagination field.
func ParsePage(body []byte) (page Page, ok bool) {
	if len(body) == 0 || body[0] != '{' {
		return Page{}, false
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return Page{}, false
	}
	ok = page.StartAt != nil || page.MaxResults != nil || page.Total != nil ||
		page.IsLast != nil || page.NextPageToken != nil
	return page, ok
}

// Fields returns the present metadata as zap fields.
func (p Page) Fields() []zap.Field {
	var fields []zap.Field
	if p.StartAt != nil {
		fields = append(fields, zap.Int("start_at", *p.StartAt))
	}
	if p.MaxResults != nil {
		fields = append(fields, zap.Int("max_results", *p.MaxResults))
	}
	if p.Total != nil {
		fields = append(fields, zap.Int("total", *p.Total))
	}
	if p.IsLast != nil {
		fields = append(fields, zap.Bool("is_last", *p.IsLast))
	}
	if p.NextPageToken != nil {
		fields = append(fields, zap.Bool("has_next_page_token", *p.NextPageToken != ""))
	}
	return fields
}
