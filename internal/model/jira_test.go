package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	page, ok := ParsePage([]byte(`{"startAt":20,"maxResults":10,"total":42,"isLast":false,"values":[]}`))
	require.True(t, ok)
	require.NotNil(t, page.StartAt)
	assert.Equal(t, 20, *page.StartAt)
	assert.Equal(t, 10, *page.MaxResults)
	assert.Equal(t, 42, *page.Total)
	assert.False(t, *page.IsLast)
	assert.Nil(t, page.NextPageToken)
	assert.Len(t, page.Fields(), 4)
}

func TestParsePageNotAPage(t *testing.T) {
	for name, body := range map[string]string{
		"array":    `[{"accountId":"abc"}]`,
		"empty":    ``,
		"invalid":  `{nope`,
		"no pages": `{"key":"PROJ-1","fields":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := ParsePage([]byte(body))
			assert.False(t, ok)
		})
	}
}

func TestParsePageToken(t *testing.T) {
	page, ok := ParsePage([]byte(`{"issues":[],"nextPageToken":"abc","isLast":false}`))
	require.True(t, ok)
	assert.Equal(t, "abc", *page.NextPageToken)
	assert.Len(t, page.Fields(), 2)
}
