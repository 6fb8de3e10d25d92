package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingState_MergeLink(t *testing.T) {
	s := NewListingState("https://example.com/newsroom")

	assert.True(t, s.MergeLink("https://example.com/news/1"))
	assert.False(t, s.MergeLink("https://example.com/news/1"), "duplicates must not merge")
	assert.False(t, s.MergeLink(""), "empty URLs must not merge")
	assert.Equal(t, []string{"https://example.com/news/1"}, s.DiscoveredLinks)
	assert.True(t, s.HasLink("https://example.com/news/1"))
}

func TestListingState_MergeLinkZeroValue(t *testing.T) {
	// A directly constructed state must not panic on first merge.
	var s ListingState

	assert.True(t, s.MergeLink("https://example.com/news/1"))
	assert.True(t, s.MergeLink("https://example.com/news/2"))
	assert.False(t, s.MergeLink("https://example.com/news/1"))
	assert.Len(t, s.DiscoveredLinks, 2)
}
