package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devpress/config"
)

func TestSitemapListsVisibleContent(t *testing.T) {
	gdb := newTestDB(t)
	seedPosts(t, NewAdminPostService(gdb))
	learn := NewLearnService(gdb)
	_, err := learn.UpsertTopic(context.Background(), "go-basics", topicPayload())
	require.NoError(t, err)

	svc := NewFeedService(gdb, config.SiteConfig{BaseURL: "https://devpress.example.com/", Name: "DevPress"})
	out, err := svc.Sitemap(context.Background())
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "<loc>https://devpress.example.com/</loc>")
	assert.Contains(t, xml, "<loc>https://devpress.example.com/blog/channels-deep-dive</loc>")
	assert.Contains(t, xml, "<loc>https://devpress.example.com/blog/category/frontend</loc>")
	assert.Contains(t, xml, "<loc>https://devpress.example.com/blog/tag/css</loc>")
	assert.Contains(t, xml, "<loc>https://devpress.example.com/learn/go-basics</loc>")
	assert.Contains(t, xml, "<loc>https://devpress.example.com/learn/go-basics/variables</loc>")

	// 초안과 예약 글은 나오면 안 된다.
	assert.NotContains(t, xml, "unfinished")
	assert.NotContains(t, xml, "future-post")
}

func TestRSSFeed(t *testing.T) {
	gdb := newTestDB(t)
	seedPosts(t, NewAdminPostService(gdb))

	svc := NewFeedService(gdb, config.SiteConfig{
		BaseURL:     "https://devpress.example.com",
		Name:        "DevPress",
		Description: "A developer blog.",
	})
	out, err := svc.RSS(context.Background(), 2)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, `version="2.0"`)
	assert.Contains(t, xml, "<title>DevPress</title>")
	assert.Contains(t, xml, "https://devpress.example.com/blog/channels-deep-dive")
	// limit 2 이므로 가장 오래된 글은 빠진다.
	assert.NotContains(t, xml, "css-grid-basics")
	assert.NotContains(t, xml, "unfinished")
}
