package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"devpress/config"
	"devpress/curriculum"
	"devpress/repositories"
)

// FeedService renders the sitemap and the RSS feed from the visible content
// trees. Both are rebuilt per request; caching is the reverse proxy's job.
type FeedService struct {
	posts  *repositories.PostRepository
	topics *repositories.TopicRepository
	site   config.SiteConfig
}

func NewFeedService(db *gorm.DB, site config.SiteConfig) *FeedService {
	return &FeedService{
		posts:  repositories.NewPostRepository(db),
		topics: repositories.NewTopicRepository(db),
		site:   site,
	}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap 은 공개된 모든 페이지의 절대 URL 목록을 XML 로 만든다.
// 홈, 글, 카테고리, 토픽, 레슨 순서로 쌓는다.
func (s *FeedService) Sitemap(ctx context.Context) ([]byte, error) {
	now := time.Now()
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	base := strings.TrimRight(s.site.BaseURL, "/")
	add := func(path string, lastMod *time.Time) {
		u := sitemapURL{Loc: base + path}
		if lastMod != nil {
			u.LastMod = lastMod.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	add("/", nil)
	add("/blog", nil)
	add("/learn", nil)

	posts, err := s.posts.FindVisible(ctx, now)
	if err != nil {
		return nil, err
	}
	seenCategories := map[string]bool{}
	seenTags := map[string]bool{}
	for _, p := range posts {
		mod := p.UpdatedAt
		add("/blog/"+p.Slug, &mod)
		if p.Category.Slug != "" && !seenCategories[p.Category.Slug] {
			seenCategories[p.Category.Slug] = true
			add("/blog/category/"+p.Category.Slug, nil)
		}
		for _, tag := range p.Tags {
			if !seenTags[tag.Slug] {
				seenTags[tag.Slug] = true
				add("/blog/tag/"+tag.Slug, nil)
			}
		}
	}

	topics, err := s.topics.ListPublishedWithContents(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range topics {
		add("/learn/"+t.Slug, nil)
		for _, l := range curriculum.Flatten(t) {
			mod := l.UpdatedAt
			add(fmt.Sprintf("/learn/%s/%s", t.Slug, l.Slug), &mod)
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	Items       []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// RSS builds an RSS 2.0 feed of the most recent visible posts.
func (s *FeedService) RSS(ctx context.Context, limit int) ([]byte, error) {
	posts, err := s.posts.FindVisible(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	base := strings.TrimRight(s.site.BaseURL, "/")
	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.site.Name,
			Link:        base,
			Description: s.site.Description,
			Language:    "en",
		},
	}
	for _, p := range posts {
		item := rssItem{
			Title:       p.Title,
			Link:        base + "/blog/" + p.Slug,
			GUID:        base + "/blog/" + p.Slug,
			Description: p.Description,
			Author:      p.Author,
			Category:    p.Category.Name,
		}
		if p.PublishedAt != nil {
			item.PubDate = p.PublishedAt.UTC().Format(time.RFC1123Z)
		}
		feed.Channel.Items = append(feed.Channel.Items, item)
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
