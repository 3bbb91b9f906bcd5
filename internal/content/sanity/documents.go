package sanity

import (
	"time"

	"github.com/guyfedwards/newsdesk/internal/content"
)

type slug struct {
	Current string `json:"current"`
}

type imageRef struct {
	Asset struct {
		Ref string `json:"_ref"`
		URL string `json:"url"`
	} `json:"asset"`
}

func (i imageRef) toImage() content.Image {
	return content.Image{Ref: i.Asset.Ref, URL: i.Asset.URL}
}

type article struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Slug        slug            `json:"slug"`
	PublishedAt time.Time       `json:"publishedAt"`
	Summary     string          `json:"summary"`
	Content     []content.Block `json:"content"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	SourceURL   string          `json:"sourceUrl"`
	Tags        []string        `json:"tags"`
	Likes       int             `json:"likes"`
	Dislikes    int             `json:"dislikes"`
	Saves       int             `json:"saves"`
}

func (d article) toArticle() content.Article {
	return content.Article{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug.Current,
		PublishedAt: d.PublishedAt,
		Summary:     d.Summary,
		Content:     d.Content,
		Category:    d.Category,
		Source:      d.Source,
		SourceURL:   d.SourceURL,
		Tags:        d.Tags,
		Likes:       d.Likes,
		Dislikes:    d.Dislikes,
		Saves:       d.Saves,
	}
}

func toArticles(docs []article) []content.Article {
	out := make([]content.Article, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toArticle())
	}
	return out
}

type tweet struct {
	ID           string    `json:"_id"`
	AuthorName   string    `json:"authorName"`
	AuthorHandle string    `json:"authorHandle"`
	AuthorAvatar string    `json:"authorAvatar"`
	Content      string    `json:"content"`
	SourceURL    string    `json:"sourceUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
	Likes        int       `json:"likes"`
	Retweets     int       `json:"retweets"`
	Views        int       `json:"views"`
}

func (d tweet) toTweet() content.Tweet {
	return content.Tweet(d)
}

type notification struct {
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

type siteSettings struct {
	Title     string   `json:"title"`
	Logo      imageRef `json:"logo"`
	SidebarAd struct {
		Image  imageRef `json:"image"`
		URL    string   `json:"url"`
		Active bool     `json:"active"`
	} `json:"sidebarAd"`
	TopNotification notification `json:"topNotification"`
	AINotification  notification `json:"aiNotification"`
}

func (d siteSettings) toSettings() content.SiteSettings {
	return content.SiteSettings{
		Title: d.Title,
		Logo:  d.Logo.toImage(),
		SidebarAd: content.SidebarAd{
			Image:  d.SidebarAd.Image.toImage(),
			URL:    d.SidebarAd.URL,
			Active: d.SidebarAd.Active,
		},
		TopNotification: content.Notification(d.TopNotification),
		AINotification:  content.Notification(d.AINotification),
	}
}
