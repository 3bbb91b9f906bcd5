package server

import (
	"time"

	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/store"
)

type ArticleResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	PublishedAt string          `json:"published_at"`
	Summary     string          `json:"summary,omitempty"`
	Content     []content.Block `json:"content,omitempty"`
	Category    string          `json:"category,omitempty"`
	Source      string          `json:"source,omitempty"`
	SourceURL   string          `json:"source_url,omitempty"`
	SourceHost  string          `json:"source_host,omitempty"`
	Tags        []string        `json:"tags"`
	Likes       int             `json:"likes"`
	Dislikes    int             `json:"dislikes"`
	Saves       int             `json:"saves"`
	IsPinned    bool            `json:"is_pinned"`
	Flame       string          `json:"flame,omitempty"`
}

type LinkResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type FeedResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	Category   string            `json:"category"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

type ArticleDetailResponse struct {
	Article ArticleResponse   `json:"article"`
	Related []ArticleResponse `json:"related"`
	Prev    *LinkResponse     `json:"prev"`
	Next    *LinkResponse     `json:"next"`
}

type InteractionResponse struct {
	ID           string `json:"id"`
	Likes        int    `json:"likes"`
	Dislikes     int    `json:"dislikes"`
	Saves        int    `json:"saves"`
	UserLiked    bool   `json:"user_liked"`
	UserDisliked bool   `json:"user_disliked"`
	UserSaved    bool   `json:"user_saved"`
	IsPinned     bool   `json:"is_pinned"`
}

type PreferencesResponse struct {
	AdminMode bool   `json:"admin_mode"`
	Language  string `json:"language"`
	Theme     string `json:"theme"`
}

type InteractionRequest struct {
	Baseline *int `json:"baseline"`
}

type SetLikesRequest struct {
	Likes *int `json:"likes"`
}

type PreferencesRequest struct {
	AdminMode *bool   `json:"admin_mode"`
	Language  *string `json:"language"`
	Theme     *string `json:"theme"`
}

func articleResponse(d feed.DisplayArticle) ArticleResponse {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug,
		PublishedAt: d.PublishedAt.Format(time.RFC3339),
		Summary:     d.Summary,
		Content:     d.Content,
		Category:    d.Category,
		Source:      d.Source,
		SourceURL:   d.SourceURL,
		SourceHost:  feed.SourceHost(d.SourceURL),
		Tags:        tags,
		Likes:       d.Stats.Likes,
		Dislikes:    d.Stats.Dislikes,
		Saves:       d.Stats.Saves,
		IsPinned:    d.Stats.IsPinned,
		Flame:       d.Flame().String(),
	}
}

func articleResponses(ds []feed.DisplayArticle) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(ds))
	for _, d := range ds {
		res = append(res, articleResponse(d))
	}
	return res
}

func linkResponse(a *content.Article) *LinkResponse {
	if a == nil {
		return nil
	}
	return &LinkResponse{ID: a.ID, Title: a.Title, Slug: a.Slug}
}

func interactionResponse(id string, i store.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:           id,
		Likes:        i.Likes,
		Dislikes:     i.Dislikes,
		Saves:        i.Saves,
		UserLiked:    i.UserLiked,
		UserDisliked: i.UserDisliked,
		UserSaved:    i.UserSaved,
		IsPinned:     i.IsPinned,
	}
}
