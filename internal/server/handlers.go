package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/store"
)

func (s *Server) language(c *gin.Context) constants.Language {
	if lang := constants.Language(c.Query("lang")); lang.Supported() {
		return lang
	}
	return s.prefs.Language(c.Request.Context())
}

// contentError answers a failed content query. Missing documents are 404,
// everything else is the upstream's fault.
func (s *Server) contentError(c *gin.Context, msg string, err error) {
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	s.log.Error(msg, "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "Content store unavailable"})
}

func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) GetFeed(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
			return
		}
		before = &t
	}

	page, err := s.source.Articles(ctx, before, category, s.pageSize)
	if err != nil {
		s.contentError(c, "error fetching feed", err)
		return
	}

	// Assemble logs its own failures and still returns the untranslated page
	ds, _ := s.assembler.Assemble(ctx, page, s.language(c))

	res := FeedResponse{
		Articles: articleResponses(ds),
		Category: category,
		HasMore:  len(page) > 0,
	}
	if len(page) > 0 {
		res.NextCursor = page[len(page)-1].PublishedAt.Format(time.RFC3339Nano)
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) GetHot(c *gin.Context) {
	ctx := c.Request.Context()
	page, err := s.source.Articles(ctx, nil, "", s.pageSize)
	if err != nil {
		s.contentError(c, "error fetching hot articles", err)
		return
	}
	c.JSON(http.StatusOK, articleResponses(feed.Hot(page, s.store, constants.HotLimit)))
}

func (s *Server) GetTweets(c *gin.Context) {
	tweets, err := s.source.Tweets(c.Request.Context(), constants.TweetLimit)
	if err != nil {
		s.contentError(c, "error fetching tweets", err)
		return
	}
	if tweets == nil {
		tweets = []content.Tweet{}
	}
	c.JSON(http.StatusOK, tweets)
}

func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.source.SiteSettings(c.Request.Context())
	if err != nil {
		s.contentError(c, "error fetching site settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) GetArticle(c *gin.Context) {
	ctx := c.Request.Context()
	a, err := s.source.ArticleBySlug(ctx, c.Param("slug"))
	if err != nil {
		s.contentError(c, "error fetching article", err)
		return
	}

	// untranslated on failure, already logged by One
	d, _ := s.assembler.One(ctx, a, s.language(c))

	res := ArticleDetailResponse{Article: articleResponse(d), Related: []ArticleResponse{}}
	detail, err := content.LoadDetail(ctx, s.source, a, constants.RelatedLimit)
	if err != nil {
		s.log.Warn("error fetching related articles", "id", a.ID, "error", err)
	} else {
		res.Related = articleResponses(feed.Reconcile(detail.Related, s.store))
		res.Prev = linkResponse(detail.Adjacent.Prev)
		res.Next = linkResponse(detail.Adjacent.Next)
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) GetRelated(c *gin.Context) {
	ctx := c.Request.Context()
	a, err := s.source.ArticleBySlug(ctx, c.Param("slug"))
	if err != nil {
		s.contentError(c, "error fetching article", err)
		return
	}
	related, err := s.source.Related(ctx, a.ID, constants.RelatedLimit)
	if err != nil {
		s.contentError(c, "error fetching related articles", err)
		return
	}
	c.JSON(http.StatusOK, articleResponses(feed.Reconcile(related, s.store)))
}

func (s *Server) resolve(c *gin.Context) (*content.Article, error) {
	return feed.Find(c.Request.Context(), s.source, c.Param("slug"), s.pageSize, feed.DefaultFindPages)
}

// baseline resolves the article an interaction applies to and the counter
// it seeds from: the one in the request body when given, else the article's
// own. Records are always keyed by article id. An article the content store
// does not know is accepted only with a body baseline, under the given ref.
func (s *Server) baseline(c *gin.Context, pick func(*content.Article) int) (string, int, bool) {
	var req InteractionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return "", 0, false
		}
	}

	a, err := s.resolve(c)
	switch {
	case err == nil:
		base := pick(a)
		if req.Baseline != nil {
			base = *req.Baseline
		}
		return a.ID, base, true
	case errors.Is(err, content.ErrNotFound) && req.Baseline != nil:
		return c.Param("slug"), *req.Baseline, true
	}
	s.contentError(c, "error resolving article", err)
	return "", 0, false
}

type interaction func(ctx context.Context, id string, baseline int) (store.Interaction, error)

func (s *Server) interact(c *gin.Context, pick func(*content.Article) int, do interaction) {
	id, base, ok := s.baseline(c, pick)
	if !ok {
		return
	}
	rec, err := do(c.Request.Context(), id, base)
	if err != nil {
		// kept in memory; the next successful write persists it
		s.log.Warn("interaction not persisted", "id", id, "error", err)
	}
	c.JSON(http.StatusOK, interactionResponse(id, rec))
}

func (s *Server) PostLike(c *gin.Context) {
	s.interact(c, func(a *content.Article) int { return a.Likes }, s.store.Like)
}

func (s *Server) PostDislike(c *gin.Context) {
	s.interact(c, func(a *content.Article) int { return a.Dislikes }, s.store.Dislike)
}

func (s *Server) PostSave(c *gin.Context) {
	s.interact(c, func(a *content.Article) int { return a.Saves }, s.store.Save)
}

func (s *Server) PostPin(c *gin.Context) {
	a, err := s.resolve(c)
	if err != nil {
		s.contentError(c, "error resolving article", err)
		return
	}
	rec, err := s.store.TogglePin(c.Request.Context(), a.ID)
	if err != nil {
		s.log.Warn("pin not persisted", "id", a.ID, "error", err)
	}
	c.JSON(http.StatusOK, interactionResponse(a.ID, rec))
}

func (s *Server) PutLikes(c *gin.Context) {
	var req SetLikesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Likes == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "likes is required"})
		return
	}
	a, err := s.resolve(c)
	if err != nil {
		s.contentError(c, "error resolving article", err)
		return
	}
	rec, err := s.store.SetLikes(c.Request.Context(), a.ID, *req.Likes)
	if err != nil {
		s.log.Warn("like count not persisted", "id", a.ID, "error", err)
	}
	c.JSON(http.StatusOK, interactionResponse(a.ID, rec))
}

func (s *Server) preferences(ctx context.Context) PreferencesResponse {
	return PreferencesResponse{
		AdminMode: s.prefs.AdminMode(ctx),
		Language:  string(s.prefs.Language(ctx)),
		Theme:     string(s.prefs.Theme(ctx)),
	}
}

func (s *Server) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, s.preferences(c.Request.Context()))
}

func (s *Server) PutPreferences(c *gin.Context) {
	ctx := c.Request.Context()
	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// validate everything before writing anything
	if req.Language != nil && !constants.Language(*req.Language).Supported() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
		return
	}
	if req.Theme != nil {
		if t := constants.Theme(*req.Theme); t != constants.DarkTheme && t != constants.LightTheme {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported theme"})
			return
		}
	}

	var err error
	if req.Language != nil {
		err = s.prefs.SetLanguage(ctx, constants.Language(*req.Language))
	}
	if err == nil && req.AdminMode != nil {
		err = s.prefs.SetAdminMode(ctx, *req.AdminMode)
	}
	if err == nil && req.Theme != nil {
		err = s.prefs.SetTheme(ctx, constants.Theme(*req.Theme))
	}
	if err != nil {
		s.log.Error("error saving preferences", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	c.JSON(http.StatusOK, s.preferences(ctx))
}
