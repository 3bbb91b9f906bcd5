// Package server exposes the feed and the interaction store as a JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/prefs"
	"github.com/guyfedwards/newsdesk/internal/store"
)

type Options struct {
	Source         content.Source
	Store          *store.Store
	Prefs          *prefs.Prefs
	Assembler      *feed.Assembler
	PageSize       int
	AllowedOrigins []string
	Log            *slog.Logger
}

type Server struct {
	source    content.Source
	store     *store.Store
	prefs     *prefs.Prefs
	assembler *feed.Assembler
	pageSize  int
	log       *slog.Logger
	engine    *gin.Engine
}

func New(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = constants.PageSize
	}
	s := &Server{
		source:    opts.Source,
		store:     opts.Store,
		prefs:     opts.Prefs,
		assembler: opts.Assembler,
		pageSize:  opts.PageSize,
		log:       opts.Log,
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/health", s.GetHealth)
	r.GET("/feed", s.GetFeed)
	r.GET("/hot", s.GetHot)
	r.GET("/tweets", s.GetTweets)
	r.GET("/settings", s.GetSettings)
	r.GET("/articles/:slug", s.GetArticle)
	r.GET("/articles/:slug/related", s.GetRelated)
	r.POST("/articles/:slug/like", s.PostLike)
	r.POST("/articles/:slug/dislike", s.PostDislike)
	r.POST("/articles/:slug/save", s.PostSave)

	admin := r.Group("/articles/:slug", s.requireAdmin)
	admin.POST("/pin", s.PostPin)
	admin.PUT("/likes", s.PutLikes)

	r.GET("/preferences", s.GetPreferences)
	r.PUT("/preferences", s.PutPreferences)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) requireAdmin(c *gin.Context) {
	if !s.prefs.AdminMode(c.Request.Context()) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin mode required"})
		return
	}
	c.Next()
}
