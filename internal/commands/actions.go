package commands

import (
	"context"
	"fmt"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/store"
)

type action func(ctx context.Context, id string, baseline int) (store.Interaction, error)

func (c *Commands) interact(ctx context.Context, ref, verb string, baselineOf func(likes, dislikes, saves int) int, do action) error {
	a, err := c.find(ctx, ref)
	if err != nil {
		return fmt.Errorf("commands.%s: %w", verb, err)
	}
	rec, err := do(ctx, a.ID, baselineOf(a.Likes, a.Dislikes, a.Saves))
	if err != nil {
		// the change is kept for this run even though it was not saved
		c.log.Warn("interaction not persisted", "id", a.ID, "error", err)
	}
	fmt.Fprintf(c.out, "%s %s: %d likes, %d dislikes, %d saves\n", verb, a.Title, rec.Likes, rec.Dislikes, rec.Saves)
	return nil
}

func (c *Commands) Like(ctx context.Context, ref string) error {
	return c.interact(ctx, ref, "Liked", func(l, _, _ int) int { return l }, c.store.Like)
}

func (c *Commands) Dislike(ctx context.Context, ref string) error {
	return c.interact(ctx, ref, "Disliked", func(_, d, _ int) int { return d }, c.store.Dislike)
}

func (c *Commands) Save(ctx context.Context, ref string) error {
	return c.interact(ctx, ref, "Saved", func(_, _, s int) int { return s }, c.store.Save)
}

// Pin toggles the pin on an article. Admin only.
func (c *Commands) Pin(ctx context.Context, ref string) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	a, err := c.find(ctx, ref)
	if err != nil {
		return fmt.Errorf("commands.Pin: %w", err)
	}
	rec, err := c.store.TogglePin(ctx, a.ID)
	if err != nil {
		c.log.Warn("pin not persisted", "id", a.ID, "error", err)
	}
	if rec.IsPinned {
		fmt.Fprintf(c.out, "Pinned %s\n", a.Title)
	} else {
		fmt.Fprintf(c.out, "Unpinned %s\n", a.Title)
	}
	return nil
}

// SetLikes overrides the like count of an article. Admin only.
func (c *Commands) SetLikes(ctx context.Context, ref string, n int) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	a, err := c.find(ctx, ref)
	if err != nil {
		return fmt.Errorf("commands.SetLikes: %w", err)
	}
	rec, err := c.store.SetLikes(ctx, a.ID, n)
	if err != nil {
		c.log.Warn("like count not persisted", "id", a.ID, "error", err)
	}
	fmt.Fprintf(c.out, "%s now has %d likes\n", a.Title, rec.Likes)
	return nil
}

func (c *Commands) Admin(ctx context.Context) error {
	on, err := c.prefs.ToggleAdminMode(ctx)
	if err != nil {
		return err
	}
	state := "off"
	if on {
		state = "on"
	}
	fmt.Fprintf(c.out, "Admin mode %s\n", state)
	return nil
}

// Language prints the current language, or switches to code when given.
func (c *Commands) Language(ctx context.Context, code string) error {
	if code == "" {
		fmt.Fprintln(c.out, c.prefs.Language(ctx))
		return nil
	}
	if err := c.prefs.SetLanguage(ctx, constants.Language(code)); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Language set to %s\n", code)
	return nil
}

func (c *Commands) Theme(ctx context.Context) error {
	theme, err := c.prefs.ToggleTheme(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Theme set to %s\n", theme)
	return nil
}
