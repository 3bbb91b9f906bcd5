package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/guyfedwards/newsdesk/internal/commands"
	"github.com/guyfedwards/newsdesk/internal/config"
	"github.com/guyfedwards/newsdesk/internal/logging"
	"github.com/guyfedwards/newsdesk/internal/version"
)

type Options struct {
	Verbose      bool     `short:"v" long:"verbose" description:"Show verbose logging"`
	ConfigPath   string   `short:"c" long:"config-path" description:"Location of config.yml" env:"NEWSDESK_CONFIG_FILE"`
	ConfigDir    string   `short:"d" long:"config-dir" description:"Where to find config files"`
	ConfigName   string   `short:"N" long:"config-name" description:"Name of a config file in config dir"`
	PreviewFeeds []string `short:"f" long:"feed" description:"Feed(s) URL(s) for preview"`
	Create       bool     `long:"create" description:"Create config file if it doesn't exist"`
	Source       string   `short:"s" long:"source" description:"Content source" choice:"sanity" choice:"miniflux" choice:"rss" choice:"mock"`
	Storage      string   `long:"storage" description:"Interaction storage backend" choice:"badger" choice:"sqlite" choice:"redis" choice:"memory"`
	StoragePath  string   `long:"storage-path" description:"Location of the interaction store"`
}

var (
	options Options
)

// Setup subcommands

type List struct {
	Category string `short:"C" long:"category" description:"Only show this category"`
	Pages    int    `short:"n" long:"pages" default:"1" description:"Number of pages to load"`
}

func (r *List) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.List(ctx, r.Category, r.Pages)
	})
}

type articleRef struct {
	Ref string `positional-arg-name:"ARTICLE" required:"yes" description:"Article id or slug"`
}

type Show struct {
	Positional articleRef `positional-args:"yes"`
}

func (r *Show) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Show(ctx, r.Positional.Ref)
	})
}

type Like struct {
	Positional articleRef `positional-args:"yes"`
}

func (r *Like) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Like(ctx, r.Positional.Ref)
	})
}

type Dislike struct {
	Positional articleRef `positional-args:"yes"`
}

func (r *Dislike) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Dislike(ctx, r.Positional.Ref)
	})
}

type Save struct {
	Positional articleRef `positional-args:"yes"`
}

func (r *Save) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Save(ctx, r.Positional.Ref)
	})
}

type Pin struct {
	Positional articleRef `positional-args:"yes"`
}

func (r *Pin) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Pin(ctx, r.Positional.Ref)
	})
}

type SetLikes struct {
	Positional struct {
		Ref   string `positional-arg-name:"ARTICLE" required:"yes" description:"Article id or slug"`
		Likes int    `positional-arg-name:"LIKES" required:"yes"`
	} `positional-args:"yes"`
}

func (r *SetLikes) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.SetLikes(ctx, r.Positional.Ref, r.Positional.Likes)
	})
}

type Admin struct{}

func (r *Admin) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Admin(ctx)
	})
}

type Lang struct {
	Positional struct {
		Code string `positional-arg-name:"LANG" description:"One of en, zh, ja, ko, fr, de"`
	} `positional-args:"yes"`
}

func (r *Lang) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Language(ctx, r.Positional.Code)
	})
}

type Theme struct{}

func (r *Theme) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Theme(ctx)
	})
}

type Hot struct{}

func (r *Hot) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Hot(ctx)
	})
}

type Tweets struct{}

func (r *Tweets) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Tweets(ctx)
	})
}

type Settings struct{}

func (r *Settings) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Settings(ctx)
	})
}

type Config struct{}

func (r *Config) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.ShowConfig()
	})
}

type Add struct {
	Category   string `short:"C" long:"category" description:"Category of the feed's articles"`
	Positional struct {
		Url  string `positional-arg-name:"URL" required:"yes"`
		Name string `positional-arg-name:"NAME"`
	} `positional-args:"yes"`
}

func (r *Add) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Add(r.Positional.Url, r.Positional.Name, r.Category)
	})
}

type Serve struct {
	Addr string `short:"a" long:"addr" description:"Address to listen on"`
}

func (r *Serve) Execute(args []string) error {
	return run(func(ctx context.Context, cmds *commands.Commands) error {
		return cmds.Serve(ctx)
	}, func(rt *config.Runtime) *config.Runtime {
		return rt.WithServerAddr(r.Addr)
	})
}

type Version struct{}

func (r *Version) Execute(args []string) error {
	fmt.Println(version.String())
	return nil
}

func loadRuntime(overrides ...func(*config.Runtime) *config.Runtime) (*config.Runtime, error) {
	runtime := config.New().
		WithConfigPath(options.ConfigPath).
		WithConfigDir(options.ConfigDir).
		WithConfigName(options.ConfigName).
		WithPreviewFeeds(options.PreviewFeeds).
		WithVersion(version.BuildVersion).
		WithCreate(options.Create).
		WithDotEnv(".env").
		// Apply command line options that should override
		// config file options.
		WithSource(options.Source).
		WithStorage(options.Storage).
		WithStoragePath(options.StoragePath)
	for _, o := range overrides {
		runtime = o(runtime)
	}
	return runtime.Load()
}

func getCmds(ctx context.Context, log *slog.Logger, overrides ...func(*config.Runtime) *config.Runtime) (*commands.Commands, error) {
	runtime, err := loadRuntime(overrides...)
	if err != nil {
		return nil, err
	}
	cmds, err := commands.Open(ctx, runtime, log)
	if err != nil {
		return nil, fmt.Errorf("main.go: %w", err)
	}
	return cmds, nil
}

// run executes fn with commands logging to stderr, cancelled on interrupt.
func run(fn func(context.Context, *commands.Commands) error, overrides ...func(*config.Runtime) *config.Runtime) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmds, err := getCmds(ctx, logging.New(options.Verbose, os.Stderr), overrides...)
	if err != nil {
		return err
	}
	defer cmds.Close()
	return fn(ctx, cmds)
}

// runTUI starts the interactive reader. The terminal belongs to the UI, so
// logs go to a file next to the config.
func runTUI() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	runtime, err := loadRuntime()
	if err != nil {
		return err
	}
	f, err := logging.File(runtime.LogPath())
	if err != nil {
		return fmt.Errorf("main.go: %w", err)
	}
	defer f.Close()

	cmds, err := commands.Open(ctx, runtime, logging.New(options.Verbose, f))
	if err != nil {
		return fmt.Errorf("main.go: %w", err)
	}
	defer cmds.Close()
	return cmds.TUI(ctx)
}

func main() {
	parser := flags.NewParser(&options, flags.Default)
	// allow newsdesk to be run without any subcommands
	parser.SubcommandsOptional = true

	// add commands
	parser.AddCommand("list", "List articles", "List the latest articles, pinned first", &List{})
	parser.AddCommand("show", "Show article", "Show an article with related and adjacent articles", &Show{})
	parser.AddCommand("like", "Like article", "Like an article", &Like{})
	parser.AddCommand("dislike", "Dislike article", "Dislike an article", &Dislike{})
	parser.AddCommand("save", "Save article", "Save an article", &Save{})
	parser.AddCommand("pin", "Toggle pin", "Pin or unpin an article (admin mode)", &Pin{})
	parser.AddCommand("set-likes", "Set likes", "Override the like count of an article (admin mode)", &SetLikes{})
	parser.AddCommand("admin", "Toggle admin mode", "Turn admin mode on or off", &Admin{})
	parser.AddCommand("lang", "Language", "Show or set the display language", &Lang{})
	parser.AddCommand("theme", "Toggle theme", "Switch between the dark and light theme", &Theme{})
	parser.AddCommand("hot", "Hot articles", "List the most liked recent articles", &Hot{})
	parser.AddCommand("tweets", "Trending tweets", "Show trending tweets", &Tweets{})
	parser.AddCommand("settings", "Site settings", "Show site notifications", &Settings{})
	parser.AddCommand("config", "Show config", "Show configuration", &Config{})
	parser.AddCommand("add", "Add feed", "Add a new RSS feed", &Add{})
	parser.AddCommand("serve", "Serve API", "Serve the feed and interactions over HTTP", &Serve{})
	parser.AddCommand("version", "Show Version", "Display version information", &Version{})

	// parse the command line arguments
	_, err := parser.Parse()
	// check for help flag
	if err != nil {
		// the parser already printed err
		if flagErr, ok := err.(*flags.Error); ok {
			if flagErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			parser.WriteHelp(os.Stdout)
			os.Exit(2)
		}
		os.Exit(1)
	}

	// no subcommand or help flag, run the TUI
	if parser.Active == nil {
		if err := runTUI(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
}
