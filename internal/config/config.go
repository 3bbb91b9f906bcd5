package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/guyfedwards/newsdesk/internal/constants"
)

//go:embed default_config.yml
var defaultConfig string

var (
	ErrFeedAlreadyExists  = errors.New("config.AddFeed: feed already exists")
	ErrIncludeLoop        = errors.New("config.Load: include loop detected")
	ErrUnknownSource      = errors.New("config: unknown source")
	ErrUnknownStorage     = errors.New("config: unknown storage backend")
	DefaultConfigDirName  = "newsdesk"
	DefaultConfigFileName = "default.yml"
	DefaultLogFileName    = "newsdesk.log"
	DefaultListFormat     = `{{ printf "%3d" .Index }}. {{ if .Pinned }}{{ .PinIcon }} {{ end }}{{ if .Hot }}{{ .FlameIcon }} {{ end }}{{ .Item.Title }} · {{ .Source }} · {{ .Age }} · {{ .Likes }}♥ [{{ .Item.ID }}]`
)

// Content sources
const (
	SourceSanity   = "sanity"
	SourceMiniflux = "miniflux"
	SourceRSS      = "rss"
	SourceMock     = "mock"
)

// Storage backends
const (
	StorageBadger = "badger"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Feed struct {
	URL      string `yaml:"url"`
	Name     string `yaml:"name,omitempty"`
	Category string `yaml:"category,omitempty"`
}

type SanityBackend struct {
	ProjectID         string  `yaml:"projectId"`
	Dataset           string  `yaml:"dataset,omitempty"`
	APIVersion        string  `yaml:"apiVersion,omitempty"`
	Token             string  `yaml:"token,omitempty"`
	UseCDN            bool    `yaml:"useCdn,omitempty"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond,omitempty"`
}

type MinifluxBackend struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

type Storage struct {
	Backend  string `yaml:"backend,omitempty"`
	Path     string `yaml:"path,omitempty"`
	RedisURL string `yaml:"redisUrl,omitempty"`
}

type Theme struct {
	Glamour           string `yaml:"glamour,omitempty"`
	TitleColor        string `yaml:"titleColor,omitempty"`
	TitleColorFg      string `yaml:"titleColorFg,omitempty"`
	FilterColor       string `yaml:"filterColor,omitempty"`
	SelectedItemColor string `yaml:"selectedItemColor,omitempty"`
	PinIcon           string `yaml:"pinIcon,omitempty"`
	FlameIcon         string `yaml:"flameIcon,omitempty"`
}

type Server struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// Config contains YAML-serializable configuration settings
type Config struct {
	Source           string           `yaml:"source"`
	Sanity           *SanityBackend   `yaml:"sanity,omitempty"`
	Miniflux         *MinifluxBackend `yaml:"miniflux,omitempty"`
	Feeds            []Feed           `yaml:"feeds"`
	Storage          Storage          `yaml:"storage"`
	Language         string           `yaml:"language,omitempty"`
	PageSize         int              `yaml:"pageSize,omitempty"`
	TranslationDelay time.Duration    `yaml:"translationDelay,omitempty"`
	Theme            Theme            `yaml:"theme,omitempty"`
	HTTPOptions      *HTTPOptions     `yaml:"http,omitempty"`
	Server           Server           `yaml:"server,omitempty"`
	ListFormat       string           `yaml:"listformat,omitempty"`
	Include          []string         `yaml:"include,omitempty"`
}

// Runtime contains non-serializable runtime settings and the YAML config
type Runtime struct {
	ConfigPath   string
	ConfigDir    string
	PreviewFeeds []Feed
	Version      string
	Create       bool
	Config       *Config

	env       map[string]string
	overrides Config
}

var DefaultTheme = Theme{
	Glamour:           "dark",
	SelectedItemColor: "170",
	TitleColor:        "62",
	TitleColorFg:      "231",
	FilterColor:       "62",
	PinIcon:           "\U0001F4CC",
	FlameIcon:         "\U0001F525",
}

func updateConfigPathIfDir(configPath string) string {
	stat, err := os.Stat(configPath)
	if err == nil && stat.IsDir() {
		configPath = filepath.Join(configPath, DefaultConfigFileName)
	}

	return configPath
}

// defaultStoragePath derives the local store location from the config file
// path: "/path/to/work.yml" -> "/path/to/work.kv" for badger.
func defaultStoragePath(configPath, backend string) string {
	dir, basename := filepath.Split(configPath)
	ext := filepath.Ext(basename)
	if ext != "" {
		basename = basename[:len(basename)-len(ext)]
	}
	if backend == StorageSQLite {
		return filepath.Join(dir, basename+".db")
	}
	return filepath.Join(dir, basename+".kv")
}

func getConfigDir() string {
	configDir := os.Getenv("NEWSDESK_CONFIG_DIR")
	if configDir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			userConfigDir = ""
		}

		configDir = filepath.Join(userConfigDir, DefaultConfigDirName)
	}

	return configDir
}

func New() *Runtime {
	configDir := getConfigDir()
	configPath := filepath.Join(configDir, DefaultConfigFileName)

	r := &Runtime{
		ConfigPath:   configPath,
		ConfigDir:    configDir + string(filepath.Separator),
		PreviewFeeds: []Feed{},
		env:          map[string]string{},
		Config: &Config{
			Feeds:            []Feed{},
			Storage:          Storage{Backend: StorageBadger},
			Language:         string(constants.DefaultLanguage),
			PageSize:         constants.PageSize,
			TranslationDelay: constants.DefaultTranslationDelay,
			Theme:            DefaultTheme,
			HTTPOptions: &HTTPOptions{
				MinTLSVersion: "TLS12",
				Timeout:       DefaultHTTPTimeout,
			},
			Server:     Server{Addr: ":8080"},
			ListFormat: DefaultListFormat,
		},
	}

	if file := os.Getenv("NEWSDESK_CONFIG_FILE"); file != "" {
		r = r.WithConfigPath(file)
	}
	return r
}

func (r *Runtime) WithConfigPath(configPath string) *Runtime {
	if configPath != "" {
		r.ConfigPath = updateConfigPathIfDir(configPath)
		r.ConfigDir, _ = filepath.Split(r.ConfigPath)
	}
	return r
}

// WithConfigDir looks for the config file in dir instead of the default
// directory.
func (r *Runtime) WithConfigDir(dir string) *Runtime {
	if dir != "" {
		name := filepath.Base(r.ConfigPath)
		r.ConfigDir = filepath.Clean(dir) + string(filepath.Separator)
		r.ConfigPath = filepath.Join(dir, name)
	}
	return r
}

// WithConfigName selects a config file by name within the config directory.
// The .yml extension is optional.
func (r *Runtime) WithConfigName(name string) *Runtime {
	if name != "" {
		if filepath.Ext(name) == "" {
			name += ".yml"
		}
		r.ConfigPath = filepath.Join(r.ConfigDir, name)
	}
	return r
}

func (r *Runtime) WithPreviewFeeds(previewFeeds []string) *Runtime {
	if len(previewFeeds) > 0 {
		var f []Feed
		for _, feedURL := range previewFeeds {
			f = append(f, Feed{URL: feedURL})
		}
		r.PreviewFeeds = f
	}
	return r
}

func (r *Runtime) WithVersion(version string) *Runtime {
	r.Version = version
	return r
}

func (r *Runtime) WithCreate(create bool) *Runtime {
	r.Create = create
	return r
}

func (r *Runtime) WithSource(source string) *Runtime {
	r.overrides.Source = source
	return r
}

func (r *Runtime) WithStorage(backend string) *Runtime {
	r.overrides.Storage.Backend = backend
	return r
}

func (r *Runtime) WithStoragePath(path string) *Runtime {
	r.overrides.Storage.Path = path
	return r
}

func (r *Runtime) WithServerAddr(addr string) *Runtime {
	r.overrides.Server.Addr = addr
	return r
}

// WithDotEnv reads KEY=value files. Values from the process environment
// take precedence. Missing files are skipped.
func (r *Runtime) WithDotEnv(paths ...string) *Runtime {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		values, err := godotenv.Read(p)
		if err != nil {
			continue
		}
		for k, v := range values {
			if _, ok := r.env[k]; !ok {
				r.env[k] = v
			}
		}
	}
	return r
}

func (r *Runtime) getenv(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return r.env[key]
}

func (r *Runtime) IsPreviewMode() bool {
	return len(r.PreviewFeeds) > 0
}

// resolveIncludePath resolves an include path relative to the config directory
// if it's not an absolute path
func resolveIncludePath(configDir, includePath string) string {
	if filepath.IsAbs(includePath) {
		return includePath
	}
	return filepath.Join(configDir, includePath)
}

func loadConfigFile(path string) (*Config, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.loadConfigFile: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(rawData, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config.loadConfigFile: %w", err)
	}

	return &cfg, nil
}

// loadConfigWithIncludes recursively loads config files with include support
// visited tracks files already loaded to detect include loops
func (r *Runtime) loadConfigWithIncludes(configPath string, visited map[string]bool) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.loadConfigWithIncludes: %w", err)
	}

	if visited[absPath] {
		return nil, ErrIncludeLoop
	}
	visited[absPath] = true

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	if len(cfg.Include) > 0 {
		configDir := filepath.Dir(configPath)
		baseConfig := &Config{}

		for _, includePath := range cfg.Include {
			resolvedPath := resolveIncludePath(configDir, includePath)

			includedCfg, err := r.loadConfigWithIncludes(resolvedPath, visited)
			if err != nil {
				return nil, fmt.Errorf("config.loadConfigWithIncludes: error loading %s: %w", includePath, err)
			}

			if err := mergo.Merge(baseConfig, includedCfg, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("config.loadConfigWithIncludes: error merging %s: %w", includePath, err)
			}
		}

		// the including file wins over everything it includes
		if err := mergo.Merge(baseConfig, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config.loadConfigWithIncludes: error merging base config: %w", err)
		}
		cfg = baseConfig
	}

	return cfg, nil
}

// Load reads the config file (creating it when asked to), then applies the
// environment and finally the values set with the With* methods.
func (r *Runtime) Load() (*Runtime, error) {
	if err := r.setupConfigDir(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	_, statErr := os.Stat(r.ConfigPath)
	if !(r.IsPreviewMode() && errors.Is(statErr, os.ErrNotExist)) {
		visited := make(map[string]bool)
		fileConfig, err := r.loadConfigWithIncludes(r.ConfigPath, visited)
		if err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}

		if err := mergo.Merge(r.Config, fileConfig, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config.Load: error merging config: %w", err)
		}
	}

	r.applyEnv()

	if err := mergo.Merge(r.Config, r.overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("config.Load: error merging overrides: %w", err)
	}

	if r.IsPreviewMode() {
		r.Config.Source = SourceRSS
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Runtime) applyEnv() {
	if id := r.getenv("SANITY_PROJECT_ID"); id != "" {
		if r.Config.Sanity == nil {
			r.Config.Sanity = &SanityBackend{}
		}
		r.Config.Sanity.ProjectID = id
	}
	if r.Config.Sanity != nil {
		if v := r.getenv("SANITY_DATASET"); v != "" {
			r.Config.Sanity.Dataset = v
		}
		if v := r.getenv("SANITY_API_VERSION"); v != "" {
			r.Config.Sanity.APIVersion = v
		}
		if v := r.getenv("SANITY_TOKEN"); v != "" {
			r.Config.Sanity.Token = v
		}
		if v := r.getenv("SANITY_USE_CDN"); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				r.Config.Sanity.UseCDN = b
			}
		}
	}
	if v := r.getenv("REDIS_URL"); v != "" {
		r.Config.Storage.RedisURL = v
	}
}

func (r *Runtime) validate() error {
	switch r.Config.Source {
	case "", SourceSanity, SourceMiniflux, SourceRSS, SourceMock:
	default:
		return fmt.Errorf("config.Load: %w: %q", ErrUnknownSource, r.Config.Source)
	}

	switch r.Config.Storage.Backend {
	case StorageBadger, StorageSQLite, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("config.Load: %w: %q", ErrUnknownStorage, r.Config.Storage.Backend)
	}

	if r.Config.HTTPOptions != nil && r.Config.HTTPOptions.MinTLSVersion != "" {
		if _, err := TLSVersion(r.Config.HTTPOptions.MinTLSVersion); err != nil {
			return err
		}
	}

	if !constants.Language(r.Config.Language).Supported() {
		return fmt.Errorf("config.Load: unsupported language %q", r.Config.Language)
	}

	return nil
}

// ContentSource resolves which backend articles come from. Without an
// explicit choice sanity is used when it is configured, the built-in mock
// data otherwise.
func (r *Runtime) ContentSource() string {
	if r.Config.Source != "" {
		return r.Config.Source
	}
	if r.Config.Sanity != nil && r.Config.Sanity.ProjectID != "" {
		return SourceSanity
	}
	return SourceMock
}

// StoragePath is where the badger or sqlite store lives, next to the config
// file unless configured otherwise.
func (r *Runtime) StoragePath() string {
	if r.Config.Storage.Path != "" {
		return r.Config.Storage.Path
	}
	return defaultStoragePath(r.ConfigPath, r.Config.Storage.Backend)
}

func (r *Runtime) LogPath() string {
	return filepath.Join(r.ConfigDir, DefaultLogFileName)
}

// Write writes to a config file
func (r *Runtime) Write() error {
	str, err := yaml.Marshal(r.Config)
	if err != nil {
		return fmt.Errorf("config.Write: %w", err)
	}

	err = os.WriteFile(r.ConfigPath, []byte(str), 0644)
	if err != nil {
		return fmt.Errorf("config.Write: %w", err)
	}

	return nil
}

func (r *Runtime) AddFeed(feed Feed) error {
	_, err := r.Load()
	if err != nil {
		return fmt.Errorf("config.AddFeed: %w", err)
	}

	for _, f := range r.Config.Feeds {
		if f.URL == feed.URL {
			return ErrFeedAlreadyExists
		}
	}

	r.Config.Feeds = append(r.Config.Feeds, feed)

	err = r.Write()
	if err != nil {
		return fmt.Errorf("config.AddFeed: %w", err)
	}

	return nil
}

func (r *Runtime) GetFeeds() []Feed {
	if r.IsPreviewMode() {
		return r.PreviewFeeds
	}

	return r.Config.Feeds
}

func (r *Runtime) setupConfigDir() error {
	_, err := os.Stat(r.ConfigPath)

	// if configFile exists, do nothing
	if !errors.Is(err, os.ErrNotExist) {
		return nil
	}

	// preview mode runs on defaults and the feeds given on the command line
	if r.IsPreviewMode() {
		return nil
	}

	if !r.Create {
		return fmt.Errorf("setupConfigDir: config file does not exist: %s (use --create to create it)", r.ConfigPath)
	}

	err = os.MkdirAll(r.ConfigDir, 0755)
	if err != nil {
		return fmt.Errorf("setupConfigDir: %w", err)
	}

	err = os.WriteFile(r.ConfigPath, []byte(defaultConfig), 0644)
	if err != nil {
		return fmt.Errorf("setupConfigDir: %w", err)
	}

	return nil
}
