package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/popup-context-menu/internal/app"
	flag "github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the configuration file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix        = "POPUP_CONTEXT_MENU_"
	envConfigFile    = envPrefix + "CONFIG"
	envHost          = envPrefix + "HOST"
	envMenuFile      = envPrefix + "MENU_FILE"
	envWidth         = envPrefix + "WIDTH"
	envHeight        = envPrefix + "HEIGHT"
	envBoxWidth      = envPrefix + "BOX_WIDTH"
	envShowFooter    = envPrefix + "FOOTER"
	envTrace         = envPrefix + "TRACE"
	envLogFile       = envPrefix + "LOG_FILE"
	envMarkdownStyle = envPrefix + "MARKDOWN_STYLE"
)

// fileConfig mirrors the TOML file. Pointers distinguish unset keys from zero values.
type fileConfig struct {
	Host          *string `toml:"host"`
	MenuFile      *string `toml:"menu_file"`
	Width         *int    `toml:"width"`
	Height        *int    `toml:"height"`
	BoxWidth      *int    `toml:"box_width"`
	Footer        *bool   `toml:"footer"`
	Trace         *bool   `toml:"trace"`
	LogFile       *string `toml:"log_file"`
	MarkdownStyle *string `toml:"markdown_style"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// layered: config file, then environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := envOrDefault(env, envConfigFile, "")
	if explicit, ok := configFlag(args); ok {
		path = explicit
	}
	var file fileConfig
	if path != "" {
		var err error
		if file, err = readFile(path); err != nil {
			return Config{}, err
		}
	}

	usage := new(strings.Builder)
	fs := flag.NewFlagSet("popup-context-menu", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.String("config", path, "path to a TOML configuration file")
	host := fs.String("host", envOrDefault(env, envHost, strOr(file.Host, "")), "host address to connect to (unix:/path, /path, or host:port)")
	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, strOr(file.MenuFile, "")), "JSON or YAML descriptor to show at startup")
	width := fs.Int("width", envOrInt(env, envWidth, intOr(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, intOr(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	boxWidth := fs.Int("box-width", envOrInt(env, envBoxWidth, intOr(file.BoxWidth, 0)), "outer width of the popup frame (0 uses the default)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, boolOr(file.Footer, false)), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, strOr(file.LogFile, "")), "path to the log file")
	markdownStyle := fs.String("markdown-style", envOrDefault(env, envMarkdownStyle, strOr(file.MarkdownStyle, "")), "glamour style used for titles (dark, light, notty, ...)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, &HelpError{Usage: usage.String()}
		}
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *boxWidth < 0 {
		return Config{}, fmt.Errorf("box-width must be >= 0 (got %d)", *boxWidth)
	}

	cfg := Config{
		App: app.Config{
			Host:          strings.TrimSpace(*host),
			MenuFile:      strings.TrimSpace(*menuFile),
			Width:         *width,
			Height:        *height,
			BoxWidth:      *boxWidth,
			ShowFooter:    *footer,
			MarkdownStyle: *markdownStyle,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"config":        path,
			"host":          *host,
			"menuFile":      *menuFile,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"boxWidth":      strconv.Itoa(*boxWidth),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
			"markdownStyle": *markdownStyle,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// HelpError is returned when -h or --help is given. Usage holds the text
// pflag printed for the flag set.
type HelpError struct {
	Usage string
}

func (e *HelpError) Error() string { return flag.ErrHelp.Error() }

func (e *HelpError) Unwrap() error { return flag.ErrHelp }

// configFlag finds --config in args without parsing the rest, so the file
// can seed every other flag's default.
func configFlag(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			return value, true
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func readFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return cfg, fmt.Errorf("config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func strOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// MustLoad returns configuration or exits. Help requests print usage and
// exit 0.
func MustLoad() Config {
	cfg, err := Load()
	var help *HelpError
	if errors.As(err, &help) {
		fmt.Fprint(os.Stdout, help.Usage)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Host == "" && cfg.App.MenuFile == "" {
		return errors.New("either --host or --menu-file is required")
	}
	return nil
}
