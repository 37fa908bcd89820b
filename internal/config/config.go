package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routeshell/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "routeshell.yaml"

	// EnvFileName is the optional dotenv file read next to the config file.
	EnvFileName = ".env"

	// EnvPrefix prefixes every environment override key.
	EnvPrefix = "ROUTESHELL_"

	// DefaultRoutes is the default routes directory.
	DefaultRoutes = "app"

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "127.0.0.1:7070"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "routeshell"
)

// Config represents the complete routeshell.yaml configuration.
type Config struct {
	// Name is the application name, shown as the default window title.
	Name string `yaml:"name,omitempty"`

	// Routes configures route discovery.
	Routes RoutesConfig `yaml:"routes"`

	// Scripts configures interpreted route files.
	Scripts ScriptsConfig `yaml:"scripts,omitempty"`

	// Log configures the process logger.
	Log LogConfig `yaml:"log"`

	// Surface configures the display surface.
	Surface SurfaceConfig `yaml:"surface"`

	// Inspector configures the headless HTTP inspector.
	Inspector InspectorConfig `yaml:"inspector"`

	// Metrics configures Prometheus instrumentation.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing configures OpenTelemetry navigation spans.
	Tracing TracingConfig `yaml:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RoutesConfig contains route discovery settings.
type RoutesConfig struct {
	// Dir is the routes directory, relative to the project root.
	Dir string `yaml:"dir" validate:"required"`

	// Exclude replaces the default list of ignored directory names.
	Exclude []string `yaml:"exclude,omitempty" validate:"dive,required,excludesall=/"`

	// Initial is the path opened at startup.
	Initial string `yaml:"initial" validate:"required,startswith=/"`
}

// ScriptsConfig contains interpreter settings.
type ScriptsConfig struct {
	// AllowedImports replaces the default standard library allow-list.
	AllowedImports []string `yaml:"allowed_imports,omitempty" validate:"dive,required"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// SurfaceConfig contains headless surface dimensions.
type SurfaceConfig struct {
	Width  int `yaml:"width" validate:"min=20,max=1000"`
	Height int `yaml:"height" validate:"min=5,max=1000"`
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" validate:"required,hostname_port"`

	// Stylesheets are linked from the HTML frame view.
	Stylesheets []string `yaml:"stylesheets,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"required_if=Enabled true"`

	// Exclude lists route prefixes whose navigations are not counted.
	Exclude []string `yaml:"exclude,omitempty" validate:"dive,startswith=/"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP/gRPC collector address.
	Endpoint string `yaml:"endpoint,omitempty" validate:"required_if=Enabled true"`

	// Insecure disables TLS to the collector.
	Insecure bool `yaml:"insecure,omitempty"`

	// SampleRatio is the fraction of root navigations traced.
	SampleRatio float64 `yaml:"sample_ratio" validate:"min=0,max=1"`

	// IncludeParams records route parameters as span attributes.
	IncludeParams bool `yaml:"include_params,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Routes: RoutesConfig{
			Dir:     DefaultRoutes,
			Initial: "/",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Surface: SurfaceConfig{
			Width:  80,
			Height: 24,
		},
		Inspector: InspectorConfig{
			Addr: DefaultInspectorAddr,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for routeshell.yaml and an optional .env in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path. Values from a
// .env file next to it and from ROUTESHELL_* environment variables override
// the file, in that order.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E122").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " at the project root, or pass --routes")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithFile(path).
			WithDetail("Failed to parse " + ConfigFileName).
			WithSuggestion("Check that " + ConfigFileName + " is valid YAML").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	env, err := readEnvFile(filepath.Join(filepath.Dir(path), EnvFileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(processEnv()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Routes.Dir == "" {
		c.Routes.Dir = DefaultRoutes
	}
	if c.Routes.Initial == "" {
		c.Routes.Initial = "/"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Surface.Width == 0 {
		c.Surface.Width = 80
	}
	if c.Surface.Height == 0 {
		c.Surface.Height = 24
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the configuration is valid. The first failing field is
// reported as E121.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !stderrors.As(err, &fields) || len(fields) == 0 {
		return errors.New("E121").Wrap(err)
	}

	f := fields[0]
	detail := f.Namespace() + " fails '" + f.Tag() + "'"
	if f.Param() != "" {
		detail += " (" + f.Param() + ")"
	}
	out := errors.New("E121").WithDetail(detail).Wrap(err)
	if c.configPath != "" {
		out = out.WithFile(c.configPath)
	}
	return out
}

// envKeys maps override keys (without the prefix) to setters.
var envKeys = map[string]func(c *Config, v string) error{
	"ROUTES_DIR":        func(c *Config, v string) error { c.Routes.Dir = v; return nil },
	"ROUTES_EXCLUDE":    func(c *Config, v string) error { c.Routes.Exclude = splitList(v); return nil },
	"INITIAL_PATH":      func(c *Config, v string) error { c.Routes.Initial = v; return nil },
	"ALLOWED_IMPORTS":   func(c *Config, v string) error { c.Scripts.AllowedImports = splitList(v); return nil },
	"LOG_LEVEL":         func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil },
	"LOG_FORMAT":        func(c *Config, v string) error { c.Log.Format = v; return nil },
	"INSPECTOR_ADDR":    func(c *Config, v string) error { c.Inspector.Addr = v; return nil },
	"METRICS_NAMESPACE": func(c *Config, v string) error { c.Metrics.Namespace = v; return nil },
	"METRICS":           func(c *Config, v string) error { return setBool(&c.Metrics.Enabled, v) },
	"TRACING":           func(c *Config, v string) error { return setBool(&c.Tracing.Enabled, v) },
	"TRACING_ENDPOINT":  func(c *Config, v string) error { c.Tracing.Endpoint = v; return nil },
	"SURFACE_WIDTH":     func(c *Config, v string) error { return setInt(&c.Surface.Width, v) },
	"SURFACE_HEIGHT":    func(c *Config, v string) error { return setInt(&c.Surface.Height, v) },
}

// ApplyEnv overrides fields from ROUTESHELL_* keys. Unknown keys are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	for key, value := range env {
		name, ok := strings.CutPrefix(key, EnvPrefix)
		if !ok {
			continue
		}
		set, ok := envKeys[name]
		if !ok {
			continue
		}
		if err := set(c, value); err != nil {
			return errors.New("E121").
				WithDetail(key + "=" + value).
				Wrap(err)
		}
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New("E120").
			WithFile(path).
			WithDetail("Failed to parse " + EnvFileName).
			Wrap(err)
	}
	return env, nil
}

func processEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

// RoutesPath returns the absolute path to the routes directory.
func (c *Config) RoutesPath() string {
	path := c.Routes.Dir
	if path == "" {
		path = DefaultRoutes
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing routeshell.yaml, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E122").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Create " + ConfigFileName + " at the project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
