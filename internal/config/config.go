// Package config resolves CLI settings from a config file, a .env file and
// JOT_* environment variables.
//
// Precedence, lowest first: config file, .env, process environment. Command
// line flags are applied on top by the caller.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/internal/platform"
)

// FileNames are the config files looked up by Find, in order.
var FileNames = []string{".jot.yaml", ".jot.yml", ".jot.json", ".jot.jsonc"}

// Config holds the resolved settings.
type Config struct {
	Adapter string   `yaml:"adapter" json:"adapter"`
	URI     string   `yaml:"uri" json:"uri"`
	Key     string   `yaml:"key" json:"key"`
	S3      S3Config `yaml:"s3" json:"s3"`

	SQLitePoolSize int `yaml:"sqlite_pool_size" json:"sqlite_pool_size"`

	// Source is the config file that was read, if any.
	Source string `yaml:"-" json:"-"`
}

// S3Config holds settings for the s3 adapter.
type S3Config struct {
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
	Region          string `yaml:"region" json:"region"`
	Prefix          string `yaml:"prefix" json:"prefix"`
	PathStyle       bool   `yaml:"path_style" json:"path_style"`
	AccessKeyID     string `yaml:"access_key_id" json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Adapter: "fs",
	}
}

// Load reads the config file at path, or the one found by Find from the
// working directory when path is empty. A .env next to the config file (or in
// the working directory) and the environment are applied on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	if path == "" {
		path, _ = Find(wd)
	}

	dir := wd
	if path != "" {
		if path, err = filepath.Abs(path); err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
		cfg.Source = path
		dir = filepath.Dir(path)
		cfg.anchorURI(dir)
	}

	dotenv, err := readDotEnv(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(lookupFunc(dotenv)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Find looks upwards from startDir for one of FileNames and returns its
// absolute path.
func Find(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("config file not found")
}

// anchorURI makes a file-based location from the config file relative to the
// file's directory, so every subdirectory opens the same collection.
func (c *Config) anchorURI(dir string) {
	switch c.Adapter {
	case "fs", "":
		if c.URI == "" {
			c.URI = dir
		}
	case "sqlite":
		if c.URI == "" {
			c.URI = "jot.db"
		}
	default:
		return
	}
	if c.URI != ":memory:" && !filepath.IsAbs(c.URI) {
		c.URI = filepath.Join(dir, c.URI)
	}
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// readDotEnv parses a .env file without touching the process environment.
// A missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}

// lookupFunc prefers non-empty process environment values over .env values.
func lookupFunc(dotenv map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[name]
		return v, ok
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	fields := map[string]*string{
		"JOT_ADAPTER":           &c.Adapter,
		"JOT_URI":               &c.URI,
		"JOT_KEY":               &c.Key,
		"JOT_S3_ENDPOINT":       &c.S3.Endpoint,
		"JOT_S3_REGION":         &c.S3.Region,
		"JOT_S3_PREFIX":         &c.S3.Prefix,
		"AWS_ACCESS_KEY_ID":     &c.S3.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY": &c.S3.SecretAccessKey,
	}
	for name, dst := range fields {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("JOT_S3_PATH_STYLE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid JOT_S3_PATH_STYLE %q: %w", v, err)
		}
		c.S3.PathStyle = b
	}
	if v, ok := lookup("JOT_SQLITE_POOL_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JOT_SQLITE_POOL_SIZE %q: %w", v, err)
		}
		c.SQLitePoolSize = n
	}
	return nil
}

// Options translates the settings into platform options.
func (c *Config) Options() []platform.Option {
	opts := []platform.Option{platform.WithAdapter(c.Adapter)}
	if c.Key != "" {
		opts = append(opts, platform.WithKey(c.Key))
	}

	switch c.Adapter {
	case "s3":
		if c.S3.Endpoint != "" {
			opts = append(opts, platform.WithS3Endpoint(c.S3.Endpoint))
		}
		if c.S3.Region != "" {
			opts = append(opts, platform.WithS3Region(c.S3.Region))
		}
		if c.S3.Prefix != "" {
			opts = append(opts, platform.WithS3Prefix(c.S3.Prefix))
		}
		if c.S3.AccessKeyID != "" {
			opts = append(opts, platform.WithS3Credentials(c.S3.AccessKeyID, c.S3.SecretAccessKey))
		}
		opts = append(opts, platform.WithS3PathStyle(c.S3.PathStyle))
	case "sqlite":
		if c.SQLitePoolSize > 0 {
			opts = append(opts, platform.WithSQLitePoolSize(c.SQLitePoolSize))
		}
	}
	return opts
}
