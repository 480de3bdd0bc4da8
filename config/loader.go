package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Resolver finds config and env files for a service.
type Resolver struct {
	Fs afero.Fs
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.firstExisting(configSearchPaths(serviceName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.firstExisting(envSearchPaths(serviceName))
	}

	return resolved
}

func (r *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		if ok, _ := afero.Exists(r.Fs, p); ok {
			return p
		}
	}
	return ""
}

// configSearchPaths lists config.yml candidates, most specific first.
func configSearchPaths(serviceName string) []string {
	var paths []string
	for _, prefix := range []string{".", "..", "../.."} {
		paths = append(paths, path.Join(prefix, "cmd", serviceName, "config.yml"))
	}
	paths = append(paths, path.Join("config", "config.yml"), "config.yml")
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, path.Join(home, ".config", serviceName, "config.yml"))
	}
	return paths
}

// envSearchPaths lists .env candidates. A service-specific file wins over
// a plain .env in the same directory.
func envSearchPaths(serviceName string) []string {
	dirs := []string{
		path.Join(".", "cmd", serviceName),
		path.Join("..", "cmd", serviceName),
		"config",
		".",
	}
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, dir := range dirs {
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	Fs         afero.Fs
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	EnvPrefix  string // Only variables starting with PREFIX_ are bound (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets the filesystem config and env files are read from.
func WithFileSystem(fs afero.Fs) LoaderOption {
	return func(lc *LoaderConfig) { lc.Fs = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix restricts environment binding to PREFIX_* variables and
// strips the prefix, so DISPATCH_HTTP_BASE_URL binds http.base_url.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// LoadConfig loads configuration for a service into cfg.
//
// Precedence, lowest first: the YAML config file, the .env file, the
// process environment. An explicit config or env file that does not exist
// is an error; a missing file found by search is not.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.Fs == nil {
		lc.Fs = afero.NewOsFs()
	}

	for _, explicit := range []string{lc.ConfigFile, lc.EnvFile} {
		if explicit == "" {
			continue
		}
		if ok, _ := afero.Exists(lc.Fs, explicit); !ok {
			return fmt.Errorf("config: %s does not exist", explicit)
		}
	}

	resolver := &Resolver{Fs: lc.Fs}
	files := resolver.ResolveFiles(serviceName, lc)

	return loadFromResolvedFiles(serviceName, cfg, files, lc)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(serviceName string, cfg any, files ResolvedFiles, lc LoaderConfig) error {
	v := viper.New()
	v.SetFs(lc.Fs)

	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", files.ConfigFile, err)
		}
	}

	env := map[string]string{}
	if files.EnvFile != "" {
		dotenv, err := readEnvFile(lc.Fs, files.EnvFile)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", files.EnvFile, err)
		}
		env = dotenv
	}
	// The process environment wins over .env.
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	autoBindEnvVars(v, env, lc.EnvPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}

	return nil
}

func readEnvFile(fs afero.Fs, name string) (map[string]string, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return godotenv.Parse(f)
}

// autoBindEnvVars binds env to Viper by converting UPPER_CASE_WITH_UNDERSCORES
// keys to the possible nested key formats. With a prefix, only PREFIX_*
// keys are bound and the prefix is stripped.
func autoBindEnvVars(v *viper.Viper, env map[string]string, prefix string) {
	for key, value := range env {
		if prefix != "" {
			rest, ok := strings.CutPrefix(key, prefix+"_")
			if !ok || rest == "" {
				continue
			}
			key = rest
		}
		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	HTTP_BASE_URL -> [http_base_url, http.base.url, http.base_url, http_base.url]
//	OBSERVABILITY_SAMPLE_RATE -> [observability_sample_rate, observability.sample.rate, observability.sample_rate, ...]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// progressive nesting: a.b_c_d, a.b.c_d, ...
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	// trailing nesting: a_b_c.d
	if len(parts) >= 3 {
		prefix := strings.Join(parts[:len(parts)-1], "_")
		variants = append(variants, prefix+"."+parts[len(parts)-1])
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
