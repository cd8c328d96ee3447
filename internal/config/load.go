package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WYSIWYG_"

// EnvConfigFile names the environment variable holding a config file path.
const EnvConfigFile = EnvPrefix + "CONFIG"

// searchNames are tried in the working directory when no file is named.
var searchNames = []string{"wysiwyg.yaml", "wysiwyg.yml", "wysiwyg.toml"}

// Result is a loaded configuration and where it came from.
type Result struct {
	*Config
	// File is the configuration file that was read, if any.
	File string
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// path names the configuration file. When empty, WYSIWYG_CONFIG is
// consulted, then wysiwyg.{yaml,yml,toml} in the working directory and
// the user configuration directory. Only flags the user changed are read.
func Load(path string, flags *pflag.FlagSet) (*Result, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Config file
	used, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if used != "" {
		if err := k.Load(file.Provider(used), parserFor(used)); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: WYSIWYG_MAX_UNDO -> max_undo
	known := defaults()
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// 4. Flags: --max-undo -> max_undo
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, ok := known[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		if used != "" {
			return nil, fmt.Errorf("%s: %w", used, err)
		}
		return nil, err
	}
	return &Result{Config: &cfg, File: used}, nil
}

// parserFor selects a koanf parser by file extension.
func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML(path)
	}
	return yaml.Parser()
}

// findConfigFile resolves the configuration file to read.
// Priority: explicit path > WYSIWYG_CONFIG > working directory > user config dir.
func findConfigFile(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfigFile)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrFileNotFound, explicit)
			}
			return "", fmt.Errorf("checking config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "wysiwyg"))
	}
	for _, dir := range dirs {
		for _, name := range searchNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", nil
}
