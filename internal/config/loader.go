// Package config provides configuration file loading for logtree.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// EnvPrefix is the prefix of environment variables read by Load.
	EnvPrefix = "LOGTREE_"
)

// Errors returned while validating a configuration file.
var (
	ErrConfigTooLarge = errors.New("config file too large")
	ErrNotRegularFile = errors.New("config path is not a regular file")
)

// Load reads the YAML file at path, overlays LOGTREE_* environment variables and
// unmarshals the merged tree into out.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (LOGTREE_PREFIX, LOGTREE_BACKEND_FORMAT, etc.)
//  2. YAML config file
//  3. Values already present in out
//
// Callers pass out pre-filled with defaults; keys absent from both sources keep
// those values. An empty path or a missing file skips the file layer.
//
// # Environment Variable Mapping
//
// The prefix is stripped, the remainder lowercased, and the first underscore
// becomes the section separator:
//
//	LOGTREE_PREFIX         -> prefix
//	LOGTREE_BACKEND_LEVEL  -> backend.level
//	LOGTREE_BACKEND_FORMAT -> backend.format
func Load(path string, out any) error {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err == nil {
			// Use rawbytes provider to avoid re-opening the file
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := k.Unmarshal("", out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// envKey maps LOGTREE_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// readConfigFile opens path once and validates it through the open descriptor
// to avoid a TOCTOU race between the checks and the read.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if err := validateConfigFileProperties(info); err != nil {
		return nil, fmt.Errorf("config file validation failed: %w", err)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// validateConfigFileProperties checks file type and size.
func validateConfigFileProperties(info os.FileInfo) error {
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, info.Name())
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, info.Size(), maxConfigFileSize)
	}
	return nil
}
