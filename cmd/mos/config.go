package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/mos"
)

// DefaultConfigPath returns the settings file read on every run:
// $MOS_CONFIG if set, otherwise mos/config.toml in the XDG config home.
func DefaultConfigPath() string {
	if path := os.Getenv("MOS_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, "mos", "config.toml")
}

// TOML is a kong.ConfigurationLoader that reads flag defaults from a TOML
// file. Keys are flag names, with dashes or underscores:
//
//	output = "/data/matricula"
//	crawl_speed = 3
//	skip-existing = true
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, mos.Errorf(mos.EINVALID, "invalid config file: %v", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]
		if !ok {
			raw, ok = values[flag.Name]
		}
		if !ok {
			return nil, nil
		}
		return fmt.Sprint(raw), nil
	}), nil
}
