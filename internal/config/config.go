package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user-editable settings. Stroke history itself is never
// persisted; only these preferences survive between runs.
type Config struct {
	ServerURL     string
	BrushDiameter int
	DiscoverLAN   bool
}

const configFile = "config.toml"

func defaults() Config {
	return Config{
		ServerURL:     "http://127.0.0.1:8000",
		BrushDiameter: 30,
		DiscoverLAN:   true,
	}
}

func dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve config directory: %w", err)
	}
	return filepath.Join(base, "maskpad"), nil
}

// Load reads the config file, creating it with defaults on first run.
func Load() (Config, error) {
	conf := defaults()
	d, err := dir()
	if err != nil {
		return conf, err
	}
	path := filepath.Join(d, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("No config at %s, writing defaults", path)
		if err := Save(conf); err != nil {
			return conf, err
		}
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return defaults(), fmt.Errorf("could not read config file: %w", err)
	}
	return conf, nil
}

// Save writes the config file, creating the directory if needed.
func Save(conf Config) error {
	d, err := dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	f, err := os.Create(filepath.Join(d, configFile))
	if err != nil {
		return fmt.Errorf("could not create config file: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(conf)
}
