package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// demoConfig is the small set of knobs the demo reads from a YAML file on
// disk: window title/size and the clear colour. The core packages take no
// configuration of their own.
type demoConfig struct {
	Title  string     `yaml:"title"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Clear  clearColor `yaml:"clear"`
}

type clearColor struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

func defaultConfig() demoConfig {
	return demoConfig{
		Title:  "wgsg-go demo",
		Width:  1280,
		Height: 720,
		Clear:  clearColor{R: 0.05, G: 0.07, B: 0.12, A: 1.0},
	}
}

// loadConfig reads a YAML config file from path, falling back to
// defaultConfig if path does not exist.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("demo: read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("demo: parse config %q: %w", path, err)
	}
	return cfg, nil
}
