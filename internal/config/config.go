// Package config loads the YAML file that drives the follow hosts.
//
// The file has two sections. "follow" is handed to follow.ResolveOptions as is,
// so it accepts the same keys (and the same "default" wrapper) as the engine.
// "host" configures the page, the backend and the pointer source.
//
//	follow:
//	  factor: 20
//	  debug: true
//	host:
//	  backend: terminal
//	  page: demo.html
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"follow/internal/follow"
	"follow/internal/utils"
)

// FileName is looked up under utils.SearchDirs when no path is given.
const FileName = "follow.yaml"

var validate = validator.New()

type Host struct {
	Backend  string  `yaml:"backend" validate:"oneof=terminal window"`
	Page     string  `yaml:"page" validate:"required"`
	Pointer  string  `yaml:"pointer" validate:"oneof=local x11 robotgo hook"`
	Width    int     `yaml:"width" validate:"min=1"`
	Height   int     `yaml:"height" validate:"min=1"`
	FPS      int     `yaml:"fps" validate:"min=1,max=240"`
	Scaling  string  `yaml:"scaling" validate:"oneof=fit fill"`
	CellX    float64 `yaml:"cellWidth" validate:"gt=0"`
	CellY    float64 `yaml:"cellHeight" validate:"gt=0"`
	LogLevel string  `yaml:"logLevel" validate:"oneof=debug info warn error"`
}

type File struct {
	Follow map[string]any `yaml:"follow"`
	Host   Host           `yaml:"host"`
}

func Default() *File {
	return &File{
		Follow: map[string]any{},
		Host: Host{
			Backend:  "terminal",
			Page:     "index.html",
			Pointer:  "local",
			Width:    1280,
			Height:   720,
			FPS:      60,
			Scaling:  "fit",
			CellX:    8,
			CellY:    16,
			LogLevel: "warn",
		},
	}
}

// Options resolves the follow section the way the engine will.
func (f *File) Options() follow.Options {
	return follow.ResolveOptions(f.Follow)
}

// Parse decodes data over the defaults and validates the host section.
func Parse(data []byte) (*File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if f.Follow == nil {
		f.Follow = map[string]any{}
	}
	if err := validate.Struct(f.Host); err != nil {
		return nil, fmt.Errorf("invalid host config: %w", err)
	}
	return f, nil
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Discover loads path when given, otherwise the first follow.yaml found under
// the search dirs, otherwise the defaults. The returned path is "" for defaults.
func Discover(path string) (*File, string, error) {
	if path != "" {
		f, err := Load(path)
		return f, path, err
	}

	found := utils.ResolvePath(FileName)
	if found == "" {
		utils.Info("No %s found, using defaults", FileName)
		return Default(), "", nil
	}

	utils.Info("Using config file: %s", found)
	f, err := Load(found)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return Default(), "", nil
	}
	return f, found, err
}
