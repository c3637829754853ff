package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Deployment is a deployment-specific configuration file: display strings,
// endpoint templates and a partial store tree to merge onto the defaults.
type Deployment struct {
	Title           string
	DisplayTitle    string
	ServerRoot      string
	EventsExt       string
	AssociationsExt string
	SourcesExt      string
	SitesExt        string
	ShapesExt       string
	DateFmt         string
	TimeFmt         string

	// Store is the override tree; nil when the file has none.
	Store Tree
}

const (
	defaultConfigPath = "~/.config/cardstack/config.toml"
	defaultServerRoot = "http://localhost:4040"
	defaultDateFmt    = "MM/DD/YYYY"
	defaultTimeFmt    = "hh:mm"
)

// LoadDeployment reads the deployment file at path (or the default path),
// falling back to an empty deployment when it does not exist. The format is
// chosen by extension: .toml, .yaml/.yml, or .json/.jsonc.
func LoadDeployment(path string) (Deployment, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Deployment{}, err
	}

	dep := Deployment{ServerRoot: defaultServerRoot, DateFmt: defaultDateFmt, TimeFmt: defaultTimeFmt}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dep, nil
		}
		return Deployment{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Deployment{}, fmt.Errorf("read config: %w", err)
	}

	raw, err := decode(filepath.Ext(resolved), bytes)
	if err != nil {
		return Deployment{}, fmt.Errorf("parse config: %w", err)
	}
	return deploymentFromTree(dep, raw), nil
}

// ParseDeployment decodes deployment data of the given format ("toml",
// "yaml", "json").
func ParseDeployment(format string, data []byte) (Deployment, error) {
	raw, err := decode("."+strings.TrimPrefix(format, "."), data)
	if err != nil {
		return Deployment{}, fmt.Errorf("parse config: %w", err)
	}
	dep := Deployment{ServerRoot: defaultServerRoot, DateFmt: defaultDateFmt, TimeFmt: defaultTimeFmt}
	return deploymentFromTree(dep, raw), nil
}

func decode(ext string, data []byte) (Tree, error) {
	raw := map[string]any{}
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	tree, _ := asTree(Normalize(raw))
	return tree, nil
}

func deploymentFromTree(dep Deployment, raw Tree) Deployment {
	str := func(key, fallback string) string {
		if v, ok := raw[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}
	dep.Title = str("title", dep.Title)
	dep.DisplayTitle = str("display_title", dep.Title)
	dep.ServerRoot = str("SERVER_ROOT", dep.ServerRoot)
	dep.EventsExt = str("EVENTS_EXT", "")
	dep.AssociationsExt = str("ASSOCIATIONS_EXT", "")
	dep.SourcesExt = str("SOURCES_EXT", "")
	dep.SitesExt = str("SITES_EXT", "")
	dep.ShapesExt = str("SHAPES_EXT", "")
	dep.DateFmt = str("DATE_FMT", dep.DateFmt)
	dep.TimeFmt = str("TIME_FMT", dep.TimeFmt)
	if store, ok := asTree(raw["store"]); ok {
		dep.Store = store
	}
	return dep
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
