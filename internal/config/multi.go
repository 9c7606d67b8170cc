package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

const DefaultLabel = "Default"

func ConfigRoot() string {
	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "novelsrc")
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "novelsrc")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "novelsrc")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func ConfigPathByLabel(label string) string {
	return filepath.Join(ConfigsDir(), label+".yaml")
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func CurrentLabel() (string, error) {
	b, err := os.ReadFile(CurrentLabelFile())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}

	return label, nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil {
		return "", err
	}

	return ConfigPathByLabel(label), nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func ListConfigs() ([]ConfigInfo, error) {
	entries, err := os.ReadDir(ConfigsDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		label := strings.TrimSuffix(name, ".yaml")
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), name),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	if _, err := os.Stat(ConfigPathByLabel(label)); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

// InitDefaultConfig writes the Default profile and activates it. If the
// profile already exists it is only activated and os.ErrExist is returned.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	defPath := ConfigPathByLabel(DefaultLabel)

	if _, err := os.Stat(defPath); err == nil {
		if err := SwitchConfig(DefaultLabel); err != nil {
			return "", err
		}
		return defPath, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), defPath); err != nil {
		return "", err
	}

	return defPath, SwitchConfig(DefaultLabel)
}
