package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if len(cfg.Sources) == 0 {
		errs = append(errs, "at least one source is required")
	}

	seen := map[string]bool{}
	for i, s := range cfg.Sources {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].name is required", i))
		}
		if strings.TrimSpace(s.URL) == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].url is required", i))
		} else if !strings.HasPrefix(s.URL, "http://") && !strings.HasPrefix(s.URL, "https://") {
			errs = append(errs, fmt.Sprintf("sources[%d].url must be http(s)", i))
		}
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key != "" && seen[key] {
			errs = append(errs, fmt.Sprintf("sources[%d].name %q is duplicated", i, s.Name))
		}
		seen[key] = true

		for j, kw := range s.Keywords {
			if strings.TrimSpace(kw) == "" {
				errs = append(errs, fmt.Sprintf("sources[%d].keywords[%d] cannot be empty", i, j))
			}
		}
		for j, kw := range s.ExcludeKeywords {
			if strings.TrimSpace(kw) == "" {
				errs = append(errs, fmt.Sprintf("sources[%d].exclude_keywords[%d] cannot be empty", i, j))
			}
		}
	}

	if cfg.Polling.CheckIntervalMinutes <= 0 {
		errs = append(errs, "polling.check_interval_minutes must be > 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
