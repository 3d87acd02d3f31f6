package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aleister1102/kkupeople/internal/urlhandler"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("backend", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "rod", "chromedp", "auto":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("fileexists", func(fl validator.FieldLevel) bool {
		filePath := fl.Field().String()
		if filePath == "" {
			return true
		}
		_, err := os.Stat(filePath)
		return !os.IsNotExist(err)
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s'", e.StructNamespace(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
		}
		return err
	}

	return validateScrapeTargets(&cfg.ScrapeConfig)
}

// validateScrapeTargets checks the parts the struct tags cannot express:
// the base URL must parse and every seed path must be site-relative.
func validateScrapeTargets(sc *ScrapeConfig) error {
	if sc.BaseURL == "" {
		return errors.New("scrape_config.base_url must not be empty")
	}
	if err := urlhandler.ValidateURLFormat(sc.BaseURL); err != nil {
		return fmt.Errorf("scrape_config.base_url: %w", err)
	}

	if len(sc.SeedPaths) == 0 {
		return errors.New("scrape_config.seed_paths must list at least one listing path")
	}
	for _, p := range sc.SeedPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("scrape_config.seed_paths entry '%s' must start with '/'", p)
		}
	}
	return nil
}
