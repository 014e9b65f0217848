package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xavierca1/ghostreach/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateTargets reports targets that can never be fetched. The harvester
// skips them anyway; the report only makes the reason visible up front.
func ValidateTargets(targets []entity.Target) []ValidationError {
	var errors []ValidationError

	for i, t := range targets {
		field := fmt.Sprintf("targets[%d].url", i)
		if strings.TrimSpace(t.URL) == "" {
			errors = append(errors, ValidationError{field, "is required"})
			continue
		}
		u, err := url.Parse(t.URL)
		if err != nil {
			errors = append(errors, ValidationError{field, "is invalid"})
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, ValidationError{field, "must be http or https"})
		} else if u.Host == "" {
			errors = append(errors, ValidationError{field, "must have a host"})
		}
	}

	return errors
}

func ValidateMarketConfig(cfg *entity.MarketConfig) []ValidationError {
	var errors []ValidationError
	if cfg == nil {
		return errors
	}

	for i, p := range cfg.BuyerPersonas {
		if strings.TrimSpace(p.Role) == "" {
			errors = append(errors, ValidationError{fmt.Sprintf("buyer_personas[%d].role", i), "is required"})
		}
	}
	return errors
}
