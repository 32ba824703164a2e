package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	folioerrors "github.com/zaidlab/folio/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("link_url", func(fl validator.FieldLevel) bool {
			return isLinkURL(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// isLinkURL accepts http(s) URLs with a host and mailto: URLs with an address.
func isLinkURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return parsed.Host != ""
	case "mailto":
		return strings.Contains(parsed.Opaque, "@")
	default:
		return false
	}
}

// ValidateContent performs schema and cross-field validation on content.
func ValidateContent(c *Content) error {
	if c == nil {
		return folioerrors.NewValidationError("content", "content is nil", nil)
	}

	if err := validatorInstance().Struct(c); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(c.Projects))
	for i, p := range c.Projects {
		key := strings.ToLower(strings.TrimSpace(p.Title))
		if first, ok := seen[key]; ok {
			return folioerrors.NewValidationError(fmt.Sprintf("projects[%d].title", i),
				fmt.Sprintf("duplicate project title %q (also projects[%d])", p.Title, first), nil)
		}
		seen[key] = i
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return folioerrors.NewValidationError(field, msg, err)
	}

	return folioerrors.NewValidationError("content", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
