package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that also understands the "apiversion" tag.
func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("apiversion", isAPIVersion); err != nil {
		return nil, fmt.Errorf("registering apiversion validation: %w", err)
	}
	return v, nil
}

func isAPIVersion(fl validator.FieldLevel) bool {
	_, err := semver.NewVersion(fl.Field().String())
	return err == nil
}

// Validate checks the whole configuration and reports every failing field.
func (c *Config) Validate() error {
	v, err := newValidator()
	if err != nil {
		return err
	}
	err = v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// BaseURL joins the service URL and its API version, e.g.
// "http://host/api/catalog" + "1.0" -> "http://host/api/catalog/v1.0".
func (s ServiceConfig) BaseURL() (string, error) {
	v, err := semver.NewVersion(s.Version)
	if err != nil {
		return "", fmt.Errorf("invalid API version %q: %w", s.Version, err)
	}
	return fmt.Sprintf("%s/v%d.%d", strings.TrimRight(s.URL, "/"), v.Major(), v.Minor()), nil
}
