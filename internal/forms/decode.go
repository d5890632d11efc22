package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/rshade/catalogctl/internal/api"
)

// Values are the raw field values of a submitted form.
type Values map[string]interface{}

// GroupOption is a selectable approver group as shown in the form.
type GroupOption struct {
	Label string `mapstructure:"label" validate:"required"`
	Value string `mapstructure:"value" validate:"required"`
}

// PortfolioForm is a decoded portfolio submission.
type PortfolioForm struct {
	Name        string `mapstructure:"name"        validate:"required,max=64"`
	Description string `mapstructure:"description" validate:"max=1024"`
}

// WorkflowForm is a decoded approval process submission.
type WorkflowForm struct {
	Name        string        `mapstructure:"name"        validate:"required,max=255"`
	Description string        `mapstructure:"description" validate:"max=1024"`
	Groups      []GroupOption `mapstructure:"group_refs"  validate:"dive"`
}

var validate = newValidator() //nolint:gochecknoglobals // validator caches struct metadata

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})
	return v
}

// DecodePortfolio decodes and validates a portfolio submission.
func DecodePortfolio(values Values) (api.PortfolioInput, error) {
	var form PortfolioForm
	if err := decode(values, &form); err != nil {
		return api.PortfolioInput{}, err
	}
	return api.PortfolioInput{Name: form.Name, Description: form.Description}, nil
}

// DecodeWorkflow decodes and validates a workflow submission.
func DecodeWorkflow(values Values) (api.WorkflowInput, error) {
	var form WorkflowForm
	if err := decode(values, &form); err != nil {
		return api.WorkflowInput{}, err
	}
	return api.WorkflowInput{
		Name:        form.Name,
		Description: form.Description,
		GroupRefs:   GroupRefs(form.Groups),
	}, nil
}

// GroupRefs maps selected {label, value} options to {name, uuid} references.
// An empty selection yields an empty, non-nil slice.
func GroupRefs(selected []GroupOption) []api.GroupRef {
	refs := make([]api.GroupRef, 0, len(selected))
	for _, opt := range selected {
		refs = append(refs, api.GroupRef{Name: opt.Label, UUID: opt.Value})
	}
	return refs
}

// ParseGroups parses "label=value" pairs separated by commas.
func ParseGroups(s string) ([]GroupOption, error) {
	var out []GroupOption
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		opt, err := parseGroup(part)
		if err != nil {
			return nil, err
		}
		out = append(out, opt)
	}
	return out, nil
}

func parseGroup(s string) (GroupOption, error) {
	label, value, ok := strings.Cut(s, "=")
	label, value = strings.TrimSpace(label), strings.TrimSpace(value)
	if !ok || label == "" || value == "" {
		return GroupOption{}, fmt.Errorf("group %q must be written as name=uuid", s)
	}
	return GroupOption{Label: label, Value: value}, nil
}

// groupOptionHook turns "label=value" strings into GroupOption.
func groupOptionHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(GroupOption{}) {
		return data, nil
	}
	return parseGroup(data.(string))
}

// trimStringHook trims surrounding whitespace from text inputs.
func trimStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(data.(string)), nil
}

func decode(values Values, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			groupListHook,
			trimStringHook,
			groupOptionHook,
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("building form decoder: %w", err)
	}
	if err = dec.Decode(map[string]interface{}(values)); err != nil {
		return fromDecodeError(err)
	}

	if err = validate.Struct(out); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

// groupListHook turns a comma separated "label=value" list into options.
func groupListHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]GroupOption{}) {
		return data, nil
	}
	return ParseGroups(data.(string))
}

// decodeFieldPattern finds the field name in mapstructure messages such as
// "error decoding 'group_refs': ...".
var decodeFieldPattern = regexp.MustCompile(`'([^'.\[]+)[^']*': (.*)$`)

// fromDecodeError reports field-scoped decode failures as ValidationErrors.
func fromDecodeError(err error) error {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return fmt.Errorf("decoding form: %w", err)
	}

	out := make(ValidationErrors, 0, len(merr.Errors))
	for _, msg := range merr.Errors {
		m := decodeFieldPattern.FindStringSubmatch(msg)
		if m == nil {
			return fmt.Errorf("decoding form: %w", err)
		}
		out = append(out, FieldError{Field: m[1], Message: m[2]})
	}
	return out
}

func toValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: topLevelField(fe), Message: message(fe)})
	}
	return out
}

// topLevelField maps "WorkflowForm.group_refs[0].value" to "group_refs".
func topLevelField(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	if i := strings.IndexAny(ns, ".["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() != topLevelField(fe) {
			return "contains an incomplete entry"
		}
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// FormatGroups renders group references in the "name=uuid" list syntax
// accepted by ParseGroups.
func FormatGroups(refs []api.GroupRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.Name + "=" + r.UUID
	}
	return strings.Join(parts, ",")
}
