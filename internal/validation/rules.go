package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sumire/notifyschema/internal/domain"
)

// Constraint rule names reported in ValidationError.Rule.
const (
	RuleProgressOrdering  = "progress-ordering"
	RuleLightsArity       = "lights-arity"
	RuleLightsDuration    = "lights-duration"
	RuleVibrationParity   = "vibration-pattern-parity"
	RuleVibrationPositive = "vibration-pattern-positive"
	RuleSmallIconArity    = "small-icon-arity"
	RuleSmallIconLevel    = "small-icon-level"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

type ruleInfo struct {
	rule     string
	expected string
}

// ruleTags maps validator tags (and aliases) used on domain structs to rule names.
var ruleTags = map[string]ruleInfo{
	"progress_ordering": {RuleProgressOrdering, "max > current unless indeterminate"},
	"duration_ms":       {RuleLightsDuration, "non-negative integer milliseconds"},
	"icon_level":        {RuleSmallIconLevel, "non-negative integer level"},
	"even_len":          {RuleVibrationParity, "even number of durations"},
	"vibration_value":   {RuleVibrationPositive, "positive duration"},
}

func newRules() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)

	mustRegister(v, "android_color", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "even_len", func(fl validator.FieldLevel) bool {
		return fl.Field().Len()%2 == 0
	})
	v.RegisterAlias("duration_ms", "gte=0")
	v.RegisterAlias("icon_level", "gte=0")
	v.RegisterAlias("vibration_value", "gt=0")
	v.RegisterStructValidation(progressOrdering, domain.Progress{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// fieldName reports struct fields by their wire name so namespaces read as field paths.
func fieldName(f reflect.StructField) string {
	if name := f.Tag.Get("schema"); name != "" {
		return name
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func progressOrdering(sl validator.StructLevel) {
	p, ok := sl.Current().Interface().(domain.Progress)
	if !ok || p.IsIndeterminate() || p.Max == nil || p.Current == nil {
		return
	}
	if *p.Max <= *p.Current {
		sl.ReportError(fmt.Sprintf("max=%d current=%d", *p.Max, *p.Current), "max", "Max", "progress_ordering", "")
	}
}

// checkRules runs the cross-field rules declared on the typed structure.
func (v *Validator) checkRules(target any) domain.ValidationErrors {
	err := v.rules.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{
			Code:    domain.CodeConstraintViolation,
			Message: err.Error(),
		}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		info, ok := ruleTags[fe.Tag()]
		if !ok {
			info = ruleInfo{rule: fe.Tag(), expected: fe.ActualTag() + " " + fe.Param()}
		}
		out = append(out, &domain.ValidationError{
			Code:     domain.CodeConstraintViolation,
			Field:    namespacePath(fe.Namespace()),
			Rule:     info.rule,
			Expected: info.expected,
			Actual:   fmt.Sprint(fe.Value()),
			Message:  fmt.Sprintf("violates %s: expected %s", info.rule, info.expected),
		})
	}
	return out
}

// namespacePath turns "Channel.vibrationPattern[1]" into "vibrationPattern[1]"
// and "NotificationAndroidOptions.lights.[1]" into "lights[1]".
func namespacePath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return strings.ReplaceAll(rest, ".[", "[")
}
