// Package validation checks caller-supplied notification structures against
// the schema registry and produces normalized value objects.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sumire/notifyschema/internal/domain"
	"github.com/sumire/notifyschema/internal/schema"
)

// Recorder observes finished validation calls.
type Recorder interface {
	ObserveValidation(kind string, elapsed time.Duration, violations domain.ValidationErrors)
}

// Option configures a Validator.
type Option func(*Validator)

// WithIgnoreUnknownFields drops unknown fields silently instead of reporting them.
func WithIgnoreUnknownFields() Option {
	return func(v *Validator) { v.ignoreUnknown = true }
}

// WithChannelTracker rejects channels that change an immutable field of a known channel id.
func WithChannelTracker(t *ChannelTracker) Option {
	return func(v *Validator) { v.tracker = t }
}

// WithRecorder reports every call to r.
func WithRecorder(r Recorder) Option {
	return func(v *Validator) { v.recorder = r }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// Validator validates and normalizes notification structures.
// It is safe for concurrent use.
type Validator struct {
	registry      *schema.Registry
	rules         *validator.Validate
	ignoreUnknown bool
	tracker       *ChannelTracker
	recorder      Recorder
	logger        *slog.Logger
}

// New creates a Validator backed by registry.
func New(registry *schema.Registry, opts ...Option) *Validator {
	v := &Validator{
		registry: registry,
		rules:    newRules(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks raw against the schema of kind. On success it returns the
// normalized structure (a pointer to the domain type of kind). Otherwise the
// error is a domain.ValidationErrors holding every violation, or a wrapped
// domain.ErrUnknownKind when kind has no schema.
func (v *Validator) Validate(ctx context.Context, kind schema.Kind, raw map[string]any) (any, error) {
	start := time.Now()

	table, err := v.registry.Describe(kind)
	if err != nil {
		return nil, err
	}

	w := &walker{registry: v.registry, rules: v.rules, ignoreUnknown: v.ignoreUnknown}
	clean, ok := w.object("", table, raw)
	violations := w.violations()

	var out any = clean
	if target := newTarget(kind); target != nil && ok {
		if err := decode(clean, target); err != nil {
			return nil, fmt.Errorf("decode normalized %s: %w", kind, err)
		}
		violations = append(violations, v.checkRules(target)...)
		out = target
	}

	if ch, isChannel := out.(*domain.Channel); isChannel && v.tracker != nil && ch.ChannelID != "" {
		conflicts, err := v.tracker.Admit(ctx, *ch, suppliedImmutable(table, raw), len(violations) == 0)
		if err != nil {
			return nil, fmt.Errorf("track channel %q: %w", ch.ChannelID, err)
		}
		violations = append(violations, conflicts...)
	}

	if v.recorder != nil {
		v.recorder.ObserveValidation(string(kind), time.Since(start), violations)
	}
	if len(violations) > 0 {
		v.logger.Debug("validation failed", "kind", kind, "violations", len(violations))
		return nil, violations
	}
	return out, nil
}

// ValidateNotificationAndroidOptions validates the Android options of one notification.
func (v *Validator) ValidateNotificationAndroidOptions(ctx context.Context, raw map[string]any) (*domain.NotificationAndroidOptions, error) {
	out, err := v.Validate(ctx, schema.KindNotificationAndroidOptions, raw)
	if err != nil {
		return nil, err
	}
	return out.(*domain.NotificationAndroidOptions), nil
}

// ValidateChannel validates a channel definition.
func (v *Validator) ValidateChannel(ctx context.Context, raw map[string]any) (*domain.Channel, error) {
	out, err := v.Validate(ctx, schema.KindChannel, raw)
	if err != nil {
		return nil, err
	}
	return out.(*domain.Channel), nil
}

// ValidateChannelGroup validates a channel group definition.
func (v *Validator) ValidateChannelGroup(ctx context.Context, raw map[string]any) (*domain.ChannelGroup, error) {
	out, err := v.Validate(ctx, schema.KindChannelGroup, raw)
	if err != nil {
		return nil, err
	}
	return out.(*domain.ChannelGroup), nil
}

// newTarget returns the typed value a kind normalizes into, or nil for kinds
// without one; those normalize to the cleaned map.
func newTarget(kind schema.Kind) any {
	switch kind {
	case schema.KindNotificationAndroidOptions:
		return &domain.NotificationAndroidOptions{}
	case schema.KindAction:
		return &domain.Action{}
	case schema.KindRemoteInput:
		return &domain.RemoteInput{}
	case schema.KindPressAction:
		return &domain.PressAction{}
	case schema.KindStyle:
		return &domain.Style{}
	case schema.KindBigPictureStyle:
		return &domain.BigPictureStyle{}
	case schema.KindBigTextStyle:
		return &domain.BigTextStyle{}
	case schema.KindProgress:
		return &domain.Progress{}
	case schema.KindChannel:
		return &domain.Channel{}
	case schema.KindChannelGroup:
		return &domain.ChannelGroup{}
	}
	return nil
}

func decode(clean map[string]any, target any) error {
	b, err := json.Marshal(clean)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}

func suppliedImmutable(table *schema.FieldTable, raw map[string]any) []string {
	var names []string
	for _, name := range table.Immutable() {
		if val, ok := raw[name]; ok && val != nil {
			names = append(names, name)
		}
	}
	return names
}
