package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NotificationAndroidOptions is the Android-specific configuration of one notification.
// Optional scalars are pointers so an absent field survives a round trip.
type NotificationAndroidOptions struct {
	Actions              []Action                    `json:"actions,omitempty" validate:"omitempty,dive"`
	AutoCancel           *bool                       `json:"autoCancel,omitempty"`
	BadgeIconType        *AndroidBadgeIconType       `json:"badgeIconType,omitempty"`
	Category             AndroidCategory             `json:"category,omitempty"`
	ChannelID            string                      `json:"channelId,omitempty"`
	ChronometerDirection AndroidChronometerDirection `json:"chronometerDirection,omitempty"`
	ClickAction          string                      `json:"clickAction,omitempty"`
	Color                string                      `json:"color,omitempty"`
	Colorized            *bool                       `json:"colorized,omitempty"`
	ContentInfo          any                         `json:"contentInfo,omitempty"`
	Defaults             any                         `json:"defaults,omitempty"`
	GroupID              string                      `json:"groupId,omitempty"`
	GroupAlertBehavior   *AndroidGroupAlertBehavior  `json:"groupAlertBehavior,omitempty"`
	GroupSummary         *bool                       `json:"groupSummary,omitempty"`
	LargeIcon            string                      `json:"largeIcon,omitempty"`
	Lights               *Lights                     `json:"lights,omitempty"`
	LocalOnly            *bool                       `json:"localOnly,omitempty"`
	Number               *int64                      `json:"number,omitempty"`
	Ongoing              *bool                       `json:"ongoing,omitempty"`
	OnlyAlertOnce        *bool                       `json:"onlyAlertOnce,omitempty"`
	PressAction          *PressAction                `json:"pressAction,omitempty"`
	Priority             *AndroidPriority            `json:"priority,omitempty"`
	Progress             *Progress                   `json:"progress,omitempty"`
	RemoteInputHistory   any                         `json:"remoteInputHistory,omitempty"`
	ShortcutID           string                      `json:"shortcutId,omitempty"`
	ShowTimestamp        *bool                       `json:"showTimestamp,omitempty"`
	SmallIcon            *SmallIcon                  `json:"smallIcon,omitempty"`
	SortKey              string                      `json:"sortKey,omitempty"`
	Style                *Style                      `json:"style,omitempty"`
	Tag                  string                      `json:"tag,omitempty"`
	Ticker               string                      `json:"ticker,omitempty"`
	TimeoutAfter         *int64                      `json:"timeoutAfter,omitempty"`
	Timestamp            *int64                      `json:"timestamp,omitempty"`
	UsesChronometer      *bool                       `json:"usesChronometer,omitempty"`
	VibrationPattern     []int64                     `json:"vibrationPattern,omitempty" validate:"omitempty,even_len,dive,vibration_value"`
	Visibility           *AndroidVisibility          `json:"visibility,omitempty"`
}

// Action is one button shown on a notification.
type Action struct {
	Key                   string                 `json:"key"`
	Icon                  string                 `json:"icon"`
	Title                 string                 `json:"title"`
	AllowGeneratedReplies *bool                  `json:"allowGeneratedReplies,omitempty"`
	ShowsUserInterface    *bool                  `json:"showsUserInterface,omitempty"`
	SemanticAction        *AndroidSemanticAction `json:"semanticAction,omitempty"`
	PressAction           *PressAction           `json:"pressAction,omitempty"`
	RemoteInput           *RemoteInput           `json:"remoteInput,omitempty"`
}

// RemoteInput is a free-text or choice input attached to an action.
type RemoteInput struct {
	Key                      string              `json:"key"`
	Label                    string              `json:"label,omitempty"`
	Choices                  []string            `json:"choices,omitempty"`
	AllowFreeFormInput       *bool               `json:"allowFreeFormInput,omitempty"`
	EditChoicesBeforeSending *AndroidEditChoices `json:"editChoicesBeforeSending,omitempty"`
	AllowDataTypes           []string            `json:"allowDataTypes,omitempty"`
}

// PressAction describes what happens when the notification or an action is pressed.
type PressAction struct {
	ID             string `json:"id"`
	LaunchActivity string `json:"launchActivity,omitempty"`
	MainComponent  string `json:"mainComponent,omitempty"`
}

// Progress is a progress bar. Indeterminate hides max and current.
type Progress struct {
	Max           *int64 `json:"max,omitempty"`
	Current       *int64 `json:"current,omitempty"`
	Indeterminate *bool  `json:"indeterminate,omitempty"`
}

// IsIndeterminate reports whether the ordering of max and current is irrelevant.
func (p Progress) IsIndeterminate() bool {
	return p.Indeterminate != nil && *p.Indeterminate
}

// Lights is the [color, onMs, offMs] triple. It travels as a JSON array.
type Lights struct {
	Color string
	OnMs  int64 `schema:"[1]" validate:"duration_ms"`
	OffMs int64 `schema:"[2]" validate:"duration_ms"`
}

func (l Lights) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Color, l.OnMs, l.OffMs})
}

func (l *Lights) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("lights: %w", err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("lights: expected 3 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &l.Color); err != nil {
		return fmt.Errorf("lights color: %w", err)
	}
	if err := json.Unmarshal(parts[1], &l.OnMs); err != nil {
		return fmt.Errorf("lights on duration: %w", err)
	}
	if err := json.Unmarshal(parts[2], &l.OffMs); err != nil {
		return fmt.Errorf("lights off duration: %w", err)
	}
	return nil
}

// SmallIcon is either a bare resource name or a [name, level] pair.
// Level is nil for the bare form.
type SmallIcon struct {
	Name  string
	Level *int64 `schema:"[1]" validate:"omitempty,icon_level"`
}

func (s SmallIcon) MarshalJSON() ([]byte, error) {
	if s.Level == nil {
		return json.Marshal(s.Name)
	}
	return json.Marshal([]any{s.Name, *s.Level})
}

func (s *SmallIcon) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		s.Level = nil
		return json.Unmarshal(data, &s.Name)
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("smallIcon: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("smallIcon: expected 2 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &s.Name); err != nil {
		return fmt.Errorf("smallIcon name: %w", err)
	}
	var level int64
	if err := json.Unmarshal(parts[1], &level); err != nil {
		return fmt.Errorf("smallIcon level: %w", err)
	}
	s.Level = &level
	return nil
}

// Style is the closed union of expanded layouts. Exactly one variant is set.
type Style struct {
	BigPicture *BigPictureStyle
	BigText    *BigTextStyle
}

// BigPictureStyle expands the notification with a large image.
type BigPictureStyle struct {
	Type      AndroidStyleType `json:"type"`
	Picture   string           `json:"picture"`
	LargeIcon string           `json:"largeIcon,omitempty"`
	Title     string           `json:"title,omitempty"`
	Summary   string           `json:"summary,omitempty"`
}

// BigTextStyle expands the notification with a long block of text.
type BigTextStyle struct {
	Type    AndroidStyleType `json:"type"`
	Text    string           `json:"text"`
	Title   string           `json:"title,omitempty"`
	Summary string           `json:"summary,omitempty"`
}

// Type returns the discriminant of the set variant.
func (s Style) Type() (AndroidStyleType, bool) {
	switch {
	case s.BigPicture != nil:
		return StyleBigPicture, true
	case s.BigText != nil:
		return StyleBigText, true
	default:
		return 0, false
	}
}

func (s Style) MarshalJSON() ([]byte, error) {
	switch {
	case s.BigPicture != nil:
		v := *s.BigPicture
		v.Type = StyleBigPicture
		return json.Marshal(v)
	case s.BigText != nil:
		v := *s.BigText
		v.Type = StyleBigText
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("style: no variant set")
	}
}

func (s *Style) UnmarshalJSON(data []byte) error {
	var head struct {
		Type *AndroidStyleType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	if head.Type == nil {
		return fmt.Errorf("style: missing type")
	}

	*s = Style{}
	switch *head.Type {
	case StyleBigPicture:
		s.BigPicture = &BigPictureStyle{}
		return json.Unmarshal(data, s.BigPicture)
	case StyleBigText:
		s.BigText = &BigTextStyle{}
		return json.Unmarshal(data, s.BigText)
	default:
		return fmt.Errorf("style: unknown type %d", *head.Type)
	}
}
