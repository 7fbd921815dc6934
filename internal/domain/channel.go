package domain

import (
	"fmt"
	"slices"
	"time"
)

// Channel is a persistent delivery configuration. Importance, visibility,
// light and vibration enablement and the vibration pattern cannot change once
// the channel exists on a device.
type Channel struct {
	ChannelID        string             `json:"channelId"`
	Name             string             `json:"name"`
	BypassDnd        any                `json:"bypassDnd,omitempty"`
	Description      string             `json:"description,omitempty"`
	EnableLights     *bool              `json:"enableLights,omitempty"`
	EnableVibration  *bool              `json:"enableVibration,omitempty"`
	GroupID          string             `json:"groupId,omitempty"`
	Importance       *AndroidImportance `json:"importance,omitempty"`
	LightColor       string             `json:"lightColor,omitempty"`
	ShowBadge        *bool              `json:"showBadge,omitempty"`
	Sound            any                `json:"sound,omitempty"`
	VibrationPattern []int64            `json:"vibrationPattern,omitempty" validate:"omitempty,even_len,dive,vibration_value"`
	Visibility       *AndroidVisibility `json:"visibility,omitempty"`
}

// ChannelGroup groups channels in the system settings UI.
type ChannelGroup struct {
	ChannelGroupID string `json:"channelGroupId"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
}

// ChannelRecord is what the channel tracker remembers about a channel id.
// The immutable fields are frozen at creation; Definition is the latest accepted channel.
type ChannelRecord struct {
	ChannelID        string            `json:"channel_id" db:"channel_id"`
	Importance       AndroidImportance `json:"importance" db:"importance"`
	Visibility       AndroidVisibility `json:"visibility" db:"visibility"`
	EnableLights     bool              `json:"enable_lights" db:"enable_lights"`
	EnableVibration  bool              `json:"enable_vibration" db:"enable_vibration"`
	VibrationPattern []int64           `json:"vibration_pattern,omitempty" db:"-"`
	Definition       Channel           `json:"definition" db:"-"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}

// NewChannelRecord freezes the immutable fields of a normalized channel.
func NewChannelRecord(ch Channel, now time.Time) ChannelRecord {
	rec := ChannelRecord{
		ChannelID:        ch.ChannelID,
		Importance:       ImportanceDefault,
		Visibility:       VisibilityPrivate,
		EnableLights:     true,
		EnableVibration:  true,
		VibrationPattern: slices.Clone(ch.VibrationPattern),
		Definition:       ch,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if ch.Importance != nil {
		rec.Importance = *ch.Importance
	}
	if ch.Visibility != nil {
		rec.Visibility = *ch.Visibility
	}
	if ch.EnableLights != nil {
		rec.EnableLights = *ch.EnableLights
	}
	if ch.EnableVibration != nil {
		rec.EnableVibration = *ch.EnableVibration
	}
	return rec
}

// Diverges compares one immutable field of ch against the record.
// It returns the recorded and requested values when they differ.
func (r ChannelRecord) Diverges(ch Channel, field string) (recorded, requested string, diverges bool) {
	switch field {
	case "importance":
		if ch.Importance != nil && *ch.Importance != r.Importance {
			return fmt.Sprint(int(r.Importance)), fmt.Sprint(int(*ch.Importance)), true
		}
	case "visibility":
		if ch.Visibility != nil && *ch.Visibility != r.Visibility {
			return fmt.Sprint(int(r.Visibility)), fmt.Sprint(int(*ch.Visibility)), true
		}
	case "enableLights":
		if ch.EnableLights != nil && *ch.EnableLights != r.EnableLights {
			return fmt.Sprint(r.EnableLights), fmt.Sprint(*ch.EnableLights), true
		}
	case "enableVibration":
		if ch.EnableVibration != nil && *ch.EnableVibration != r.EnableVibration {
			return fmt.Sprint(r.EnableVibration), fmt.Sprint(*ch.EnableVibration), true
		}
	case "vibrationPattern":
		if ch.VibrationPattern != nil && !slices.Equal(ch.VibrationPattern, r.VibrationPattern) {
			return fmt.Sprint(r.VibrationPattern), fmt.Sprint(ch.VibrationPattern), true
		}
	}
	return "", "", false
}

// WithDefinition returns a copy of the record carrying a newer definition.
// Immutable fields keep their creation values.
func (r ChannelRecord) WithDefinition(ch Channel, now time.Time) ChannelRecord {
	return ChannelRecord{
		ChannelID:        r.ChannelID,
		Importance:       r.Importance,
		Visibility:       r.Visibility,
		EnableLights:     r.EnableLights,
		EnableVibration:  r.EnableVibration,
		VibrationPattern: slices.Clone(r.VibrationPattern),
		Definition:       ch,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        now,
	}
}
