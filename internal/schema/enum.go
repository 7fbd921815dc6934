package schema

import (
	"strconv"
	"strings"

	"github.com/sumire/notifyschema/internal/domain"
)

// Member is one named constant of an enumeration. Value is int64 or string.
type Member struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Enum is a closed set of platform codes.
type Enum struct {
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// IsString reports whether the members are string codes.
func (e *Enum) IsString() bool {
	if len(e.Members) == 0 {
		return false
	}
	_, ok := e.Members[0].Value.(string)
	return ok
}

// Contains reports whether v equals one of the member values.
func (e *Enum) Contains(v any) bool {
	for _, m := range e.Members {
		if m.Value == v {
			return true
		}
	}
	return false
}

// Expected renders the member set for violation messages.
func (e *Enum) Expected() string {
	parts := make([]string, len(e.Members))
	for i, m := range e.Members {
		switch v := m.Value.(type) {
		case int64:
			parts[i] = m.Name + "(" + strconv.FormatInt(v, 10) + ")"
		case string:
			parts[i] = strconv.Quote(v)
		}
	}
	return e.Name + " one of " + strings.Join(parts, ", ")
}

func intMember[T ~int](name string, v T) Member {
	return Member{Name: name, Value: int64(v)}
}

func strMember[T ~string](v T) Member {
	return Member{Name: strings.ToUpper(string(v)), Value: string(v)}
}

var (
	EnumBadgeIconType = &Enum{Name: "AndroidBadgeIconType", Members: []Member{
		intMember("NONE", domain.BadgeIconNone),
		intMember("SMALL", domain.BadgeIconSmall),
		intMember("LARGE", domain.BadgeIconLarge),
	}}

	EnumCategory = &Enum{Name: "AndroidCategory", Members: []Member{
		strMember(domain.CategoryAlarm),
		strMember(domain.CategoryCall),
		strMember(domain.CategoryEmail),
		strMember(domain.CategoryError),
		strMember(domain.CategoryEvent),
		strMember(domain.CategoryMessage),
		strMember(domain.CategoryNavigation),
		strMember(domain.CategoryProgress),
		strMember(domain.CategoryPromo),
		strMember(domain.CategoryRecommendation),
		strMember(domain.CategoryReminder),
		strMember(domain.CategoryService),
		strMember(domain.CategorySocial),
		strMember(domain.CategoryStatus),
		strMember(domain.CategorySystem),
		strMember(domain.CategoryTransport),
	}}

	EnumColor = &Enum{Name: "AndroidColor", Members: []Member{
		strMember(domain.ColorRed),
		strMember(domain.ColorBlue),
		strMember(domain.ColorGreen),
		strMember(domain.ColorBlack),
		strMember(domain.ColorWhite),
		strMember(domain.ColorCyan),
		strMember(domain.ColorMagenta),
		strMember(domain.ColorYellow),
		strMember(domain.ColorLightGray),
		strMember(domain.ColorDarkGray),
		strMember(domain.ColorGray),
		strMember(domain.ColorLightGrey),
		strMember(domain.ColorDarkGrey),
		strMember(domain.ColorAqua),
		strMember(domain.ColorFuchsia),
		strMember(domain.ColorLime),
		strMember(domain.ColorMaroon),
		strMember(domain.ColorNavy),
		strMember(domain.ColorOlive),
		strMember(domain.ColorPurple),
		strMember(domain.ColorSilver),
		strMember(domain.ColorTeal),
	}}

	EnumGroupAlertBehavior = &Enum{Name: "AndroidGroupAlertBehavior", Members: []Member{
		intMember("ALL", domain.GroupAlertAll),
		intMember("SUMMARY", domain.GroupAlertSummary),
		intMember("CHILDREN", domain.GroupAlertChildren),
	}}

	EnumImportance = &Enum{Name: "AndroidImportance", Members: []Member{
		intMember("NONE", domain.ImportanceNone),
		intMember("MIN", domain.ImportanceMin),
		intMember("LOW", domain.ImportanceLow),
		intMember("DEFAULT", domain.ImportanceDefault),
		intMember("HIGH", domain.ImportanceHigh),
	}}

	EnumPriority = &Enum{Name: "AndroidPriority", Members: []Member{
		intMember("MIN", domain.PriorityMin),
		intMember("LOW", domain.PriorityLow),
		intMember("DEFAULT", domain.PriorityDefault),
		intMember("HIGH", domain.PriorityHigh),
		intMember("MAX", domain.PriorityMax),
	}}

	EnumVisibility = &Enum{Name: "AndroidVisibility", Members: []Member{
		intMember("SECRET", domain.VisibilitySecret),
		intMember("PRIVATE", domain.VisibilityPrivate),
		intMember("PUBLIC", domain.VisibilityPublic),
	}}

	EnumStyle = &Enum{Name: "AndroidStyle", Members: []Member{
		intMember("BIGPICTURE", domain.StyleBigPicture),
		intMember("BIGTEXT", domain.StyleBigText),
	}}

	// Variant tables pin the discriminant to their own tag.
	EnumStyleBigPicture = &Enum{Name: "AndroidStyle.BIGPICTURE", Members: []Member{
		intMember("BIGPICTURE", domain.StyleBigPicture),
	}}
	EnumStyleBigText = &Enum{Name: "AndroidStyle.BIGTEXT", Members: []Member{
		intMember("BIGTEXT", domain.StyleBigText),
	}}

	EnumSemanticAction = &Enum{Name: "AndroidSemanticAction", Members: []Member{
		intMember("NONE", domain.SemanticActionNone),
		intMember("REPLY", domain.SemanticActionReply),
		intMember("MARK_AS_READ", domain.SemanticActionMarkAsRead),
		intMember("MARK_AS_UNREAD", domain.SemanticActionMarkAsUnread),
		intMember("DELETE", domain.SemanticActionDelete),
		intMember("ARCHIVE", domain.SemanticActionArchive),
		intMember("MUTE", domain.SemanticActionMute),
		intMember("UNMUTE", domain.SemanticActionUnmute),
		intMember("THUMBS_UP", domain.SemanticActionThumbsUp),
		intMember("THUMBS_DOWN", domain.SemanticActionThumbsDown),
		intMember("CALL", domain.SemanticActionCall),
	}}

	EnumEditChoices = &Enum{Name: "AndroidEditChoices", Members: []Member{
		intMember("AUTO", domain.EditChoicesAuto),
		intMember("DISABLED", domain.EditChoicesDisabled),
		intMember("ENABLED", domain.EditChoicesEnabled),
	}}

	EnumChronometerDirection = &Enum{Name: "AndroidChronometerDirection", Members: []Member{
		strMember(domain.ChronometerUp),
		strMember(domain.ChronometerDown),
	}}
)
