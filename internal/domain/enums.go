package domain

// AndroidBadgeIconType is the icon shown on the launcher badge.
type AndroidBadgeIconType int

const (
	BadgeIconNone  AndroidBadgeIconType = 0
	BadgeIconSmall AndroidBadgeIconType = 1
	BadgeIconLarge AndroidBadgeIconType = 2
)

// AndroidCategory is the system-wide category of a notification.
type AndroidCategory string

const (
	CategoryAlarm          AndroidCategory = "alarm"
	CategoryCall           AndroidCategory = "call"
	CategoryEmail          AndroidCategory = "email"
	CategoryError          AndroidCategory = "err"
	CategoryEvent          AndroidCategory = "event"
	CategoryMessage        AndroidCategory = "msg"
	CategoryNavigation     AndroidCategory = "navigation"
	CategoryProgress       AndroidCategory = "progress"
	CategoryPromo          AndroidCategory = "promo"
	CategoryRecommendation AndroidCategory = "recommendation"
	CategoryReminder       AndroidCategory = "reminder"
	CategoryService        AndroidCategory = "service"
	CategorySocial         AndroidCategory = "social"
	CategoryStatus         AndroidCategory = "status"
	CategorySystem         AndroidCategory = "sys"
	CategoryTransport      AndroidCategory = "transport"
)

// AndroidColor is a named colour understood by the native layer.
type AndroidColor string

const (
	ColorRed       AndroidColor = "red"
	ColorBlue      AndroidColor = "blue"
	ColorGreen     AndroidColor = "green"
	ColorBlack     AndroidColor = "black"
	ColorWhite     AndroidColor = "white"
	ColorCyan      AndroidColor = "cyan"
	ColorMagenta   AndroidColor = "magenta"
	ColorYellow    AndroidColor = "yellow"
	ColorLightGray AndroidColor = "lightgray"
	ColorDarkGray  AndroidColor = "darkgray"
	ColorGray      AndroidColor = "gray"
	ColorLightGrey AndroidColor = "lightgrey"
	ColorDarkGrey  AndroidColor = "darkgrey"
	ColorAqua      AndroidColor = "aqua"
	ColorFuchsia   AndroidColor = "fuchsia"
	ColorLime      AndroidColor = "lime"
	ColorMaroon    AndroidColor = "maroon"
	ColorNavy      AndroidColor = "navy"
	ColorOlive     AndroidColor = "olive"
	ColorPurple    AndroidColor = "purple"
	ColorSilver    AndroidColor = "silver"
	ColorTeal      AndroidColor = "teal"
)

// AndroidGroupAlertBehavior selects which members of a group make noise.
type AndroidGroupAlertBehavior int

const (
	GroupAlertAll      AndroidGroupAlertBehavior = 0
	GroupAlertSummary  AndroidGroupAlertBehavior = 1
	GroupAlertChildren AndroidGroupAlertBehavior = 2
)

// AndroidImportance mirrors NotificationManager.IMPORTANCE_*.
type AndroidImportance int

const (
	ImportanceNone    AndroidImportance = 0
	ImportanceMin     AndroidImportance = 1
	ImportanceLow     AndroidImportance = 2
	ImportanceDefault AndroidImportance = 3
	ImportanceHigh    AndroidImportance = 4
)

// AndroidPriority mirrors NotificationCompat.PRIORITY_* for pre-channel devices.
type AndroidPriority int

const (
	PriorityMin     AndroidPriority = -2
	PriorityLow     AndroidPriority = -1
	PriorityDefault AndroidPriority = 0
	PriorityHigh    AndroidPriority = 1
	PriorityMax     AndroidPriority = 2
)

// AndroidVisibility controls how much is shown on a secure lock screen.
type AndroidVisibility int

const (
	VisibilitySecret  AndroidVisibility = -1
	VisibilityPrivate AndroidVisibility = 0
	VisibilityPublic  AndroidVisibility = 1
)

// AndroidStyleType discriminates the Style union.
type AndroidStyleType int

const (
	StyleBigPicture AndroidStyleType = 0
	StyleBigText    AndroidStyleType = 1
)

// AndroidSemanticAction mirrors Notification.Action.SEMANTIC_ACTION_*.
type AndroidSemanticAction int

const (
	SemanticActionNone         AndroidSemanticAction = 0
	SemanticActionReply        AndroidSemanticAction = 1
	SemanticActionMarkAsRead   AndroidSemanticAction = 2
	SemanticActionMarkAsUnread AndroidSemanticAction = 3
	SemanticActionDelete       AndroidSemanticAction = 4
	SemanticActionArchive      AndroidSemanticAction = 5
	SemanticActionMute         AndroidSemanticAction = 6
	SemanticActionUnmute       AndroidSemanticAction = 7
	SemanticActionThumbsUp     AndroidSemanticAction = 8
	SemanticActionThumbsDown   AndroidSemanticAction = 9
	SemanticActionCall         AndroidSemanticAction = 10
)

// AndroidEditChoices mirrors RemoteInput.EDIT_CHOICES_BEFORE_SENDING_*.
type AndroidEditChoices int

const (
	EditChoicesAuto     AndroidEditChoices = 0
	EditChoicesDisabled AndroidEditChoices = 1
	EditChoicesEnabled  AndroidEditChoices = 2
)

// AndroidChronometerDirection is the counting direction of the chronometer.
type AndroidChronometerDirection string

const (
	ChronometerUp   AndroidChronometerDirection = "up"
	ChronometerDown AndroidChronometerDirection = "down"
)
