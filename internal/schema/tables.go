package schema

import "github.com/sumire/notifyschema/internal/domain"

type fieldOption func(*Field)

func field(name string, t SemanticType, opts ...fieldOption) Field {
	f := Field{Name: name, Type: t}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func required() fieldOption { return func(f *Field) { f.Required = true } }

func defaultsTo(v any) fieldOption { return func(f *Field) { f.Default = v } }

func enum(e *Enum) fieldOption { return func(f *Field) { f.Enum = e } }

func of(k Kind) fieldOption { return func(f *Field) { f.Kind = k } }

func immutable() fieldOption { return func(f *Field) { f.Immutable = true } }

// contentInfo, defaults, remoteInputHistory, bypassDnd and sound are TypeAny:
// accepted and forwarded without checks.
func androidTables() []*FieldTable {
	return []*FieldTable{
		newTable(KindNotificationAndroidOptions,
			field("actions", TypeObjectList, of(KindAction)),
			field("autoCancel", TypeBool, defaultsTo(true)),
			field("badgeIconType", TypeEnum, enum(EnumBadgeIconType)),
			field("category", TypeEnum, enum(EnumCategory)),
			field("channelId", TypeString),
			field("chronometerDirection", TypeEnum, enum(EnumChronometerDirection)),
			field("clickAction", TypeString),
			field("color", TypeColor),
			field("colorized", TypeBool),
			field("contentInfo", TypeAny),
			field("defaults", TypeAny),
			field("groupId", TypeString),
			field("groupAlertBehavior", TypeEnum, enum(EnumGroupAlertBehavior)),
			field("groupSummary", TypeBool, defaultsTo(false)),
			field("largeIcon", TypeString),
			field("lights", TypeLights),
			field("localOnly", TypeBool),
			field("number", TypeInteger),
			field("ongoing", TypeBool),
			field("onlyAlertOnce", TypeBool),
			field("pressAction", TypeObject, of(KindPressAction)),
			field("priority", TypeEnum, enum(EnumPriority), defaultsTo(int64(domain.PriorityDefault))),
			field("progress", TypeObject, of(KindProgress)),
			field("remoteInputHistory", TypeAny),
			field("shortcutId", TypeString),
			field("showTimestamp", TypeBool),
			field("smallIcon", TypeSmallIcon),
			field("sortKey", TypeString),
			field("style", TypeObject, of(KindStyle)),
			field("tag", TypeString),
			field("ticker", TypeString),
			field("timeoutAfter", TypeInteger),
			field("timestamp", TypeInteger),
			field("usesChronometer", TypeBool, defaultsTo(false)),
			field("vibrationPattern", TypeIntegerList),
			field("visibility", TypeEnum, enum(EnumVisibility), defaultsTo(int64(domain.VisibilityPrivate))),
		),

		newTable(KindAction,
			field("key", TypeString, required()),
			field("icon", TypeString, required()),
			field("title", TypeString, required()),
			field("allowGeneratedReplies", TypeBool),
			field("showsUserInterface", TypeBool),
			field("semanticAction", TypeEnum, enum(EnumSemanticAction)),
			field("pressAction", TypeObject, of(KindPressAction)),
			field("remoteInput", TypeObject, of(KindRemoteInput)),
		),

		newTable(KindRemoteInput,
			field("key", TypeString, required()),
			field("label", TypeString),
			field("choices", TypeStringList),
			field("allowFreeFormInput", TypeBool, defaultsTo(true)),
			field("editChoicesBeforeSending", TypeEnum, enum(EnumEditChoices)),
			field("allowDataTypes", TypeStringList),
		),

		newTable(KindPressAction,
			field("id", TypeString, required()),
			field("launchActivity", TypeString),
			field("mainComponent", TypeString),
		),

		newUnion(KindStyle,
			field("type", TypeEnum, enum(EnumStyle), required()),
			map[int64]Kind{
				int64(domain.StyleBigPicture): KindBigPictureStyle,
				int64(domain.StyleBigText):    KindBigTextStyle,
			},
		),

		newTable(KindBigPictureStyle,
			field("type", TypeEnum, enum(EnumStyleBigPicture), required()),
			field("picture", TypeString, required()),
			field("largeIcon", TypeString),
			field("title", TypeString),
			field("summary", TypeString),
		),

		newTable(KindBigTextStyle,
			field("type", TypeEnum, enum(EnumStyleBigText), required()),
			field("text", TypeString, required()),
			field("title", TypeString),
			field("summary", TypeString),
		),

		newTable(KindProgress,
			field("max", TypeInteger),
			field("current", TypeInteger),
			field("indeterminate", TypeBool),
		),

		newTable(KindChannel,
			field("channelId", TypeString, required()),
			field("name", TypeString, required()),
			field("bypassDnd", TypeAny),
			field("description", TypeString),
			field("enableLights", TypeBool, defaultsTo(true), immutable()),
			field("enableVibration", TypeBool, defaultsTo(true), immutable()),
			field("groupId", TypeString),
			field("importance", TypeEnum, enum(EnumImportance), defaultsTo(int64(domain.ImportanceDefault)), immutable()),
			field("lightColor", TypeColor),
			field("showBadge", TypeBool, defaultsTo(true)),
			field("sound", TypeAny),
			field("vibrationPattern", TypeIntegerList, immutable()),
			field("visibility", TypeEnum, enum(EnumVisibility), defaultsTo(int64(domain.VisibilityPrivate)), immutable()),
		),

		newTable(KindChannelGroup,
			field("channelGroupId", TypeString, required()),
			field("name", TypeString, required()),
			field("description", TypeString),
		),
	}
}
