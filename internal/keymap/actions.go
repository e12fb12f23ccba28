package keymap

// Layer scopes a set of actions. Layer values double as the section names
// under [keybindings] in the config file.
type Layer string

const (
	LayerGlobal     Layer = "global"
	LayerNavigation Layer = "navigation"
	LayerSearch     Layer = "search"
	LayerDialog     Layer = "dialog"
	LayerSecrets    Layer = "secrets"
	LayerVersions   Layer = "versions"
	LayerPayload    Layer = "payload"
)

// Action names a rebindable operation within a layer. Action values double
// as the config keys inside a layer section.
type Action string

const (
	// Global layer.
	ActionQuit     Action = "quit"
	ActionHelp     Action = "help"
	ActionTheme    Action = "theme"
	ActionBack     Action = "back"
	ActionCommands Action = "commands_toggle"

	// Navigation layer, shared by every list and table view.
	ActionUp       Action = "up"
	ActionDown     Action = "down"
	ActionPageUp   Action = "page_up"
	ActionPageDown Action = "page_down"
	ActionHome     Action = "home"
	ActionEnd      Action = "end"
	ActionSelect   Action = "select"

	// Search layer, active while a filterable table has focus.
	ActionSearchToggle Action = "toggle"
	ActionSearchExit   Action = "exit"

	// Dialog layer, active while a confirmation or error dialog is open.
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
	ActionDismiss Action = "dismiss"

	// Secret list layer. Activating a secret with the navigation select
	// key opens its versions; view_payload jumps straight to the latest
	// payload.
	ActionViewPayload Action = "view_payload"
	ActionCopy        Action = "copy"
	ActionNew         Action = "new"
	ActionDelete      Action = "delete"
	ActionLabels      Action = "labels"
	ActionIAM         Action = "iam"
	ActionReplication Action = "replication"
	ActionReload      Action = "reload"

	// Version list layer.
	ActionAdd     Action = "add"
	ActionDisable Action = "disable"
	ActionEnable  Action = "enable"
	ActionDestroy Action = "destroy"
)
