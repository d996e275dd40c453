package theme

// Board palette. A single fixed scheme; per-user themes did not survive the
// move to a shared remote board.
const (
	Highlight      = "#F5C2E7"
	Subtle         = "#6C7086"
	Normal         = "#CDD6F4"
	SelectedBorder = "#89B4FA"
	SelectedBg     = "#313244"
	TaskBg         = "#1E1E2E"

	InfoFg    = "#89DCEB"
	InfoBg    = "#1E1E2E"
	WarningFg = "#F9E2AF"
	WarningBg = "#1E1E2E"
	ErrorFg   = "#F38BA8"
	ErrorBg   = "#1E1E2E"

	PriorityHigh   = "#F38BA8"
	PriorityMedium = "#FAB387"
	PriorityNormal = "#A6E3A1"
	PriorityLow    = "#6C7086"
)
