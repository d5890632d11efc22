package tui

// ViewState is the mode of a list screen.
type ViewState int

// List screen modes.
const (
	ViewStateList ViewState = iota
	ViewStateFilter
	ViewStateForm
	ViewStateConfirm
	ViewStateDetail
	ViewStateQuitting
)

func (s ViewState) String() string {
	switch s {
	case ViewStateList:
		return "list"
	case ViewStateFilter:
		return "filter"
	case ViewStateForm:
		return "form"
	case ViewStateConfirm:
		return "confirm"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}
