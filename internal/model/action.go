package model

// ActionName identifies a registered user command.
type ActionName string

const (
	// ActionFold collapses the block under the cursor.
	ActionFold ActionName = "foldcode"
	// ActionUnfold restores the block under the cursor.
	ActionUnfold ActionName = "unfoldcode"
)

// Label returns the menu text of the action.
func (a ActionName) Label() string {
	switch a {
	case ActionFold:
		return "Fold Code"
	case ActionUnfold:
		return "Unfold Code"
	default:
		return string(a)
	}
}

// ActionState is the answer of an update handler.
type ActionState int

const (
	// ActionEnabled means the action may be activated.
	ActionEnabled ActionState = iota
	// ActionDisabledForWidget means the focused widget cannot run the action.
	ActionDisabledForWidget
)

// Popup is a context menu being populated before display.
type Popup struct {
	Actions []ActionName
}

// Attach appends an action to the popup once.
func (p *Popup) Attach(action ActionName) {
	for _, a := range p.Actions {
		if a == action {
			return
		}
	}

	p.Actions = append(p.Actions, action)
}

// Has reports whether the popup offers action.
func (p *Popup) Has(action ActionName) bool {
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}

	return false
}
