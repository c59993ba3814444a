package model

// RefreshMode selects how much work a view refresh does.
type RefreshMode int

const (
	// RefreshLight re-renders the tree the view already holds.
	RefreshLight RefreshMode = iota
	// RefreshFull rebuilds the tree through the pipeline, then re-renders it.
	RefreshFull
)

func (r RefreshMode) String() string {
	if r == RefreshFull {
		return "full"
	}

	return "light"
}

// Line is one rendered line of a tree.
type Line struct {
	Text   string
	Indent int
	// Anchor is the location reported when the cursor rests on the line.
	Anchor Location
	// Folded marks the placeholder line of a collapsed block.
	Folded bool
}

// Fold describes one registered fold for listings.
type Fold struct {
	Image    string    `yaml:"image"`
	Location Location  `yaml:"-"`
	Key      StableKey `yaml:"key"`
	Line     int       `yaml:"line"`
	Column   int       `yaml:"column"`
	Resolved bool      `yaml:"resolved"`
}
