package flowpath

// Style selects how a flow is traced between its endpoints.
type Style int

const (
	StyleLine Style = iota
	StyleArc
	StyleWave
)

var styleNames = [...]string{"line", "arc", "wave"}

func (s Style) String() string {
	if s < StyleLine || s > StyleWave {
		return "line"
	}
	return styleNames[s]
}

// ParseStyle maps a style tag to a Style. Unknown tags fall back to
// StyleLine rather than erroring, so a bad scene file still renders.
func ParseStyle(tag string) Style {
	switch tag {
	case "arc":
		return StyleArc
	case "wave":
		return StyleWave
	default:
		return StyleLine
	}
}

// Next cycles line → arc → wave → line.
func (s Style) Next() Style {
	switch s {
	case StyleLine:
		return StyleArc
	case StyleArc:
		return StyleWave
	default:
		return StyleLine
	}
}
