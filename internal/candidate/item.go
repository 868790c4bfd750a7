package candidate

// Kind identifies how an item's action is carried out.
type Kind int

const (
	// KindApplication is a desktop entry; its Exec line runs through a shell.
	KindApplication Kind = iota
	// KindExecutable is a binary found on PATH, spawned directly.
	KindExecutable
	// KindLine is a line of input, echoed back on confirm.
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindExecutable:
		return "executable"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Item is one selectable entry. Items carry no identity of their own; the
// store position is the identity.
type Item struct {
	Name        string
	Description string
	Exec        string
	Kind        Kind
	Source      string // descriptor file or directory the item came from
}
