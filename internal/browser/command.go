package browser

// Command is one user interaction. The set is closed: SetCollectionFilter,
// SetSortMethod, SetSearchTerm and ViewEntry.
type Command interface {
	isCommand()
}

type SetCollectionFilter struct {
	Collection string
}

type SetSortMethod struct {
	Method string
}

type SetSearchTerm struct {
	Term string
}

// ViewEntry asks to open an entry's target URL.
type ViewEntry struct {
	ID string
}

func (SetCollectionFilter) isCommand() {}
func (SetSortMethod) isCommand()       {}
func (SetSearchTerm) isCommand()       {}
func (ViewEntry) isCommand()           {}
