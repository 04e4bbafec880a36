package collection

// LoadState is where a view is in loading its collection.
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// View is the state of one page: the loaded collection, the active filter,
// the row open in the detail panel and the creation form.
//
// A View is owned by a single control flow and is not safe for concurrent use.
type View[T any, D any] struct {
	Items   []T
	State   LoadState
	LoadErr error

	Filter   string
	Selected *T

	Draft      D
	DialogOpen bool
	FormErr    error
}
