// internal/application/syncer/state.go
package syncer

// State is the lifecycle of a synchronizer.
//
// Uninitialized -> Loading -> Ready on session resolution,
// Ready -> Loading -> Ready on session change. There is no error
// terminal state: load failures resolve to Ready with empty state.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}
