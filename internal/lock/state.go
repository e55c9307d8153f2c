package lock

// State is the lifecycle stage of a lock.
//
// A lock moves Unacquired -> Acquiring -> Held -> Released. A failed
// acquisition never produces a Handle, so callers only observe Held and Released.
type State int32

const (
	// StateUnacquired means no lock has been requested yet.
	StateUnacquired State = iota
	// StateAcquiring means the process is waiting for the operating system to grant the lock.
	StateAcquiring
	// StateHeld means the lock is granted and the handle is live.
	StateHeld
	// StateReleased means the handle was closed and the lock dropped.
	StateReleased
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnacquired:
		return "unacquired"
	case StateAcquiring:
		return "acquiring"
	case StateHeld:
		return "held"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}
