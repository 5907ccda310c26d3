package wallet

// EventKind identifies a collection mutation.
type EventKind int

const (
	Added EventKind = iota
	Removed
	Adjusted
	Restored
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Adjusted:
		return "adjusted"
	case Restored:
		return "restored"
	default:
		return "unknown"
	}
}

// Event describes a mutation that has just been applied to a collection.
//
// Account is nil for Restored. Transaction is only set for Adjusted.
type Event struct {
	Kind        EventKind
	Account     *Account
	Transaction Transaction
}

// Observer is called synchronously after each mutation.
type Observer func(Event)

type subscription struct {
	id int
	fn Observer
}
