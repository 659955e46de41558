package product

// Status is a product's progress toward transmission. Codes are ordered so
// that a higher code means the product has progressed further.
type Status int

const (
	Pending Status = 1
	Stored  Status = 2
	Error   Status = 3
	Sent    Status = 4
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Stored:
		return "STORED"
	case Error:
		return "ERROR"
	case Sent:
		return "SENT"
	default:
		return "UNKNOWN"
	}
}

// ActionKind names the last operation applied to a product.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionNew
	ActionModify
	ActionStore
	ActionSend
	ActionResend
)

func (k ActionKind) String() string {
	switch k {
	case ActionNew:
		return "NEW"
	case ActionModify:
		return "MODIFY"
	case ActionStore:
		return "STORE"
	case ActionSend:
		return "SEND"
	case ActionResend:
		return "RESEND"
	default:
		return "UNKNOWN"
	}
}

// Action is an operation kind with the free-text description recorded for it.
// It is a plain value owned by one product.
type Action struct {
	Kind        ActionKind `json:"kind"`
	Description string     `json:"description"`
}

// GroupStatus summarizes a channel's products. Pending, Sent and HasError are
// derived by AggregateStatus; Modified, Deleted and FatalError are overrides
// written by orchestration.
type GroupStatus int

const (
	GroupPending GroupStatus = iota + 1
	GroupSent
	GroupHasError
	GroupModified
	GroupDeleted
	GroupFatalError
)

// IsOverride reports whether the status is set externally rather than derived.
func (g GroupStatus) IsOverride() bool {
	return g == GroupModified || g == GroupDeleted || g == GroupFatalError
}

func (g GroupStatus) String() string {
	switch g {
	case GroupPending:
		return "PENDING"
	case GroupSent:
		return "SENT"
	case GroupHasError:
		return "HAS_ERROR"
	case GroupModified:
		return "MODIFIED"
	case GroupDeleted:
		return "DELETED"
	case GroupFatalError:
		return "FATAL_ERROR"
	default:
		return "UNKNOWN"
	}
}
