package tasks

// Severity classifies a notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification is a transient message about the outcome of an operation.
type Notification struct {
	Severity Severity
	Message  string
}

// Notifier receives notifications. Delivery is fire-and-forget and carries no
// ordering guarantee relative to state updates.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// Messages shown for each outcome.
const (
	MsgFetchFailed    = "Failed to fetch tasks!"
	MsgEmptyTask      = "Task cannot be empty!"
	MsgAdded          = "Task added!"
	MsgAddFailed      = "Failed to add task!"
	MsgSoftDeleted    = "Task moved to Recently Deleted."
	MsgDeleteFailed   = "Failed to delete task!"
	MsgRestored       = "Task restored!"
	MsgRestoreFailed  = "Failed to restore task!"
	MsgEmptyName      = "Task name cannot be empty!"
	MsgUpdated        = "Task updated!"
	MsgUpdateFailed   = "Failed to update task!"
	MsgPurged         = "Task deleted permanently!"
	MsgPurgeFailed    = "Failed to delete task permanently!"
	MsgCleared        = "Recently Deleted cleared."
	MsgNothingToClear = "Nothing to clear."
	MsgNotFound       = "Task not found."
	MsgBusy           = "Task is busy, try again."
	MsgNotEditing     = "No task is being edited."
)
