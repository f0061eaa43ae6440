package eye

import "time"

// Defaults and well-known values of the eye CLI
const (
	// DefaultEyePath is the default eye binary invoked by the Client
	DefaultEyePath = "eye"

	// DefaultShell is the shell ExecRunner uses to interpret command lines
	DefaultShell = "/bin/sh"

	// DefaultGroup is the group name eye reports for processes declared
	// without an explicit group
	DefaultGroup = "__default__"

	// StateUnknown is returned when a process cannot be resolved
	StateUnknown = "unknown"

	// DefaultPollInterval is the default interval between status polls
	// for Wait and Watch
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultConfigDebounce is the default debounce for config file events
	DefaultConfigDebounce = 50 * time.Millisecond
)

// Node type tags used in the eye info tree
const (
	TypeApplication = "application"
	TypeGroup       = "group"
	TypeProcess     = "process"
)

// Operation represents a gateway operation type
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpLoad loads an eye config file
	OpLoad
	// OpStart starts an application
	OpStart
	// OpStop stops a process
	OpStop
	// OpStatus queries the state of a process
	OpStatus
	// OpList lists the loaded applications
	OpList
	// OpDestroy shuts the eye daemon down
	OpDestroy
)

// Operation string constants
const (
	opUnknownStr = "unknown"
	opLoadStr    = "load"
	opStartStr   = "start"
	opStopStr    = "stop"
	opStatusStr  = "status"
	opListStr    = "list"
	opDestroyStr = "destroy"
)

// String returns the string representation of an Operation
func (op Operation) String() string {
	switch op {
	case OpLoad:
		return opLoadStr
	case OpStart:
		return opStartStr
	case OpStop:
		return opStopStr
	case OpStatus:
		return opStatusStr
	case OpList:
		return opListStr
	case OpDestroy:
		return opDestroyStr
	default:
		return opUnknownStr
	}
}

// Args returns the eye subcommand arguments for this operation, excluding
// any operand such as an application name or config path.
func (op Operation) Args() string {
	switch op {
	case OpLoad:
		return "load"
	case OpStart:
		return "start"
	case OpStop:
		return "stop"
	case OpStatus, OpList:
		return "i -j"
	case OpDestroy:
		return "q -s"
	default:
		return ""
	}
}
