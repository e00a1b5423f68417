package genl

import "errors"

// Usage errors.
var (
	ErrNoFamily  = errors.New("family not discovered")
	ErrNoSchema  = errors.New("family has no registered schema")
	ErrNoCommand = errors.New("command not in family command table")
)

// ErrProtocol indicates a protocol violation in a kernel response.
var ErrProtocol = errors.New("generic netlink protocol violation")
