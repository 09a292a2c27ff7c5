package sched

import "errors"

var (
	// ErrInvalidWorkload is wrapped by every rejection of a descriptor list.
	ErrInvalidWorkload = errors.New("invalid workload")
	// ErrConfiguration is wrapped by every rejection of policy parameters.
	ErrConfiguration = errors.New("invalid configuration")
)
