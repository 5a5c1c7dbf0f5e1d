// Package domain contains the core entities of the study timer: the interval
// timer state machine, the question ledger, user settings and the liquid study
// time counter. Nothing in here touches storage, terminals or the network.
package domain

import "errors"

// Common domain errors.
var (
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrTaskNotFound   = errors.New("task not found")
	ErrInvalidMode    = errors.New("invalid timer mode")
	ErrInvalidURL     = errors.New("invalid URL")
	ErrUnknownPreset  = errors.New("unknown preset")
)
