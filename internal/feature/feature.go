// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package feature implements lifecycle-managed feature flags.

A flag's status is a small state machine, separate from whether the feature
is enabled: created flags are initialized (their backing data prepared),
initialized flags may be migrated and rolled back repeatedly, and an
initialized or migrated flag can be switched on and off. Transitions happen
only through admin PATCH requests; an illegal transition is a validation
error, never a silent overwrite.
*/
package feature

import "time"

// Status is the lifecycle state of a flag.
type Status string

const (
	// StatusUncreated is virtual: it is what GET reports for a name with no
	// row yet. It is never stored.
	StatusUncreated Status = "uncreated"

	StatusCreated     Status = "created"
	StatusInitialized Status = "initialized"
	StatusMigrated    Status = "migrated"
	StatusRolledBack  Status = "rolled-back"
	StatusEnabled     Status = "enabled"
	StatusDisabled    Status = "disabled"
)

// transitions is the full edge set of the status machine.
var transitions = map[Status][]Status{
	StatusUncreated:   {StatusCreated},
	StatusCreated:     {StatusInitialized},
	StatusInitialized: {StatusMigrated, StatusEnabled},
	StatusMigrated:    {StatusInitialized, StatusRolledBack, StatusEnabled},
	StatusRolledBack:  {StatusMigrated},
	StatusEnabled:     {StatusDisabled},
	StatusDisabled:    {StatusEnabled},
}

// Valid reports whether the status names a known state.
func (s Status) Valid() bool {
	if s == StatusUncreated {
		return true
	}
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the machine allows moving from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Feature is one named flag.
type Feature struct {
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// On reports whether the flag is currently switched on.
func (f Feature) On() bool {
	return f.Status == StatusEnabled
}
