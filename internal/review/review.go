// Package review implements the review state machine of a redemption code.
//
// The review dimension moves pending -> approved or pending -> rejected and
// stops there. The usability dimension (active <-> invalid) and the publish
// flag are independent of it; a code is exported only when all three line up.
package review

import (
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

// Action is a reviewer decision
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Valid reports whether a is a known action
func (a Action) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// Policy holds the tunables of the state machine
type Policy struct {
	// AutoPublish publishes an active code as soon as it is approved.
	AutoPublish bool
	// InvalidAfterFailures is the failure count at which feedback may
	// downgrade a code to invalid.
	InvalidAfterFailures int
}

// Change describes the effect of a transition
type Change struct {
	From, To           model.ReviewStatus
	EligibilityChanged bool
}

// Machine applies transitions to codes in memory; callers persist the result.
type Machine struct {
	policy Policy
}

// NewMachine creates a state machine with the given policy
func NewMachine(policy Policy) *Machine {
	if policy.InvalidAfterFailures <= 0 {
		policy.InvalidAfterFailures = 3
	}
	return &Machine{policy: policy}
}

// Review applies a reviewer decision to a pending code. Approved and rejected
// are terminal: any action on them fails with an invalid transition and c is
// left untouched.
func (m *Machine) Review(c *model.RedemptionCode, action Action, note string, now time.Time) (Change, error) {
	if !action.Valid() {
		return Change{}, apperr.Validation("unknown review action %q", action)
	}
	if c.ReviewStatus != model.ReviewPending {
		return Change{}, apperr.InvalidTransition("code %d is already %s", c.ID, c.ReviewStatus)
	}

	before := c.Eligible()
	change := Change{From: c.ReviewStatus}

	switch action {
	case ActionApprove:
		c.ReviewStatus = model.ReviewApproved
		if m.policy.AutoPublish && c.Status == model.StatusActive {
			publish(c, now)
		}
	case ActionReject:
		c.ReviewStatus = model.ReviewRejected
		c.IsPublished = false
	}
	if note != "" {
		c.ReviewNote = &note
	}

	change.To = c.ReviewStatus
	change.EligibilityChanged = before != c.Eligible()
	return change, nil
}

// SetPublished toggles the publish flag. Only approved, active codes can be
// toggled; anything else is a validation error and c is left untouched.
func (m *Machine) SetPublished(c *model.RedemptionCode, published bool, now time.Time) (Change, error) {
	if c.ReviewStatus != model.ReviewApproved || c.Status != model.StatusActive {
		return Change{}, apperr.Validation("code %d must be approved and active to change its publish flag (review=%s, status=%s)",
			c.ID, c.ReviewStatus, c.Status)
	}

	before := c.Eligible()
	if published {
		publish(c, now)
	} else {
		c.IsPublished = false
	}

	return Change{From: c.ReviewStatus, To: c.ReviewStatus, EligibilityChanged: before != c.Eligible()}, nil
}

// MarkInvalid flags c as no longer redeemable
func (m *Machine) MarkInvalid(c *model.RedemptionCode) Change {
	before := c.Eligible()
	c.Status = model.StatusInvalid
	return Change{From: c.ReviewStatus, To: c.ReviewStatus, EligibilityChanged: before != c.Eligible()}
}

// Reactivate restores an invalid code and forgets its reported failures
func (m *Machine) Reactivate(c *model.RedemptionCode) (Change, error) {
	if c.Status != model.StatusInvalid {
		return Change{}, apperr.InvalidTransition("code %d is not invalid", c.ID)
	}

	before := c.Eligible()
	c.Status = model.StatusActive
	c.FailureCount = 0
	return Change{From: c.ReviewStatus, To: c.ReviewStatus, EligibilityChanged: before != c.Eligible()}, nil
}

// Feedback records a user report. A success counts as a verification; a
// failure takes one back and, once failures reach the policy threshold and
// outnumber the remaining verifications, marks the code invalid.
func (m *Machine) Feedback(c *model.RedemptionCode, success bool) Change {
	before := c.Eligible()

	if success {
		c.VerificationCount++
	} else {
		c.FailureCount++
		if c.VerificationCount > 0 {
			c.VerificationCount--
		}
		if c.FailureCount >= m.policy.InvalidAfterFailures && c.FailureCount > c.VerificationCount {
			c.Status = model.StatusInvalid
		}
	}

	return Change{From: c.ReviewStatus, To: c.ReviewStatus, EligibilityChanged: before != c.Eligible()}
}

func publish(c *model.RedemptionCode, now time.Time) {
	c.IsPublished = true
	if c.PublishDate == nil {
		t := now
		c.PublishDate = &t
	}
}
