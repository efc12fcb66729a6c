package review

import (
	"errors"
	"testing"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func pending() *model.RedemptionCode {
	return &model.RedemptionCode{
		ID:           1,
		GameName:     "铃兰之剑",
		Code:         "ABC",
		CodeType:     model.CodePermanent,
		Status:       model.StatusActive,
		ReviewStatus: model.ReviewPending,
	}
}

func TestApproveAutoPublishes(t *testing.T) {
	m := NewMachine(Policy{AutoPublish: true})
	c := pending()

	change, err := m.Review(c, ActionApprove, "looks good", now)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if change.From != model.ReviewPending || change.To != model.ReviewApproved {
		t.Errorf("Unexpected change %+v", change)
	}
	if !change.EligibilityChanged || !c.Eligible() {
		t.Error("Expected approved code to become eligible")
	}
	if c.PublishDate == nil || !c.PublishDate.Equal(now) {
		t.Errorf("Expected publish date %v, got %v", now, c.PublishDate)
	}
	if c.ReviewNote == nil || *c.ReviewNote != "looks good" {
		t.Errorf("Expected note to be kept, got %v", c.ReviewNote)
	}
}

func TestApproveWithoutAutoPublish(t *testing.T) {
	m := NewMachine(Policy{AutoPublish: false})
	c := pending()

	change, err := m.Review(c, ActionApprove, "", now)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if change.EligibilityChanged || c.IsPublished {
		t.Error("Approval alone should not publish")
	}
	if c.ReviewNote != nil {
		t.Error("Empty note should not be stored")
	}
}

func TestRejectUnpublishes(t *testing.T) {
	m := NewMachine(Policy{AutoPublish: true})
	c := pending()
	c.IsPublished = true

	change, err := m.Review(c, ActionReject, "fake", now)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if change.To != model.ReviewRejected || c.IsPublished {
		t.Errorf("Expected rejected and unpublished, got %+v published=%v", change, c.IsPublished)
	}
	if change.EligibilityChanged {
		t.Error("A pending code was never eligible, so rejecting it changes nothing")
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	m := NewMachine(Policy{AutoPublish: true})

	// pending -> rejected -> approved
	c := pending()
	if _, err := m.Review(c, ActionReject, "", now); err != nil {
		t.Fatalf("Review reject: %v", err)
	}
	_, err := m.Review(c, ActionApprove, "", now)
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("Expected ErrInvalidTransition, got %v", err)
	}
	if c.ReviewStatus != model.ReviewRejected || c.IsPublished {
		t.Error("Failed transition must leave the code untouched")
	}

	c = pending()
	if _, err := m.Review(c, ActionApprove, "", now); err != nil {
		t.Fatalf("Review approve: %v", err)
	}
	for _, action := range []Action{ActionApprove, ActionReject} {
		if _, err := m.Review(c, action, "", now); !errors.Is(err, apperr.ErrInvalidTransition) {
			t.Errorf("%s on approved code: expected ErrInvalidTransition, got %v", action, err)
		}
	}
}

func TestUnknownAction(t *testing.T) {
	m := NewMachine(Policy{})
	if _, err := m.Review(pending(), Action("escalate"), "", now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestSetPublished(t *testing.T) {
	m := NewMachine(Policy{})

	tests := []struct {
		name    string
		review  model.ReviewStatus
		status  model.CodeStatus
		wantErr bool
	}{
		{"approved active", model.ReviewApproved, model.StatusActive, false},
		{"pending", model.ReviewPending, model.StatusActive, true},
		{"rejected", model.ReviewRejected, model.StatusActive, true},
		{"approved invalid", model.ReviewApproved, model.StatusInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pending()
			c.ReviewStatus = tt.review
			c.Status = tt.status

			change, err := m.SetPublished(c, true, now)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Fatalf("Expected ErrValidation, got %v", err)
				}
				if c.IsPublished {
					t.Error("Rejected toggle must not publish")
				}
				return
			}
			if err != nil {
				t.Fatalf("SetPublished: %v", err)
			}
			if !change.EligibilityChanged || !c.Eligible() {
				t.Error("Expected code to become eligible")
			}

			change, err = m.SetPublished(c, true, now.Add(time.Hour))
			if err != nil || change.EligibilityChanged {
				t.Errorf("Publishing twice should be a quiet success, got %+v %v", change, err)
			}
			if !c.PublishDate.Equal(now) {
				t.Error("Republishing must keep the first publish date")
			}

			change, err = m.SetPublished(c, false, now)
			if err != nil || !change.EligibilityChanged || c.Eligible() {
				t.Errorf("Expected unpublish to remove eligibility, got %+v %v", change, err)
			}
		})
	}
}

func TestFeedbackDowngradesAfterRepeatedFailures(t *testing.T) {
	m := NewMachine(Policy{AutoPublish: true, InvalidAfterFailures: 3})
	c := pending()
	if _, err := m.Review(c, ActionApprove, "", now); err != nil {
		t.Fatalf("Review: %v", err)
	}
	c.VerificationCount = 1

	m.Feedback(c, false)
	if c.VerificationCount != 0 || c.FailureCount != 1 || c.Status != model.StatusActive {
		t.Fatalf("Unexpected state after first failure: %+v", c)
	}
	m.Feedback(c, false)
	m.Feedback(c, false)
	if c.VerificationCount != 0 {
		t.Error("Verification count must not go negative")
	}
	if c.Status != model.StatusInvalid {
		t.Errorf("Expected invalid after 3 failures, got %s", c.Status)
	}
}

func TestFeedbackWellVerifiedCodeSurvives(t *testing.T) {
	m := NewMachine(Policy{InvalidAfterFailures: 3})
	c := pending()
	c.ReviewStatus = model.ReviewApproved
	c.IsPublished = true
	c.VerificationCount = 10

	for i := 0; i < 3; i++ {
		if change := m.Feedback(c, false); change.EligibilityChanged {
			t.Fatal("Well verified code should stay eligible")
		}
	}
	if c.Status != model.StatusActive || c.VerificationCount != 7 {
		t.Errorf("Unexpected state: status=%s vc=%d", c.Status, c.VerificationCount)
	}

	m.Feedback(c, true)
	if c.VerificationCount != 8 {
		t.Errorf("Expected success to add a verification, got %d", c.VerificationCount)
	}
}

func TestMarkInvalidAndReactivate(t *testing.T) {
	m := NewMachine(Policy{})
	c := pending()
	c.ReviewStatus = model.ReviewApproved
	c.IsPublished = true
	c.FailureCount = 4

	if change := m.MarkInvalid(c); !change.EligibilityChanged || c.Eligible() {
		t.Error("Marking invalid should remove eligibility")
	}

	change, err := m.Reactivate(c)
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if !change.EligibilityChanged || c.FailureCount != 0 || c.Status != model.StatusActive {
		t.Errorf("Unexpected state after reactivate: %+v", c)
	}

	if _, err := m.Reactivate(c); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("Reactivating an active code: expected ErrInvalidTransition, got %v", err)
	}
}
