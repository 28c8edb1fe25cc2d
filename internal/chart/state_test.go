package chart

import "testing"

func TestParentName(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		parent string
		ok     bool
	}{
		{"top level", "pending", "", false},
		{"nested once", "pending.sending", "pending", true},
		{"nested twice", "working.waiting.idle", "working.waiting", true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			parent, ok := ParentName(tc.in)
			if ok != tc.ok || parent != tc.parent {
				t.Fatalf("ParentName(%q) = (%q, %v), want (%q, %v)", tc.in, parent, ok, tc.parent, tc.ok)
			}
		})
	}
}

func TestSiblingName(t *testing.T) {
	if got := SiblingName("pending", "cancelled"); got != "cancelled" {
		t.Fatalf("top level sibling = %q, want cancelled", got)
	}
	if got := SiblingName("pending.sending", "sent"); got != "pending.sent" {
		t.Fatalf("nested sibling = %q, want pending.sent", got)
	}
}

func TestUpSiblingName(t *testing.T) {
	if got := UpSiblingName("working.waiting.idle", "cancelled"); got != "working.cancelled" {
		t.Fatalf("up sibling = %q, want working.cancelled", got)
	}
}

func TestIsDescendantOf(t *testing.T) {
	if !IsDescendantOf("pending", "pending") {
		t.Fatal("a state must be its own descendant")
	}
	if !IsDescendantOf("pending", "pending.sending") {
		t.Fatal("pending.sending must be a descendant of pending")
	}
	if IsDescendantOf("pending", "pendingx") {
		t.Fatal("pendingx must not be a descendant of pending")
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewState("sent")
	s.Steps = []Step{{Name: "close", Order: 1}}
	s.RepeatableSteps["close"] = struct{}{}
	s.Transitions[Completed("close")] = Transition{Event: Completed("close"), Targets: []string{"closed"}, Reset: true}

	clone := s.Clone()
	clone.Steps[0].Complete = true
	delete(clone.RepeatableSteps, "close")
	clone.Transitions[Completed("close")] = Transition{Event: Completed("close"), Targets: []string{"other"}}

	if s.Steps[0].Complete {
		t.Fatal("mutating clone steps must not affect original")
	}
	if _, ok := s.RepeatableSteps["close"]; !ok {
		t.Fatal("mutating clone repeatable set must not affect original")
	}
	if s.Transitions[Completed("close")].Target() != "closed" {
		t.Fatal("mutating clone transitions must not affect original")
	}
}

func TestStateFindStep(t *testing.T) {
	s := NewState("sent")
	s.Steps = []Step{{Name: "close", Order: 1}}
	s.IgnoredSteps = []Step{{Name: "skipped", Order: 1}}

	if _, ok := s.FindStep("close"); !ok {
		t.Fatal("expected to find active step")
	}
	if _, ok := s.FindStep("skipped"); !ok {
		t.Fatal("expected to find ignored step")
	}
	if _, ok := s.FindStep("missing"); ok {
		t.Fatal("did not expect to find missing step")
	}
}
