package quota

import (
	"testing"
	"time"
)

func TestDeadlineNotReachedImmediately(t *testing.T) {
	q := NewDeadline(time.Hour)
	if q.IsReached() {
		t.Error("IsReached() = true immediately after construction, want false")
	}
}

func TestDeadlineReachedAfterElapsed(t *testing.T) {
	q := NewDeadline(-time.Second) // already in the past
	if !q.IsReached() {
		t.Error("IsReached() = false for a deadline already in the past, want true")
	}
}

func TestManualStartsUnreached(t *testing.T) {
	var q Manual
	if q.IsReached() {
		t.Error("IsReached() = true before Reach(), want false")
	}
}

func TestManualReach(t *testing.T) {
	var q Manual
	q.Reach()
	if !q.IsReached() {
		t.Error("IsReached() = false after Reach(), want true")
	}
}
