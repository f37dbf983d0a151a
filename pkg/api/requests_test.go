package api

import (
	"context"
	"testing"
)

func TestRequestsSupersede(t *testing.T) {
	r := NewRequests()
	first := r.Begin(context.Background(), ListRequest)
	second := r.Begin(context.Background(), ListRequest)

	if first.Gen >= second.Gen {
		t.Fatalf("generations not increasing: %d, %d", first.Gen, second.Gen)
	}
	if first.Ctx.Err() == nil {
		t.Error("superseded request should be cancelled")
	}
	if r.Current(first) {
		t.Error("superseded ticket should not be current")
	}
	if !r.Current(second) {
		t.Error("latest ticket should be current")
	}
	if r.Finish(first) {
		t.Error("stale response must be discarded")
	}
	if !r.Finish(second) {
		t.Error("current response should be applied")
	}
	if second.Ctx.Err() == nil {
		t.Error("finished ticket should release its context")
	}
}

func TestRequestsKindsAreIndependent(t *testing.T) {
	r := NewRequests()
	list := r.Begin(context.Background(), ListRequest)
	detail := r.Begin(context.Background(), DetailRequest)
	if list.Ctx.Err() != nil {
		t.Error("a detail request must not cancel the list request")
	}
	if !r.Current(list) || !r.Current(detail) {
		t.Error("both tickets should be current")
	}
}

func TestRequestsCancelAll(t *testing.T) {
	r := NewRequests()
	list := r.Begin(context.Background(), ListRequest)
	detail := r.Begin(context.Background(), DetailRequest)
	r.CancelAll()
	if list.Ctx.Err() == nil || detail.Ctx.Err() == nil {
		t.Error("CancelAll should cancel every in-flight request")
	}
	if r.Current(list) || r.Current(detail) {
		t.Error("cancelled tickets should not be current")
	}
}

func TestZeroTicketIsNeverCurrent(t *testing.T) {
	r := NewRequests()
	if r.Current(Ticket{}) || r.Finish(Ticket{}) {
		t.Error("zero ticket should never be current")
	}
	if ListRequest.String() != "list" || DetailRequest.String() != "detail" || FetchRequest.String() != "fetch" {
		t.Error("kind names")
	}
}
