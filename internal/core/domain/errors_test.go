package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    Kind
		wantOutcome string
	}{
		{name: "bad request", err: BadRequest(ErrNoQuery), wantKind: KindBadRequest, wantOutcome: OutcomeBadRequest},
		{name: "upstream", err: Upstream(errors.New("boom")), wantKind: KindUpstream, wantOutcome: OutcomeUpstream},
		{name: "wrapped bad request", err: fmt.Errorf("decode: %w", BadRequest(errors.New("eof"))), wantKind: KindBadRequest, wantOutcome: OutcomeBadRequest},
		{name: "unclassified", err: errors.New("plain"), wantKind: KindUpstream, wantOutcome: OutcomeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.wantKind {
				t.Fatalf("kind: got %v, want %v", got, tt.wantKind)
			}
			if got := OutcomeFor(tt.err); got != tt.wantOutcome {
				t.Fatalf("outcome: got %q, want %q", got, tt.wantOutcome)
			}
		})
	}

	if got := OutcomeFor(nil); got != OutcomeOK {
		t.Fatalf("outcome for nil: got %q", got)
	}
}

func TestError_MessageIsCause(t *testing.T) {
	err := BadRequest(ErrNoQuery)
	if err.Error() != "No query provided" {
		t.Fatalf("message: got %q", err.Error())
	}
	if !errors.Is(err, ErrNoQuery) {
		t.Fatalf("expected errors.Is to match ErrNoQuery")
	}
}
