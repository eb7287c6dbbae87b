package misbehaviortracker

import (
	"testing"
	"time"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/pkg/errors"
)

type fakeClock struct {
	now time.Time
}

func (fc *fakeClock) Now() time.Time {
	return fc.now
}

func (fc *fakeClock) advance(d time.Duration) {
	fc.now = fc.now.Add(d)
}

func TestRecordSeverities(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1600000000, 0)}
	tracker := newWithClock(100, false, clock.Now)

	missingContext := ruleerrors.NewErrMissingContext(externalapi.IntermediateChain,
		externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1}))

	score, banned := tracker.Record("peer", ruleerrors.ErrDuplicateEndorsement)
	if score != 0 || banned {
		t.Fatalf("duplicates must not be scored, got %d, %t", score, banned)
	}
	score, banned = tracker.Record("peer", errors.New("local failure"))
	if score != 0 || banned {
		t.Fatalf("local failures must not be scored, got %d, %t", score, banned)
	}

	score, banned = tracker.Record("peer", missingContext)
	if score != 10 || banned {
		t.Fatalf("expected score 10 after missing context, got %d, %t", score, banned)
	}
	score, banned = tracker.Record("peer", ruleerrors.Errorf(ruleerrors.ErrEndorsedBlockMissing, "unknown"))
	if score != 30 || banned {
		t.Fatalf("expected score 30 after a missing endorsed block, got %d, %t", score, banned)
	}

	score, banned = tracker.Record("other", ruleerrors.Errorf(ruleerrors.ErrBadSignature, "bad"))
	if score != 100 || !banned {
		t.Fatalf("expected a bad signature to ban, got %d, %t", score, banned)
	}
	if tracker.Score("peer") != 30 {
		t.Fatalf("scores of different peers leaked into each other")
	}
}

func TestTransientScoreDecays(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1600000000, 0)}
	tracker := newWithClock(100, false, clock.Now)

	tracker.Record("peer", ruleerrors.Errorf(ruleerrors.ErrEndorsedBlockMissing, "unknown"))
	tracker.Record("peer", ruleerrors.ErrBadPayoutScript)
	if tracker.Score("peer") != 120 {
		t.Fatalf("expected score 120, got %d", tracker.Score("peer"))
	}

	clock.advance(halflife * time.Second)
	score := tracker.Score("peer")
	if score < 109 || score > 110 {
		t.Fatalf("expected the transient part to halve after %d seconds, got %d", halflife, score)
	}

	clock.advance((lifetime + 1) * time.Second)
	if tracker.Score("peer") != 100 {
		t.Fatalf("expected only the persistent part to remain, got %d", tracker.Score("peer"))
	}

	tracker.Reset("peer")
	if tracker.Score("peer") != 0 {
		t.Fatalf("expected Reset to clear the score")
	}
}

func TestOnBan(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1600000000, 0)}
	tracker := newWithClock(50, false, clock.Now)

	var bannedPeers []string
	tracker.OnBan(func(peerID string, score uint32) {
		bannedPeers = append(bannedPeers, peerID)
	})

	missingContext := ruleerrors.NewErrMissingContext(externalapi.SecurityChain,
		externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{2}))
	for i := 0; i < 4; i++ {
		_, banned := tracker.Record("slow", missingContext)
		if banned {
			t.Fatalf("peer banned after %d missing contexts", i+1)
		}
	}
	_, banned := tracker.Record("slow", missingContext)
	if !banned {
		t.Fatalf("expected the fifth missing context to reach the threshold")
	}
	if len(bannedPeers) != 1 || bannedPeers[0] != "slow" {
		t.Fatalf("unexpected ban callbacks %v", bannedPeers)
	}
}

func TestDisableBanning(t *testing.T) {
	tracker := New(100, true)
	score, banned := tracker.Record("peer", ruleerrors.ErrMalformedPayload)
	if score != 0 || banned {
		t.Fatalf("expected no scoring with banning disabled, got %d, %t", score, banned)
	}
}
