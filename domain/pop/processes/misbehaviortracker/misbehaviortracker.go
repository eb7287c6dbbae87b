package misbehaviortracker

import (
	"sync"
	"time"

	"github.com/kaspanet/popd/domain/pop/model"
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
)

// misbehaviorTracker keeps a dynamic ban score per peer. Scores that stem
// from data that can never be valid are persistent, while scores of data
// that may just be early (missing context or missing blocks) decay.
type misbehaviorTracker struct {
	sync.Mutex
	banThreshold   uint32
	disableBanning bool
	now            func() time.Time

	scores    map[string]*dynamicBanScore
	callbacks []func(peerID string, score uint32)
}

// New instantiates a new MisbehaviorTracker
func New(banThreshold uint32, disableBanning bool) model.MisbehaviorTracker {
	return newWithClock(banThreshold, disableBanning, time.Now)
}

func newWithClock(banThreshold uint32, disableBanning bool, now func() time.Time) *misbehaviorTracker {
	return &misbehaviorTracker{
		banThreshold:   banThreshold,
		disableBanning: disableBanning,
		now:            now,
		scores:         make(map[string]*dynamicBanScore),
	}
}

// OnBan registers a callback that is called whenever a peer reaches the
// ban threshold
func (mt *misbehaviorTracker) OnBan(callback func(peerID string, score uint32)) {
	mt.Lock()
	defer mt.Unlock()
	mt.callbacks = append(mt.callbacks, callback)
}

// Record increases the ban score of peerID according to the severity of
// err, and returns the peer's score and whether it should be banned.
func (mt *misbehaviorTracker) Record(peerID string, err error) (uint32, bool) {
	severity := ruleerrors.Severity(err)

	mt.Lock()
	// No warning is logged and no score is calculated if banning is disabled.
	if mt.disableBanning {
		mt.Unlock()
		log.Debugf("Misbehaving peer %s: %s", peerID, err)
		return 0, false
	}

	banScore, ok := mt.scores[peerID]
	if !ok {
		banScore = &dynamicBanScore{}
		mt.scores[peerID] = banScore
	}

	warnThreshold := mt.banThreshold >> 1
	if severity == 0 {
		// The score is not being increased, but a warning message is still
		// logged if the score is above the warn threshold.
		score := banScore.value(mt.now())
		mt.Unlock()
		if score > warnThreshold {
			log.Warnf("Misbehaving peer %s: %s -- ban score is %d, it was not increased this time",
				peerID, err, score)
		}
		return score, false
	}

	var score uint32
	if severity >= ruleerrors.BanScoreMalformedEndorsement {
		score = banScore.increase(severity, 0, mt.now())
	} else {
		score = banScore.increase(0, severity, mt.now())
	}
	banned := score >= mt.banThreshold
	callbacks := mt.callbacks
	mt.Unlock()

	if score > warnThreshold {
		log.Warnf("Misbehaving peer %s: %s -- ban score increased to %d", peerID, err, score)
	}
	if banned {
		log.Warnf("Misbehaving peer %s -- banning", peerID)
		for _, callback := range callbacks {
			callback(peerID, score)
		}
	}
	return score, banned
}

// Score returns the current ban score of peerID
func (mt *misbehaviorTracker) Score(peerID string) uint32 {
	mt.Lock()
	defer mt.Unlock()
	banScore, ok := mt.scores[peerID]
	if !ok {
		return 0
	}
	return banScore.value(mt.now())
}

// Reset forgets everything about peerID
func (mt *misbehaviorTracker) Reset(peerID string) {
	mt.Lock()
	defer mt.Unlock()
	delete(mt.scores, peerID)
}
