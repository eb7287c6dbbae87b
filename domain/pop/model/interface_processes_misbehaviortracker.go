package model

// MisbehaviorTracker accumulates ban scores of peers that submit invalid data
type MisbehaviorTracker interface {
	Record(peerID string, err error) (score uint32, banned bool)
	Score(peerID string) uint32
	Reset(peerID string)
	OnBan(callback func(peerID string, score uint32))
}
