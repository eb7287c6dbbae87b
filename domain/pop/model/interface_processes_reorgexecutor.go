package model

// ReorgExecutor moves the selected chain to a new tip, keeping the
// endorsement index consistent with it.
type ReorgExecutor interface {
	ReorganizeTo(target *BlockNode) (*ChainChanges, error)
}
