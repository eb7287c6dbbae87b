package model

// ForkSelector orders candidate tips
type ForkSelector interface {
	// Compare returns a positive number if a is preferred over b, a negative
	// number if b is preferred, and zero only if a and b are the same block.
	Compare(a, b *BlockNode) (int, error)
	SelectBest(candidates []*BlockNode) (*BlockNode, error)
}
