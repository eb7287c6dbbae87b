package ruleerrors

import (
	"fmt"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrMalformedPayload indicates an endorsement payload that could not
	// be decoded.
	ErrMalformedPayload = newRuleError("ErrMalformedPayload")

	// ErrPayloadTooLarge indicates an endorsement payload larger than
	// the network's MaxPayloadSize.
	ErrPayloadTooLarge = newRuleError("ErrPayloadTooLarge")

	// ErrBadPayoutScript indicates a payout script that matches none of
	// the standard templates.
	ErrBadPayoutScript = newRuleError("ErrBadPayoutScript")

	// ErrBadSignature indicates the endorser's signature does not verify
	// against the endorsement body.
	ErrBadSignature = newRuleError("ErrBadSignature")

	// ErrTooManyEndorsementsInBlock indicates that a local block would
	// contain more endorsements than MaxEndorsementsPerBlock.
	ErrTooManyEndorsementsInBlock = newRuleError("ErrTooManyEndorsementsInBlock")

	// ErrEndorsedBlockMissing indicates the endorsed block is unknown.
	ErrEndorsedBlockMissing = newRuleError("ErrEndorsedBlockMissing")

	// ErrEndorsedBlockNotAncestor indicates a first-order endorsement whose
	// endorsed block is not an ancestor of its containing block.
	ErrEndorsedBlockNotAncestor = newRuleError("ErrEndorsedBlockNotAncestor")

	// ErrContainingBlockMissing indicates the containing block is unknown.
	ErrContainingBlockMissing = newRuleError("ErrContainingBlockMissing")

	// ErrBadContextLink indicates context headers that do not chain
	// together by hash and consecutive height.
	ErrBadContextLink = newRuleError("ErrBadContextLink")

	// ErrMissingContext indicates that the endorsing block could not be
	// connected to the known context. See MissingContextError.
	ErrMissingContext = newRuleError("ErrMissingContext")

	// ErrDuplicateEndorsement indicates an endorsement that is already
	// indexed. It is benign.
	ErrDuplicateEndorsement = newRuleError("ErrDuplicateEndorsement")

	// ErrReorgInvariantViolation indicates the selector did not confirm
	// the target of a reorg after it was applied.
	ErrReorgInvariantViolation = newRuleError("ErrReorgInvariantViolation")

	// ErrChainSelectionHalted is returned by every mutation after a reorg
	// invariant violation.
	ErrChainSelectionHalted = newRuleError("ErrChainSelectionHalted")

	// ErrUnknownBlock indicates a query about a local block that is not
	// in the block index.
	ErrUnknownBlock = newRuleError("ErrUnknownBlock")

	// ErrBlockParentMissing indicates a connected block whose parent is
	// not in the block index.
	ErrBlockParentMissing = newRuleError("ErrBlockParentMissing")

	// ErrBadBlockHeight indicates a connected block whose height is not
	// its parent's height plus one.
	ErrBadBlockHeight = newRuleError("ErrBadBlockHeight")

	// ErrInvalidBaseHeader indicates a block whose header was rejected by
	// the base chain validator.
	ErrInvalidBaseHeader = newRuleError("ErrInvalidBaseHeader")

	// ErrMissingPopPayout indicates a coinbase lacks an expected PoP payout.
	ErrMissingPopPayout = newRuleError("ErrMissingPopPayout")

	// ErrWrongPopPayoutAmount indicates a coinbase pays a PoP payout with
	// the wrong amount.
	ErrWrongPopPayoutAmount = newRuleError("ErrWrongPopPayoutAmount")

	// ErrSnapshotCommitmentMismatch indicates a snapshot whose endorsements
	// do not hash to the commitment it carries.
	ErrSnapshotCommitmentMismatch = newRuleError("ErrSnapshotCommitmentMismatch")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of an endorsement or block failed due to one of the many
// validation rules. The caller can use errors.As to determine if a failure
// was specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Rule returns the name of the violated rule, without details
func (e RuleError) Rule() string {
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is reports whether target is the same rule as e, regardless of the
// details wrapped inside either of them.
func (e RuleError) Is(target error) bool {
	other, ok := target.(RuleError)
	return ok && other.message == e.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// Errorf wraps a formatted description in the given rule error
func Errorf(rule RuleError, format string, args ...interface{}) error {
	return errors.WithStack(RuleError{
		message: rule.message,
		inner:   errors.Errorf(format, args...),
	})
}

// Wrap wraps err in the given rule error
func Wrap(rule RuleError, err error) error {
	return errors.WithStack(RuleError{
		message: rule.message,
		inner:   err,
	})
}

// MissingContextError indicates that the path from an endorsing block to
// the stored context is broken at MissingHash.
type MissingContextError struct {
	ChainID     externalapi.ContextChainID
	MissingHash *externalapi.DomainHash
}

func (e MissingContextError) Error() string {
	return fmt.Sprintf("missing %s context block %s", e.ChainID, e.MissingHash)
}

// NewErrMissingContext creates a new MissingContextError wrapped in a RuleError
func NewErrMissingContext(chainID externalapi.ContextChainID, missingHash *externalapi.DomainHash) error {
	return errors.WithStack(RuleError{
		message: ErrMissingContext.message,
		inner:   MissingContextError{ChainID: chainID, MissingHash: missingHash},
	})
}

// MissingPayoutError lists the PoP payouts a coinbase lacks
type MissingPayoutError struct {
	MissingPayoutScripts []string
}

func (e MissingPayoutError) Error() string {
	return fmt.Sprintf("missing payouts to the following scripts: %v", e.MissingPayoutScripts)
}

// NewErrMissingPopPayout creates a new MissingPayoutError wrapped in a RuleError
func NewErrMissingPopPayout(missingPayoutScripts []string) error {
	return errors.WithStack(RuleError{
		message: ErrMissingPopPayout.message,
		inner:   MissingPayoutError{MissingPayoutScripts: missingPayoutScripts},
	})
}
