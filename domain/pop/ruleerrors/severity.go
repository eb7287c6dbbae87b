package ruleerrors

import "github.com/pkg/errors"

// Ban scores assigned to a peer that sent an invalid endorsement.
const (
	BanScoreMalformedEndorsement  = 100
	BanScoreEndorsedBlockMissing  = 20
	BanScoreMissingContext        = 10
	BanScoreDuplicateEndorsement  = 0
	BanScoreUnclassifiedRuleError = 100
	BanScoreNonRuleError          = 0
)

var severities = map[RuleError]uint32{
	ErrMalformedPayload:           BanScoreMalformedEndorsement,
	ErrPayloadTooLarge:            BanScoreMalformedEndorsement,
	ErrBadPayoutScript:            BanScoreMalformedEndorsement,
	ErrBadSignature:               BanScoreMalformedEndorsement,
	ErrTooManyEndorsementsInBlock: BanScoreMalformedEndorsement,
	ErrBadContextLink:             BanScoreMalformedEndorsement,
	ErrEndorsedBlockNotAncestor:   BanScoreMalformedEndorsement,
	ErrEndorsedBlockMissing:       BanScoreEndorsedBlockMissing,
	ErrContainingBlockMissing:     BanScoreEndorsedBlockMissing,
	ErrMissingContext:             BanScoreMissingContext,
	ErrDuplicateEndorsement:       BanScoreDuplicateEndorsement,
	ErrReorgInvariantViolation:    BanScoreNonRuleError,
	ErrChainSelectionHalted:       BanScoreNonRuleError,
}

// Severity returns the ban score a peer earns for submitting data that was
// rejected with err. Errors that are not rule errors are local failures and
// score nothing.
func Severity(err error) uint32 {
	if err == nil {
		return 0
	}
	var ruleError RuleError
	if !errors.As(err, &ruleError) {
		return BanScoreNonRuleError
	}
	severity, ok := severities[newRuleError(ruleError.message)]
	if !ok {
		return BanScoreUnclassifiedRuleError
	}
	return severity
}

// IsRuleError returns whether err is, or wraps, a RuleError
func IsRuleError(err error) bool {
	var ruleError RuleError
	return errors.As(err, &ruleError)
}

// RuleName returns the name of the rule err violates, or "other" if err is
// not a rule error
func RuleName(err error) string {
	var ruleError RuleError
	if !errors.As(err, &ruleError) {
		return "other"
	}
	return ruleError.Rule()
}
