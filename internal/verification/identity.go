package verification

import "strings"

// IdentityMatches reports whether the baseline record's owner identity equals
// the claimant's. It must be checked before any numeric comparison: numeric
// agreement never overrides an identity mismatch. An empty claimed identity
// never matches.
func IdentityMatches(claimedID, ownerID string) bool {
	claimed := strings.TrimSpace(claimedID)
	return claimed != "" && claimed == strings.TrimSpace(ownerID)
}

// identityMismatchVerdict is the fixed verdict for an owner-identity
// mismatch: no match, escalate, no field differences reported.
func identityMismatchVerdict() Verdict {
	return Verdict{Match: false, Flag: FlagReview}
}
