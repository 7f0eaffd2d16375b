package feereminder

// Membership tier constants
const (
	TierBasic   = "Basic"
	TierPremium = "Premium"
	TierVIP     = "VIP"
)

// Tiers lists the membership tiers offered on member forms.
var Tiers = []string{TierBasic, TierPremium, TierVIP}

// Monthly fee per tier, in cents.
const (
	FeeBasicCents   = 100000
	FeePremiumCents = 200000
	FeeVIPCents     = 300000
	FeeDefaultCents = 5000 // unrecognized tiers fall back to a nominal fee
)

// FeeForTier maps a membership-tier label to its monthly fee in cents.
// An unrecognized label returns the default fee rather than an error.
// INVARIANT: pure function, no side effects
func FeeForTier(tier string) int {
	switch tier {
	case TierBasic:
		return FeeBasicCents
	case TierPremium:
		return FeePremiumCents
	case TierVIP:
		return FeeVIPCents
	default:
		return FeeDefaultCents
	}
}
