package admission

import "admission/internal/admission/models"

const (
	// MinimumAge is the youngest age, in whole years, that can be admitted.
	MinimumAge = 21

	// MinimumCreditLimit is the lowest credit limit an admitted user may hold.
	MinimumCreditLimit int64 = 500
)

// CreditPolicy describes how a tier's credit limit is derived.
type CreditPolicy struct {
	// HasCreditLimit is false for tiers exempt from credit limits; the oracle
	// is not consulted for them.
	HasCreditLimit bool
	// Multiplier is applied to the oracle's base limit.
	Multiplier int64
}

var (
	noCreditLimit      = CreditPolicy{HasCreditLimit: false}
	standardCreditPlan = CreditPolicy{HasCreditLimit: true, Multiplier: 1}
	creditPolicies     = map[models.ClientTier]CreditPolicy{
		models.TierVeryImportant: noCreditLimit,
		models.TierImportant:     {HasCreditLimit: true, Multiplier: 2},
		models.TierRegular:       standardCreditPlan,
	}
)

// CreditPolicyFor returns the credit policy for tier. Tiers without an entry
// get the standard policy.
func CreditPolicyFor(tier models.ClientTier) CreditPolicy {
	if p, ok := creditPolicies[tier]; ok {
		return p
	}
	return standardCreditPlan
}

// Limit applies the policy multiplier to a base limit.
func (p CreditPolicy) Limit(base int64) int64 {
	return base * p.Multiplier
}

// ShouldDeny reports whether the user's credit limit rules out admission.
// Users without a credit limit are never denied here.
func ShouldDeny(user *models.User) bool {
	return user.HasCreditLimit && user.CreditLimit < MinimumCreditLimit
}
