package folio

// AccountPolicy describes how an account's transactions interact with its
// cash balance and with external capital. It replaces inline account-name
// matching in the replay loops with an explicit capability.
type AccountPolicy struct {
	// ContributionIsExternalInflow marks accounts funded directly by
	// payroll (retirement plans): a Buy there is itself the external
	// deposit. It must not debit cash during holdings replay (no cash
	// ever existed in the account) and it counts as a positive external
	// flow for performance purposes.
	ContributionIsExternalInflow bool
}

// PolicySet maps account identifiers to their policy. Unknown accounts get
// the zero policy: taxable semantics, buys debit cash and are internal
// conversions of already-counted capital.
type PolicySet map[string]AccountPolicy

// Of returns the policy for an account, defaulting to taxable semantics.
func (ps PolicySet) Of(account string) AccountPolicy {
	return ps[account]
}

// NewPolicySet builds a policy set marking the given accounts as
// retirement plans (contribution is the external inflow).
func NewPolicySet(retirementAccounts ...string) PolicySet {
	ps := make(PolicySet, len(retirementAccounts))
	for _, account := range retirementAccounts {
		ps[account] = AccountPolicy{ContributionIsExternalInflow: true}
	}
	return ps
}
