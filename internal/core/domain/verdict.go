package domain

// MatchRule identifies which detection rule classified a transaction
// as a token launch.
type MatchRule string

const (
	RuleNone             MatchRule = ""
	RuleCreateAccount    MatchRule = "create_account"
	RuleMintOp           MatchRule = "mint_op"
	RuleAssociatedCreate MatchRule = "associated_create"
	RuleAnyTokenActivity MatchRule = "any_token_activity"
	RuleBalanceGrowth    MatchRule = "balance_growth"
	RulePositiveBalance  MatchRule = "positive_balance"
)

// Verdict is the classification result for a single transaction.
// Produced fresh per record, never persisted.
type Verdict struct {
	IsLaunch bool
	Rule     MatchRule
	Evidence Evidence
}

// Evidence describes what triggered a positive verdict: the matched
// instruction for rules 1-4, or the balance entry for rules 5-6.
type Evidence struct {
	Program string
	OpType  string
	Inner   bool
	Mint    string
}

// Negative is the zero verdict returned for non-launches and
// malformed records.
func Negative() Verdict {
	return Verdict{}
}
