// Package classify turns parsed transaction records into launch
// verdicts. Everything here is pure: no I/O, no state, and malformed
// records classify as negative instead of failing.
package classify

import (
	"launchwatch/internal/core/domain"
)

// Operation sets checked against spl-token instructions, in priority
// order. createTokenAccount is the canonical create operation; it is
// carried through in the evidence so dashboards can count it apart
// from the equivalents.
var (
	createAccountOps = []string{
		"createTokenAccount",
		"createAccount",
		"initializeAccount",
		"initializeAccount2",
		"initializeAccount3",
	}

	mintOps = []string{
		"initializeMint",
		"initializeMint2",
		"mintTo",
		"mintToChecked",
	}

	associatedCreateOps = []string{
		"create",
		"createIdempotent",
	}
)

// Options tune the detector.
type Options struct {
	// PermissiveFallback enables rule 4: any parsed operation on the
	// token or associated-token program counts as launch activity.
	// Broad recall at the cost of precision; deployments disagree on
	// whether it should be active, so it stays a switch.
	PermissiveFallback bool

	// StrictNovelty restricts the positive-balance heuristic to mints
	// absent from the pre-state balances, so "first appearance in this
	// wallet's history" is not conflated with "any positive balance".
	StrictNovelty bool
}

// DefaultOptions matches the long-running deployment: permissive
// fallback on, plain positive-balance heuristic.
func DefaultOptions() Options {
	return Options{PermissiveFallback: true}
}

// Classify inspects a transaction record and decides whether it
// represents a new token launch. Rules are ordered and the first match
// wins: instructions are scanned (outer list first, then each inner
// group in record order), then the balance heuristics run.
func Classify(rec *domain.TransactionRecord, opts Options) domain.Verdict {
	if rec == nil || rec.Transaction == nil {
		return domain.Negative()
	}

	for _, in := range rec.OuterInstructions() {
		if v, ok := matchInstruction(in, false, opts); ok {
			return v
		}
	}
	for _, group := range rec.InnerGroups() {
		for _, in := range group.Instructions {
			if v, ok := matchInstruction(in, true, opts); ok {
				return v
			}
		}
	}

	pre := rec.PreTokenBalances()
	post := rec.PostTokenBalances()

	if len(post) > len(pre) {
		return domain.Verdict{
			IsLaunch: true,
			Rule:     domain.RuleBalanceGrowth,
		}
	}

	for _, b := range post {
		if !b.Positive() {
			continue
		}
		if opts.StrictNovelty && mintPresent(pre, b.Mint) {
			continue
		}
		return domain.Verdict{
			IsLaunch: true,
			Rule:     domain.RulePositiveBalance,
			Evidence: domain.Evidence{Mint: b.Mint},
		}
	}

	return domain.Negative()
}

func matchInstruction(in domain.Instruction, inner bool, opts Options) (domain.Verdict, bool) {
	op := in.OpType()
	if op == "" {
		return domain.Negative(), false
	}

	evidence := domain.Evidence{Program: in.Program, OpType: op, Inner: inner}

	switch in.Program {
	case domain.TokenProgram:
		if contains(createAccountOps, op) {
			return domain.Verdict{IsLaunch: true, Rule: domain.RuleCreateAccount, Evidence: evidence}, true
		}
		if contains(mintOps, op) {
			return domain.Verdict{IsLaunch: true, Rule: domain.RuleMintOp, Evidence: evidence}, true
		}
		if opts.PermissiveFallback {
			return domain.Verdict{IsLaunch: true, Rule: domain.RuleAnyTokenActivity, Evidence: evidence}, true
		}
	case domain.AssociatedTokenProgram:
		if contains(associatedCreateOps, op) {
			return domain.Verdict{IsLaunch: true, Rule: domain.RuleAssociatedCreate, Evidence: evidence}, true
		}
		if opts.PermissiveFallback {
			return domain.Verdict{IsLaunch: true, Rule: domain.RuleAnyTokenActivity, Evidence: evidence}, true
		}
	}

	return domain.Negative(), false
}

func contains(set []string, op string) bool {
	for _, s := range set {
		if s == op {
			return true
		}
	}
	return false
}

func mintPresent(balances []domain.TokenBalance, mint string) bool {
	for _, b := range balances {
		if b.Mint == mint {
			return true
		}
	}
	return false
}
