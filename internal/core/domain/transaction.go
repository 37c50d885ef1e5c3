package domain

import "encoding/json"

// Known program labels as reported by the jsonParsed transaction encoding.
const (
	TokenProgram           = "spl-token"
	AssociatedTokenProgram = "spl-associated-token-account"
)

// TransactionRecord is a parsed Solana transaction as returned by
// getTransaction with jsonParsed encoding. The shape mirrors the RPC
// response; accessors below are nil-safe so a partial record never
// panics downstream.
type TransactionRecord struct {
	Signature   string           `json:"-"`
	BlockTime   int64            `json:"blockTime"`
	Transaction *TransactionBody `json:"transaction"`
	Meta        *TransactionMeta `json:"meta"`
}

type TransactionBody struct {
	Message Message `json:"message"`
}

type Message struct {
	AccountKeys  []AccountKey  `json:"accountKeys"`
	Instructions []Instruction `json:"instructions"`
}

type AccountKey struct {
	Pubkey string `json:"pubkey"`
	Signer bool   `json:"signer"`
}

type TransactionMeta struct {
	Err               any                `json:"err"`
	InnerInstructions []InnerInstruction `json:"innerInstructions"`
	PreTokenBalances  []TokenBalance     `json:"preTokenBalances"`
	PostTokenBalances []TokenBalance     `json:"postTokenBalances"`
}

type InnerInstruction struct {
	Index        int           `json:"index"`
	Instructions []Instruction `json:"instructions"`
}

// Instruction is a single top-level or inner instruction. Program and
// Parsed are only populated for programs the RPC node knows how to
// decode; raw instructions carry just ProgramID.
type Instruction struct {
	Program   string    `json:"program"`
	ProgramID string    `json:"programId"`
	Parsed    *ParsedOp `json:"parsed"`
}

// ParsedOp is the decoded operation descriptor. Some programs (memo)
// encode "parsed" as a bare string instead of an object; those decode
// to an empty op rather than failing the whole record.
type ParsedOp struct {
	Type string         `json:"type"`
	Info map[string]any `json:"info"`
}

func (p *ParsedOp) UnmarshalJSON(data []byte) error {
	type alias ParsedOp
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		*p = ParsedOp{}
		return nil
	}
	*p = ParsedOp(a)
	return nil
}

// OpType returns the parsed operation name, or "" for raw instructions.
func (in Instruction) OpType() string {
	if in.Parsed == nil {
		return ""
	}
	return in.Parsed.Type
}

// OuterInstructions returns the top-level instructions in record order.
func (r *TransactionRecord) OuterInstructions() []Instruction {
	if r == nil || r.Transaction == nil {
		return nil
	}
	return r.Transaction.Message.Instructions
}

// InnerGroups returns the nested instruction groups in record order.
func (r *TransactionRecord) InnerGroups() []InnerInstruction {
	if r == nil || r.Meta == nil {
		return nil
	}
	return r.Meta.InnerInstructions
}

// PreTokenBalances returns the pre-state token balances, possibly nil.
func (r *TransactionRecord) PreTokenBalances() []TokenBalance {
	if r == nil || r.Meta == nil {
		return nil
	}
	return r.Meta.PreTokenBalances
}

// PostTokenBalances returns the post-state token balances, possibly nil.
func (r *TransactionRecord) PostTokenBalances() []TokenBalance {
	if r == nil || r.Meta == nil {
		return nil
	}
	return r.Meta.PostTokenBalances
}
