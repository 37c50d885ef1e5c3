// Package compose builds the outgoing alert payloads. Pure functions:
// formatting only, no I/O.
package compose

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"launchwatch/internal/core/domain"
)

// Alert is everything needed to render one notification.
type Alert struct {
	Candidate *domain.TokenCandidate
	Metadata  domain.TokenMetadata
	Age       string
	Signature string
	Wallet    string
	Time      time.Time
}

// Message renders the Telegram Markdown alert body.
func Message(a Alert) string {
	amount := FormatRawAmount(a.Candidate.RawAmount, a.Candidate.Decimals)
	if a.Candidate.RawAmount == "" {
		// Push payloads carry only a UI-scale float.
		amount = strconv.FormatFloat(a.Candidate.UIAmount, 'f', -1, 64)
	}

	var b strings.Builder
	b.WriteString("🚨 *NEW TOKEN LAUNCH DETECTED!* 🚨\n\n")
	fmt.Fprintf(&b, "✅ *Token Name:* %s (%s)\n", a.Metadata.Name, a.Metadata.Symbol)
	fmt.Fprintf(&b, "✅ *Mint Address:* `%s`\n", a.Candidate.Mint)
	fmt.Fprintf(&b, "✅ *Amount:* %s %s\n", amount, a.Metadata.Symbol)
	fmt.Fprintf(&b, "✅ *Token Age:* %s\n", a.Age)
	fmt.Fprintf(&b, "✅ *TX Link:* https://solscan.io/tx/%s\n", a.Signature)
	fmt.Fprintf(&b, " • [View on DexScreener](https://dexscreener.com/solana/%s)\n\n", a.Candidate.Mint)
	fmt.Fprintf(&b, "*Wallet:* `%s`\n", a.Wallet)
	fmt.Fprintf(&b, "*Time:* %s", a.Time.UTC().Format("2006-01-02 15:04:05 UTC"))
	return b.String()
}

// FormatRawAmount renders a raw integer amount string with the decimal
// point inserted, trailing zeros and a bare point stripped:
// ("1500000", 6) -> "1.5". Decimal-string arithmetic keeps full
// precision for amounts beyond float range. Unparseable input is
// returned unchanged.
func FormatRawAmount(raw string, decimals int) string {
	digits := raw
	if digits == "" || !allDigits(digits) {
		return raw
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	if decimals <= 0 {
		return digits
	}

	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	intPart := digits[:len(digits)-decimals]
	fracPart := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAge renders an age duration into the coarse human buckets the
// alert uses.
func FormatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days", int(d.Hours()/24))
	}
}

// UnknownAge is rendered when no age source could answer.
const UnknownAge = "Unknown"
