package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Signature is the identity projection of a job posting.
type Signature struct {
	Title        string
	Company      string
	LocationText string
	ExternalURL  string
}

// Signed is implemented by records that can be deduplicated.
type Signed interface {
	Signature() Signature
}

func (s Signature) Signature() Signature { return s }

// ComputeFingerprint returns the lowercase hex sha256 of "title|company|location",
// each field lowercased and trimmed. ExternalURL does not contribute.
func ComputeFingerprint(sig Signature) string {
	composite := fingerprintField(sig.Title) + "|" +
		fingerprintField(sig.Company) + "|" +
		fingerprintField(sig.LocationText)

	sum := sha256.Sum256([]byte(composite))
	return hex.EncodeToString(sum[:])
}

func fingerprintField(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
