package privilege

// Polarity represents the vote a matching rule casts.
type Polarity string

const (
	// PolarityGrant allows the action.
	PolarityGrant Polarity = "GRANT"
	// PolarityDeny blocks the action.
	PolarityDeny Polarity = "DENY"
)

// IsValid reports whether the polarity is one of the two known values.
// Abstention is not a polarity: a role abstains by having no matching rule.
func (p Polarity) IsValid() bool {
	return p == PolarityGrant || p == PolarityDeny
}
