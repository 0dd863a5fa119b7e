package rarity

// Tier is a rarity label assigned from an egg's hatch weight
type Tier string

const (
	TierSemiHuge  Tier = "semi_huge"
	TierHuge      Tier = "huge"
	TierSemiTitan Tier = "semi_titan"
	TierTitan     Tier = "titan"
	TierGodly     Tier = "godly"
)

// Tiers lists all known tiers in ascending weight-band order
var Tiers = []Tier{TierSemiHuge, TierHuge, TierSemiTitan, TierTitan, TierGodly}

// Classify maps a hatch weight in kilograms to its rarity tier.
// Bands are half-open [lo, hi) except the top band, which includes 15.0.
// Weights outside all bands return ok=false.
func Classify(weightKg float64) (Tier, bool) {
	switch {
	case weightKg >= 4.0 && weightKg < 5.0:
		return TierSemiHuge, true
	case weightKg >= 5.0 && weightKg < 7.0:
		return TierHuge, true
	case weightKg >= 7.0 && weightKg < 8.0:
		return TierSemiTitan, true
	case weightKg >= 8.0 && weightKg < 9.0:
		return TierTitan, true
	case weightKg >= 9.0 && weightKg <= 15.0:
		return TierGodly, true
	default:
		return "", false
	}
}
