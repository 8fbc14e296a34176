package engine

import "fmt"

// FeedbackTier grades a finished test for UI celebration. These are
// presentation tiers keyed on WPM only, independent of accuracy.
type FeedbackTier int

// Tiers, best first.
const (
	TierIncredible FeedbackTier = iota
	TierExcellent
	TierGood
	TierPlain
)

// TierFor maps a final WPM to its feedback tier.
func TierFor(wpm int) FeedbackTier {
	switch {
	case wpm >= 80:
		return TierIncredible
	case wpm >= 60:
		return TierExcellent
	case wpm >= 40:
		return TierGood
	default:
		return TierPlain
	}
}

// Message renders the completion message for the tier.
func (t FeedbackTier) Message(wpm, accuracy int) string {
	switch t {
	case TierIncredible:
		return fmt.Sprintf("Incredible! %d WPM with %d%% accuracy!", wpm, accuracy)
	case TierExcellent:
		return fmt.Sprintf("Excellent! %d WPM with %d%% accuracy!", wpm, accuracy)
	case TierGood:
		return fmt.Sprintf("Good job! %d WPM with %d%% accuracy!", wpm, accuracy)
	default:
		return fmt.Sprintf("Test completed! %d WPM with %d%% accuracy!", wpm, accuracy)
	}
}
