package model

// DefaultCounterLabel is used when a counter operation is given no label.
const DefaultCounterLabel = "default"

// CounterLabel returns the label, falling back to DefaultCounterLabel.
func CounterLabel(label string) string {
	if label == "" {
		return DefaultCounterLabel
	}
	return label
}

// ScopedCounterLabel returns the label used for the counter shown on an
// experience page for one user.
func ScopedCounterLabel(experienceID, userID string) string {
	return experienceID + "-" + userID
}
