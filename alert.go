package stockfolio

import "fmt"

// Alert directions.
const (
	Above = "above"
	Below = "below"
)

// Alert is a price target on a symbol. It triggers at most once: the
// check flips Triggered and records when, and triggered alerts are
// skipped on later checks.
type Alert struct {
	ID          string  `bson:"id" json:"id"`
	Symbol      string  `bson:"symbol" json:"symbol"`
	TargetPrice float64 `bson:"target_price" json:"target_price"`
	Direction   string  `bson:"direction" json:"direction"`
	Triggered   bool    `bson:"triggered" json:"triggered"`
	UserID      string  `bson:"user_id" json:"user_id"`
	CreatedAt   string  `bson:"created_at" json:"created_at"`
	TriggeredAt string  `bson:"triggered_at,omitempty" json:"triggered_at,omitempty"`
}

// ValidDirection reports whether d is a known alert direction.
func ValidDirection(d string) bool {
	return d == Above || d == Below
}

// ShouldTrigger reports whether the current price crosses the target.
// Already-triggered alerts never re-trigger.
func (a Alert) ShouldTrigger(price float64) bool {
	if a.Triggered {
		return false
	}
	switch a.Direction {
	case Above:
		return price >= a.TargetPrice
	case Below:
		return price <= a.TargetPrice
	}
	return false
}

func (a Alert) String() string {
	return fmt.Sprintf("%s %s %.2f", a.Symbol, a.Direction, a.TargetPrice)
}
