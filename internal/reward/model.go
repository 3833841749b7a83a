// File: internal/reward/model.go
package reward

// Reward is an item in the points store, stored in the rewards collection.
type Reward struct {
	ID             string `firestore:"-" json:"id"`
	Title          string `firestore:"title" json:"title"`
	Description    string `firestore:"description" json:"description"`
	PointsRequired int64  `firestore:"pointsRequired" json:"pointsRequired"`
	ImageURL       string `firestore:"imageUrl" json:"imageUrl,omitempty"`
	GradientStart  string `firestore:"gradientStart" json:"gradientStart"`
	GradientEnd    string `firestore:"gradientEnd" json:"gradientEnd"`
	Active         bool   `firestore:"active" json:"active"`
}

const (
	defaultGradientStart = "#5B8DEF"
	defaultGradientEnd   = "#3A6FE0"
)

// withDefaults fills the colours a document may omit.
func (r Reward) withDefaults() Reward {
	if r.GradientStart == "" {
		r.GradientStart = defaultGradientStart
	}
	if r.GradientEnd == "" {
		r.GradientEnd = defaultGradientEnd
	}
	return r
}

// DemoRewards is the starter catalogue inserted into an empty collection.
func DemoRewards() []Reward {
	return []Reward{
		{
			Title:          "Free Coffee",
			Description:    "Redeem for a small coffee at partner cafés.",
			PointsRequired: 100,
			GradientStart:  "#FF8A65",
			GradientEnd:    "#FF7043",
			Active:         true,
		},
		{
			Title:          "Adventure Sticker Pack",
			Description:    "Vinyl stickers for your water bottle.",
			PointsRequired: 150,
			GradientStart:  "#66BB6A",
			GradientEnd:    "#43A047",
			Active:         true,
		},
		{
			Title:          "10% Off Gear",
			Description:    "Save on your next adventure gear purchase.",
			PointsRequired: 300,
			GradientStart:  defaultGradientStart,
			GradientEnd:    defaultGradientEnd,
			Active:         true,
		},
	}
}
