package dto

import "time"

// SessionInput identifies the finished drive that triggers a check.
type SessionInput struct {
	ID             string
	Status         string
	FuelEfficiency int
}

type AchievementOutput struct {
	Kind        string
	Name        string
	Description string
	Category    string
	Threshold   float64
	Unlocked    bool
	Progress    float64
	UnlockedAt  time.Time
}

type CheckOutput struct {
	Checked       bool
	NewlyUnlocked []AchievementOutput
}

type ListInput struct {
	// Filter is one of all, unlocked, in_progress, locked, or a category name.
	Filter string
}

type CategoryCount struct {
	Category string
	Unlocked int
	Total    int
}

type SummaryOutput struct {
	Unlocked   int
	Total      int
	Percent    int
	Categories []CategoryCount
}
