package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

type Category string

const (
	CategoryDistance    Category = "distance"
	CategoryConsistency Category = "consistency"
	CategoryExploration Category = "exploration"
	CategoryEfficiency  Category = "efficiency"
	CategorySpecial     Category = "special"
)

var categoryOrder = []Category{CategoryDistance, CategoryConsistency, CategoryExploration, CategoryEfficiency, CategorySpecial}

func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range categoryOrder {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown achievement category: %s", raw)
}

func (c Category) rank() int {
	for i, known := range categoryOrder {
		if c == known {
			return i
		}
	}
	return len(categoryOrder)
}

type Kind string

const (
	KindFirstMile        Kind = "first_mile"
	KindCenturyClub      Kind = "century_club"
	KindRoadWarrior      Kind = "road_warrior"
	KindThreeDayStreak   Kind = "three_day_streak"
	KindWeekWarrior      Kind = "week_warrior"
	KindFirstDestination Kind = "first_destination"
	KindExplorer         Kind = "explorer"
	KindPerfectDrive     Kind = "perfect_drive"
	KindEfficiencyMaster Kind = "efficiency_master"
)

type Definition struct {
	Kind        Kind
	Name        string
	Description string
	Category    Category
	Threshold   float64
}

func Catalog() []Definition {
	return []Definition{
		{KindFirstMile, "First Mile", "Complete your first mile", CategoryDistance, 1},
		{KindCenturyClub, "Century Club", "Drive 100 total miles", CategoryDistance, 100},
		{KindRoadWarrior, "Road Warrior", "Drive 500 total miles", CategoryDistance, 500},
		{KindThreeDayStreak, "Three Day Streak", "Complete drives on 3 consecutive days", CategoryConsistency, 3},
		{KindWeekWarrior, "Week Warrior", "Complete drives on 7 consecutive days", CategoryConsistency, 7},
		{KindFirstDestination, "First Destination", "Complete your first route", CategoryExploration, 1},
		{KindExplorer, "Explorer", "Complete 10 different destinations", CategoryExploration, 10},
		{KindPerfectDrive, "Perfect Drive", "Complete a drive with 5-star fuel efficiency", CategoryEfficiency, 1},
		{KindEfficiencyMaster, "Efficiency Master", "Maintain 5-star efficiency for 10 drives", CategoryEfficiency, 10},
	}
}

func DefinitionOf(kind Kind) (Definition, bool) {
	for _, d := range Catalog() {
		if d.Kind == kind {
			return d, true
		}
	}
	return Definition{}, false
}

// Stats are the aggregates a check evaluates the catalog against.
type Stats struct {
	TotalMiles         float64
	StreakDays         int
	CompletedRoutes    int
	UniqueDestinations int
	PerfectSessions    int
	// SessionPerfect is whether the session that triggered the check earned
	// five stars.
	SessionPerfect bool
}

// Evaluate returns the progress in [0,1] for kind and whether its unlock
// condition holds.
func Evaluate(kind Kind, stats Stats) (float64, bool, error) {
	ratio := func(value, threshold float64) (float64, bool) {
		return math.Min(1, value/threshold), value >= threshold
	}
	binary := func(ok bool) (float64, bool) {
		if ok {
			return 1, true
		}
		return 0, false
	}

	var progress float64
	var met bool
	switch kind {
	case KindFirstMile:
		progress, met = ratio(stats.TotalMiles, 1)
	case KindCenturyClub:
		progress, met = ratio(stats.TotalMiles, 100)
	case KindRoadWarrior:
		progress, met = ratio(stats.TotalMiles, 500)
	case KindThreeDayStreak:
		progress, met = ratio(float64(stats.StreakDays), 3)
	case KindWeekWarrior:
		progress, met = ratio(float64(stats.StreakDays), 7)
	case KindFirstDestination:
		progress, met = binary(stats.CompletedRoutes >= 1)
	case KindExplorer:
		progress, met = ratio(float64(stats.UniqueDestinations), 10)
	case KindPerfectDrive:
		progress, met = binary(stats.SessionPerfect)
	case KindEfficiencyMaster:
		progress, met = ratio(float64(stats.PerfectSessions), 10)
	default:
		return 0, false, fmt.Errorf("unknown achievement kind: %s", kind)
	}
	return progress, met, nil
}

type Achievement struct {
	Definition
	Unlocked   bool
	Progress   float64
	UnlockedAt time.Time
}

// Record overwrites progress and unlocks once when met. It reports whether
// this call performed the unlock.
func (a *Achievement) Record(progress float64, met bool, at time.Time) bool {
	a.Progress = progress
	if !met || a.Unlocked {
		return false
	}
	a.Unlocked = true
	a.UnlockedAt = at
	return true
}

func (a Achievement) InProgress() bool {
	return !a.Unlocked && a.Progress > 0
}

func (a Achievement) Locked() bool {
	return !a.Unlocked && a.Progress == 0
}

// Sort orders by category, then by descending progress within a category.
func Sort(list []Achievement) {
	sort.SliceStable(list, func(i, j int) bool {
		if ri, rj := list[i].Category.rank(), list[j].Category.rank(); ri != rj {
			return ri < rj
		}
		return list[i].Progress > list[j].Progress
	})
}

// Next is the locked achievement with the highest progress.
func Next(list []Achievement) (Achievement, bool) {
	var best Achievement
	found := false
	for _, a := range list {
		if a.Unlocked {
			continue
		}
		if !found || a.Progress > best.Progress {
			best = a
			found = true
		}
	}
	return best, found
}

type CategoryCount struct {
	Category Category
	Unlocked int
	Total    int
}

type Summary struct {
	Unlocked   int
	Total      int
	Percent    int
	Categories []CategoryCount
}

func Summarize(list []Achievement) Summary {
	s := Summary{Total: len(list)}
	counts := map[Category]*CategoryCount{}
	for _, a := range list {
		c, ok := counts[a.Category]
		if !ok {
			c = &CategoryCount{Category: a.Category}
			counts[a.Category] = c
		}
		c.Total++
		if a.Unlocked {
			c.Unlocked++
			s.Unlocked++
		}
	}
	if s.Total > 0 {
		s.Percent = s.Unlocked * 100 / s.Total
	}
	for _, category := range categoryOrder {
		if c, ok := counts[category]; ok {
			s.Categories = append(s.Categories, *c)
		}
	}
	return s
}
