package domain

import (
	"fmt"
	"sort"
	"strings"
)

type Authorization string

const (
	AuthorizationNotDetermined Authorization = "not_determined"
	AuthorizationDenied        Authorization = "denied"
	AuthorizationApproved      Authorization = "approved"
)

type Category string

const (
	CategorySocial        Category = "social"
	CategoryEntertainment Category = "entertainment"
	CategoryGames         Category = "games"
	CategoryMessaging     Category = "messaging"
	CategoryShopping      Category = "shopping"
	CategoryNews          Category = "news"
)

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case CategorySocial, CategoryEntertainment, CategoryGames, CategoryMessaging, CategoryShopping, CategoryNews:
		return c, nil
	default:
		return "", fmt.Errorf("unknown app category: %s", raw)
	}
}

// NormalizeCategories parses, de-duplicates and sorts raw category names.
func NormalizeCategories(raw []string) ([]Category, error) {
	seen := map[Category]struct{}{}
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		c, err := ParseCategory(r)
		if err != nil {
			return nil, err
		}
		seen[c] = struct{}{}
	}
	out := make([]Category, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type PresetName string

const (
	PresetLight  PresetName = "light"
	PresetMedium PresetName = "medium"
	PresetHeavy  PresetName = "heavy"
	PresetCustom PresetName = "custom"
)

type Preset struct {
	Name        PresetName
	Description string
	Detail      string
	Categories  []Category
}

func Presets() []Preset {
	return []Preset{
		{
			Name:        PresetLight,
			Description: "Block social media apps",
			Detail:      "Social networking apps (Instagram, Facebook, Twitter, TikTok, etc.)",
			Categories:  []Category{CategorySocial},
		},
		{
			Name:        PresetMedium,
			Description: "Block social media and entertainment",
			Detail:      "Social networking + Entertainment (YouTube, Netflix, Gaming, etc.)",
			Categories:  []Category{CategoryEntertainment, CategoryGames, CategorySocial},
		},
		{
			Name:        PresetHeavy,
			Description: "Block all distracting apps",
			Detail:      "Social networking + Entertainment + Messaging + Shopping",
			Categories:  []Category{CategoryEntertainment, CategoryGames, CategoryMessaging, CategoryNews, CategoryShopping, CategorySocial},
		},
		{
			Name:        PresetCustom,
			Description: "Custom selection",
			Detail:      "Select your own apps to block",
		},
	}
}

func FindPreset(raw string) (Preset, error) {
	name := PresetName(strings.ToLower(strings.TrimSpace(raw)))
	for _, p := range Presets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown blocking preset: %s", raw)
}

// State is the persisted shielding policy. Selection survives StopBlocking
// so that session shielding reuses the last chosen categories.
type State struct {
	Authorized      bool
	Blocking        bool
	SessionBlocking bool
	Selection       []Category
}

const (
	MessageNeedsAuthorization = "App blocking requires authorization"
	MessageBlocking           = "Apps are currently blocked"
	MessageReady              = "Ready to block apps"
	MessageDenied             = "Authorization denied. Enable app blocking for focusdrive and try again."
)

func (s State) StatusMessage() string {
	switch {
	case !s.Authorized:
		return MessageNeedsAuthorization
	case s.Blocking:
		return MessageBlocking
	default:
		return MessageReady
	}
}

// Active reports whether shielding is in force.
func (s State) Active() bool {
	return s.Blocking && s.Authorized
}

// SessionCategories are the categories shielded when a drive starts.
func (s State) SessionCategories() []Category {
	if len(s.Selection) > 0 {
		return s.Selection
	}
	return Presets()[0].Categories
}
