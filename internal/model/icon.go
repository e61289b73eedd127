package model

import "strings"

type Icon string

const (
	IconHydration   Icon = "hydration"
	IconMeal        Icon = "meal"
	IconFitness     Icon = "fitness"
	IconMindfulness Icon = "mindfulness"
	IconStudy       Icon = "study"
	IconMeeting     Icon = "meeting"
	IconWork        Icon = "work"
	IconSleep       Icon = "sleep"
	IconChores      Icon = "chores"
)

type iconRule struct {
	keywords []string
	icon     Icon
}

// Order matters: the first rule with a matching keyword wins.
var iconRules = []iconRule{
	{keywords: []string{"water", "drink", "hydrate"}, icon: IconHydration},
	{keywords: []string{"breakfast", "lunch", "dinner", "meal", "eat", "snack"}, icon: IconMeal},
	{keywords: []string{"gym", "workout", "run", "walk", "exercise", "swim", "bike"}, icon: IconFitness},
	{keywords: []string{"meditat", "yoga", "pray", "journal", "breath"}, icon: IconMindfulness},
	{keywords: []string{"study", "read", "book", "learn", "class", "homework"}, icon: IconStudy},
	{keywords: []string{"meeting", "call", "standup", "sync", "interview"}, icon: IconMeeting},
	{keywords: []string{"code", "work", "email", "review", "project"}, icon: IconWork},
	{keywords: []string{"sleep", "bed", "nap"}, icon: IconSleep},
	{keywords: []string{"clean", "laundry", "shop", "grocer", "cook"}, icon: IconChores},
}

// ClassifyIcon matches the lower-cased title against the keyword table by
// substring. ok is false when nothing matches.
func ClassifyIcon(title string) (icon Icon, ok bool) {
	lower := strings.ToLower(title)
	for _, rule := range iconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.icon, true
			}
		}
	}
	return "", false
}

// Glyph is the single-character rendering used by the terminal views.
func (i Icon) Glyph() string {
	switch i {
	case IconHydration:
		return "💧"
	case IconMeal:
		return "🍽"
	case IconFitness:
		return "🏃"
	case IconMindfulness:
		return "🧘"
	case IconStudy:
		return "📚"
	case IconMeeting:
		return "👥"
	case IconWork:
		return "💻"
	case IconSleep:
		return "🌙"
	case IconChores:
		return "🧹"
	default:
		return "•"
	}
}
