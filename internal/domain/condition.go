package domain

import "strings"

// Condition codes derived from free-text summaries.
const (
	CodeSunny        = "sunny"
	CodeRainy        = "rainy"
	CodeCloudy       = "cloudy"
	CodeFoggy        = "foggy"
	CodePartlyCloudy = "partly-cloudy"
)

// Cloud cover fallback texts for steps and days that carry no narrative. The
// vocabulary matches the upstream summary texts, which are Vietnamese.
const (
	condTextMostlyCloudy = "Nhiều mây"
	condTextPartlyCloudy = "Ít mây"
)

// cloudyThresholdPct splits "partly" from "mostly" cloudy for cloud-cover
// derived conditions and icons.
const cloudyThresholdPct = 50

// conditionRule maps a keyword set to a condition code and icon. Rules are
// evaluated in priority order; the first keyword hit wins. The upstream
// summary texts mix Vietnamese and English, so both vocabularies appear.
type conditionRule struct {
	keywords []string
	code     string
	icon     string
}

var conditionRules = []conditionRule{
	{keywords: []string{"nắng", "sunny", "clear"}, code: CodeSunny, icon: "☀️"},
	{keywords: []string{"mưa", "rain"}, code: CodeRainy, icon: "🌧️"},
	{keywords: []string{"mây", "cloud"}, code: CodeCloudy, icon: "⛅"},
	{keywords: []string{"sương", "fog"}, code: CodeFoggy, icon: "🌫️"},
}

// ConditionCode derives an internal condition code from a free-text summary,
// defaulting to partly-cloudy when no keyword matches.
func ConditionCode(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range conditionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.code
			}
		}
	}
	return CodePartlyCloudy
}

// ConditionIcon derives a display icon from a free-text summary. The cloudy
// rule additionally splits on cloud cover: above the threshold gets the full
// overcast icon.
func ConditionIcon(text string, cloudcoverPct float64) string {
	lower := strings.ToLower(text)
	for _, rule := range conditionRules {
		for _, kw := range rule.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			if rule.code == CodeCloudy && cloudcoverPct > cloudyThresholdPct {
				return "☁️"
			}
			return rule.icon
		}
	}
	return "🌤️"
}

// cloudcoverText picks the narrative fallback for a cloud cover percentage.
func cloudcoverText(pct float64) string {
	if pct > cloudyThresholdPct {
		return condTextMostlyCloudy
	}
	return condTextPartlyCloudy
}
