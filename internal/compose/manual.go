package compose

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
)

// Manual renders a document for a hand-written entry. Manual entries have at
// most one place, so the place key is always a single wiki-link. The
// configured manual tag set applies, plus "location" when a place is given.
func (c *Composer) Manual(note string, date time.Time, obs *model.WeatherObservation, place string) string {
	if date.IsZero() {
		date = c.now()
	}

	tagSet := make(map[string]bool, len(c.Config.ManualTags)+1)
	for _, t := range c.Config.ManualTags {
		if t != "" {
			tagSet[t] = true
		}
	}
	if place != "" {
		tagSet["location"] = true
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date_created: %s\n", date.Format(timestampLayout))
	if place != "" {
		fmt.Fprintf(&b, "place: %s\n", wikiLink(place))
	}
	if obs != nil {
		fmt.Fprintf(&b, "cond: %s\n", obs.Condition)
		fmt.Fprintf(&b, "temp: %d\n", obs.Temperature)
	}
	writeTags(&b, tags)
	b.WriteString("---\n\n")

	b.WriteString("# Manual Entry\n")
	fmt.Fprintf(&b, "Date: %s\n", date.Format(dateLineLayout))
	if place != "" {
		fmt.Fprintf(&b, "📍 %s\n", place)
	}
	if obs != nil {
		fmt.Fprintf(&b, "🌤️ %s, %d°F\n", obs.Condition, obs.Temperature)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(note)
	b.WriteString("\n\n")
	return b.String()
}
