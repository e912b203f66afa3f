// Package compose renders aggregated facts into the final markdown document
// with YAML frontmatter.
//
// Frontmatter is built by hand rather than marshalled: the output pins key
// order, the quoting of wiki-links and the flat-vs-list workout shapes, none
// of which a generic YAML encoder preserves.
package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/aggregate"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/config"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
	dateLineLayout  = "January 2, 2006 at 3:04 PM"
)

// Composer renders documents for one configuration. Now is overridable for
// tests and defaults to time.Now.
type Composer struct {
	Config config.Config
	Now    func() time.Time
}

// New returns a Composer for the given configuration.
func New(cfg config.Config) *Composer {
	return &Composer{Config: cfg, Now: time.Now}
}

// Document renders the full export document: frontmatter, the aggregated
// body verbatim, and an optional user note section. It never fails; missing
// data simply produces a smaller document.
func (c *Composer) Document(agg aggregate.Result, userNote string) string {
	var b strings.Builder
	b.WriteString("---\n")

	created := agg.CreatedAt
	if created.IsZero() {
		created = c.now()
	}
	fmt.Fprintf(&b, "date_created: %s\n", created.Format(timestampLayout))

	writePlaces(&b, agg.Places)

	if agg.Weather != nil {
		fmt.Fprintf(&b, "cond: %s\n", agg.Weather.Condition)
		fmt.Fprintf(&b, "temp: %d\n", agg.Weather.Temperature)
	}

	fm := c.Config.Frontmatter
	if fm.Workout && len(agg.Workouts) > 0 {
		writeWorkouts(&b, agg.Workouts)
	}
	if fm.Song && len(agg.Songs) > 0 {
		writeSongs(&b, agg.Songs)
	}
	if fm.Podcast && len(agg.Podcasts) > 0 {
		writePodcasts(&b, agg.Podcasts)
	}
	if fm.Photo && agg.PhotoCount > 0 {
		fmt.Fprintf(&b, "photos: %d\n", agg.PhotoCount)
	}
	if fm.Contact && len(agg.Contacts) > 0 {
		b.WriteString("contacts:\n")
		for _, name := range agg.Contacts {
			fmt.Fprintf(&b, "  - %s\n", wikiLink(name))
		}
	}
	if fm.Reflection && len(agg.Reflections) > 0 {
		b.WriteString("reflections:\n")
		for _, prompt := range agg.Reflections {
			fmt.Fprintf(&b, "  - %s\n", quote(prompt))
		}
	}
	if fm.StateOfMind && agg.Mood != "" {
		fmt.Fprintf(&b, "mood: %s\n", quote(agg.Mood))
	}
	if fm.Activity && agg.ActivityCount > 0 {
		fmt.Fprintf(&b, "activity: %d\n", agg.ActivityCount)
	}

	writeTags(&b, agg.SortedTags())
	b.WriteString("---\n\n")

	b.WriteString(agg.Body)

	if userNote != "" {
		b.WriteString("## Notes\n\n")
		b.WriteString(userNote)
		b.WriteString("\n\n")
	}
	return b.String()
}

func (c *Composer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func writePlaces(b *strings.Builder, places []string) {
	switch len(places) {
	case 0:
	case 1:
		fmt.Fprintf(b, "place: %s\n", wikiLink(places[0]))
	default:
		b.WriteString("place:\n")
		for _, p := range places {
			fmt.Fprintf(b, "  - %s\n", wikiLink(p))
		}
	}
}

// writeWorkouts emits flat scalar keys for a single workout and a list of
// maps for several. Absent subfields are omitted.
func writeWorkouts(b *strings.Builder, workouts []model.Workout) {
	if len(workouts) == 1 {
		w := workouts[0]
		fmt.Fprintf(b, "workout: %s\n", w.Label())
		if w.Distance != nil {
			fmt.Fprintf(b, "distance: %.1f\n", *w.Distance)
		}
		if w.Calories != nil {
			fmt.Fprintf(b, "calories: %d\n", *w.Calories)
		}
		if w.HeartRate != nil {
			fmt.Fprintf(b, "hr: %d\n", *w.HeartRate)
		}
		return
	}

	b.WriteString("workouts:\n")
	for _, w := range workouts {
		fmt.Fprintf(b, "  - workout: %s\n", w.Label())
		if w.Distance != nil {
			fmt.Fprintf(b, "    distance: %.1f\n", *w.Distance)
		}
		if w.Calories != nil {
			fmt.Fprintf(b, "    calories: %d\n", *w.Calories)
		}
		if w.HeartRate != nil {
			fmt.Fprintf(b, "    hr: %d\n", *w.HeartRate)
		}
	}
}

func writeSongs(b *strings.Builder, songs []model.Song) {
	b.WriteString("songs:\n")
	for _, s := range songs {
		title := s.Title
		if title == "" {
			title = "Song"
		}
		entry := title
		if s.Artist != "" {
			entry += " by " + s.Artist
		}
		fmt.Fprintf(b, "  - %s\n", quote(entry))
	}
}

func writePodcasts(b *strings.Builder, podcasts []model.Podcast) {
	b.WriteString("podcasts:\n")
	for _, p := range podcasts {
		episode := p.Episode
		if episode == "" {
			episode = "Podcast"
		}
		entry := episode
		if p.Show != "" {
			entry += " (" + p.Show + ")"
		}
		fmt.Fprintf(b, "  - %s\n", quote(entry))
	}
}

// writeTags is unconditional: the tags key is always present.
func writeTags(b *strings.Builder, tags []string) {
	if len(tags) == 0 {
		b.WriteString("tags: []\n")
		return
	}
	b.WriteString("tags:\n")
	for _, t := range tags {
		fmt.Fprintf(b, "  - %s\n", t)
	}
}

func wikiLink(name string) string {
	return quote("[[" + name + "]]")
}

// quote double-quotes a free-text scalar for YAML.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
