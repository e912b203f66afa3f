// Package aggregate merges extracted facts from several records into one
// export-ready result.
package aggregate

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/extract"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/weather"
)

// Result is the union of every record's extracted facts.
type Result struct {
	CreatedAt     time.Time // first record's start; zero when no records
	Tags          map[string]bool
	Places        []string
	Weather       *model.WeatherObservation
	Workouts      []model.Workout
	Songs         []model.Song
	Podcasts      []model.Podcast
	PhotoCount    int
	Contacts      []string
	Reflections   []string
	Mood          string
	ActivityCount int
	Body          string
}

// SortedTags returns the tag set in lexicographic order.
func (r Result) SortedTags() []string {
	tags := make([]string, 0, len(r.Tags))
	for t := range r.Tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// separator terminates each record's rendered block in the body.
const separator = "\n\n---\n\n"

// Aggregate folds records in input order. baseTags seeds the tag set. The
// weather lookup is invoked at most once across all records; the first
// resolved observation and the first non-empty mood win and are never
// overwritten. No record is ever dropped.
func Aggregate(ctx context.Context, records []model.Record, lookup weather.Lookup, baseTags []string) Result {
	out := Result{Tags: make(map[string]bool, len(baseTags))}
	for _, t := range baseTags {
		if t != "" {
			out.Tags[t] = true
		}
	}

	resolver := extract.NewResolver(lookup)
	var body strings.Builder

	for i, rec := range records {
		er := extract.ExtractWith(ctx, rec, resolver)

		if i == 0 {
			out.CreatedAt = rec.Start
		}
		for tag := range er.Tags {
			out.Tags[tag] = true
		}
		out.Places = append(out.Places, er.Places...)
		if out.Weather == nil {
			out.Weather = er.Weather
		}
		out.Workouts = append(out.Workouts, er.Workouts...)
		out.Songs = append(out.Songs, er.Songs...)
		out.Podcasts = append(out.Podcasts, er.Podcasts...)
		out.PhotoCount += er.PhotoCount
		out.Contacts = append(out.Contacts, er.Contacts...)
		out.Reflections = append(out.Reflections, er.Reflections...)
		if out.Mood == "" {
			out.Mood = er.Mood
		}
		out.ActivityCount += er.ActivityCount

		body.WriteString(er.Text)
		body.WriteString(separator)
	}

	out.Body = body.String()
	return out
}
