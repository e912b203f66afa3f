// Package extract turns a single memory record into typed facts and a
// rendered markdown block.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/weather"
)

// Result holds everything extracted from one record.
type Result struct {
	Text          string
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
}

// Resolver performs at most one weather lookup no matter how many usable
// coordinates it is offered. A failed attempt is not retried; the export
// simply carries no weather.
type Resolver struct {
	lookup    weather.Lookup
	attempted bool
}

// NewResolver wraps a lookup in an attempt-once resolver. A nil lookup is
// valid and never resolves anything.
func NewResolver(lookup weather.Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

func (r *Resolver) resolve(ctx context.Context, coord model.Coordinate, at time.Time) *model.WeatherObservation {
	if r == nil || r.lookup == nil || r.attempted {
		return nil
	}
	r.attempted = true
	obs, err := r.lookup.Current(ctx, coord, at)
	if err != nil {
		slog.Debug("weather lookup failed", "lat", coord.Lat, "lon", coord.Lon, "err", err)
		return nil
	}
	return obs
}

const dateLineLayout = "January 2, 2006 at 3:04 PM"

// Extract processes a single record with its own one-shot weather resolver.
func Extract(ctx context.Context, rec model.Record, lookup weather.Lookup) Result {
	return ExtractWith(ctx, rec, NewResolver(lookup))
}

// ExtractWith processes a record using a shared resolver, so an export
// spanning several records still performs at most one weather lookup.
//
// The rendered text is append-only in item order: title heading, date line,
// then one line per fact item. Extraction never fails; an item that yields
// nothing is skipped.
func ExtractWith(ctx context.Context, rec model.Record, res *Resolver) Result {
	out := Result{Tags: map[string]bool{}}

	start := rec.Start
	if start.IsZero() {
		start = time.Now()
	}

	var lines []string
	lines = append(lines, "# "+rec.Title)

	dateLine := "Date: " + start.Format(dateLineLayout)
	if rec.End != nil && !rec.End.Equal(start) {
		dateLine += " - " + rec.End.Format("3:04 PM")
	}
	lines = append(lines, dateLine)

	for _, item := range rec.Items {
		switch it := item.(type) {
		case model.Location:
			lines = append(lines, "📍 "+it.Place)
			out.Tags["location"] = true
			out.Places = append(out.Places, it.Place)
			if out.Weather == nil && it.Coordinate != nil {
				if obs := res.resolve(ctx, *it.Coordinate, start); obs != nil {
					lines = append(lines, weatherLine(obs))
					out.Weather = obs
				}
			}

		case model.Reflection:
			lines = append(lines, "💭 "+it.Prompt)
			out.Tags["reflection"] = true
			out.Reflections = append(out.Reflections, it.Prompt)

		case model.Workout:
			lines = append(lines, workoutLine(it))
			out.Tags["workout"] = true
			out.Workouts = append(out.Workouts, it)
			if out.Weather == nil && len(it.Route) > 0 {
				if obs := res.resolve(ctx, it.Route[0], start); obs != nil {
					lines = append(lines, weatherLine(obs))
					out.Weather = obs
				}
			}

		case model.Contact:
			lines = append(lines, "👤 "+it.Name)
			out.Tags["contact"] = true
			out.Contacts = append(out.Contacts, it.Name)

		case model.Photo:
			lines = append(lines, "📷 Photo")
			out.Tags["photo"] = true
			out.PhotoCount++

		case model.Song:
			lines = append(lines, songLine(it))
			out.Tags["music"] = true
			out.Songs = append(out.Songs, it)

		case model.MotionActivity:
			lines = append(lines, "🏃 Activity")
			out.Tags["activity"] = true
			out.ActivityCount++

		case model.StateOfMind:
			lines = append(lines, "🧠 State of Mind: "+it.Description)
			out.Tags["mental-health"] = true
			if out.Mood == "" {
				out.Mood = it.Description
			}

		case model.Podcast:
			lines = append(lines, podcastLine(it))
			out.Tags["podcast"] = true
			out.Podcasts = append(out.Podcasts, it)

		default:
			// Unrecognized or nil item: contributes nothing.
		}
	}

	out.Text = strings.Join(lines, "\n")
	return out
}

func weatherLine(obs *model.WeatherObservation) string {
	return fmt.Sprintf("🌤️ %s, %d°F", obs.Condition, obs.Temperature)
}

func workoutLine(w model.Workout) string {
	var parts []string
	if w.Distance != nil && *w.Distance >= 0.1 {
		parts = append(parts, fmt.Sprintf("%.1f mi", *w.Distance))
	}
	if w.Calories != nil {
		parts = append(parts, fmt.Sprintf("%d cal", *w.Calories))
	}
	if w.HeartRate != nil {
		parts = append(parts, fmt.Sprintf("%d bpm", *w.HeartRate))
	}
	line := "💪 " + w.Label()
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	return line
}

func songLine(s model.Song) string {
	title := s.Title
	if title == "" {
		title = "Song"
	}
	line := "🎵 " + title
	if s.Artist != "" {
		line += " by " + s.Artist
	}
	if s.Album != "" {
		line += " (" + s.Album + ")"
	}
	return line
}

func podcastLine(p model.Podcast) string {
	episode := p.Episode
	if episode == "" {
		episode = "Podcast"
	}
	line := "🎙️ " + episode
	if p.Show != "" {
		line += " (" + p.Show + ")"
	}
	return line
}
