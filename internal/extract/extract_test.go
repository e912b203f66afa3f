package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/weather"
)

var testStart = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

func clearSkies(t *testing.T) weather.Lookup {
	t.Helper()
	return weather.Static{Obs: model.WeatherObservation{Temperature: 55, Condition: "Clear"}}
}

func TestExtractEmptyRecord(t *testing.T) {
	rec := model.Record{Title: "Quiet Day", Start: testStart}
	res := Extract(context.Background(), rec, weather.Nop{})

	want := "# Quiet Day\nDate: January 1, 2025 at 8:00 AM"
	if res.Text != want {
		t.Errorf("expected %q, got %q", want, res.Text)
	}
	if len(res.Tags) != 0 {
		t.Errorf("expected no tags, got %v", res.Tags)
	}
	if res.Weather != nil || res.Mood != "" {
		t.Error("expected nil weather and empty mood")
	}
	if res.PhotoCount != 0 || res.ActivityCount != 0 {
		t.Error("expected zero counts")
	}
	if len(res.Places) != 0 || len(res.Workouts) != 0 || len(res.Songs) != 0 {
		t.Error("expected empty fact lists")
	}
}

func TestExtractEndTimeAppended(t *testing.T) {
	end := testStart.Add(90 * time.Minute)
	rec := model.Record{Title: "Hike", Start: testStart, End: &end}
	res := Extract(context.Background(), rec, weather.Nop{})

	if !strings.Contains(res.Text, "Date: January 1, 2025 at 8:00 AM - 9:30 AM") {
		t.Errorf("expected end time after dash, got %q", res.Text)
	}
}

func TestExtractEqualEndOmitted(t *testing.T) {
	end := testStart
	rec := model.Record{Title: "Hike", Start: testStart, End: &end}
	res := Extract(context.Background(), rec, weather.Nop{})

	if strings.Contains(res.Text, " - ") {
		t.Errorf("end equal to start must not render, got %q", res.Text)
	}
}

func TestExtractLocationWithWeather(t *testing.T) {
	rec := model.Record{
		Title: "Morning Walk",
		Start: testStart,
		Items: []model.FactItem{
			model.Location{Place: "Golden Gate Park", Coordinate: &model.Coordinate{Lat: 37.77, Lon: -122.45}},
		},
	}
	res := Extract(context.Background(), rec, clearSkies(t))

	if !strings.Contains(res.Text, "📍 Golden Gate Park\n🌤️ Clear, 55°F") {
		t.Errorf("expected weather line after location, got %q", res.Text)
	}
	if res.Weather == nil || res.Weather.Temperature != 55 {
		t.Errorf("expected stored observation, got %v", res.Weather)
	}
	if !res.Tags["location"] {
		t.Error("expected location tag")
	}
	if len(res.Places) != 1 || res.Places[0] != "Golden Gate Park" {
		t.Errorf("expected place collected, got %v", res.Places)
	}
}

func TestExtractLocationWithoutCoordinateSkipsLookup(t *testing.T) {
	calls := 0
	lookup := weather.LookupFunc(func(ctx context.Context, c model.Coordinate, at time.Time) (*model.WeatherObservation, error) {
		calls++
		return &model.WeatherObservation{Temperature: 40, Condition: "Fog"}, nil
	})
	rec := model.Record{
		Title: "Walk",
		Start: testStart,
		Items: []model.FactItem{model.Location{Place: "Somewhere"}},
	}
	res := Extract(context.Background(), rec, lookup)

	if calls != 0 {
		t.Errorf("expected no lookup without coordinate, got %d calls", calls)
	}
	if res.Weather != nil {
		t.Errorf("expected nil weather, got %v", res.Weather)
	}
}

func TestExtractWorkoutRouteResolvesWeather(t *testing.T) {
	rec := model.Record{
		Title: "Run",
		Start: testStart,
		Items: []model.FactItem{
			model.Workout{Activity: "running", Route: []model.Coordinate{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}},
		},
	}

	var gotCoord model.Coordinate
	lookup := weather.LookupFunc(func(ctx context.Context, c model.Coordinate, at time.Time) (*model.WeatherObservation, error) {
		gotCoord = c
		return &model.WeatherObservation{Temperature: 48, Condition: "Rain"}, nil
	})
	res := Extract(context.Background(), rec, lookup)

	if gotCoord.Lat != 1 || gotCoord.Lon != 2 {
		t.Errorf("expected first route point, got %v", gotCoord)
	}
	if !strings.Contains(res.Text, "💪 Running\n🌤️ Rain, 48°F") {
		t.Errorf("expected weather line after workout, got %q", res.Text)
	}
}

func TestExtractWeatherFailureTolerated(t *testing.T) {
	lookup := weather.LookupFunc(func(ctx context.Context, c model.Coordinate, at time.Time) (*model.WeatherObservation, error) {
		return nil, errors.New("not entitled")
	})
	rec := model.Record{
		Title: "Walk",
		Start: testStart,
		Items: []model.FactItem{
			model.Location{Place: "Park", Coordinate: &model.Coordinate{Lat: 1, Lon: 1}},
		},
	}
	res := Extract(context.Background(), rec, lookup)

	if res.Weather != nil {
		t.Errorf("expected nil weather on lookup failure, got %v", res.Weather)
	}
	if !strings.Contains(res.Text, "📍 Park") {
		t.Errorf("location line must still render, got %q", res.Text)
	}
	if strings.Contains(res.Text, "🌤️") {
		t.Errorf("no weather line on failure, got %q", res.Text)
	}
}

func TestExtractFailedLookupNotRetried(t *testing.T) {
	calls := 0
	lookup := weather.LookupFunc(func(ctx context.Context, c model.Coordinate, at time.Time) (*model.WeatherObservation, error) {
		calls++
		return nil, errors.New("unavailable")
	})
	rec := model.Record{
		Title: "Run",
		Start: testStart,
		Items: []model.FactItem{
			model.Location{Place: "Park", Coordinate: &model.Coordinate{Lat: 1, Lon: 1}},
			model.Workout{Activity: "running", Route: []model.Coordinate{{Lat: 2, Lon: 2}}},
		},
	}
	Extract(context.Background(), rec, lookup)

	if calls != 1 {
		t.Errorf("expected exactly 1 lookup invocation, got %d", calls)
	}
}

func TestExtractWorkoutDetails(t *testing.T) {
	dist := 3.1
	cal := 320
	hr := 142
	short := 0.05

	cases := []struct {
		name string
		w    model.Workout
		want string
	}{
		{"all fields", model.Workout{Activity: "running", Distance: &dist, Calories: &cal, HeartRate: &hr}, "💪 Running (3.1 mi, 320 cal, 142 bpm)"},
		{"bare", model.Workout{Activity: "yoga"}, "💪 Yoga"},
		{"short distance dropped", model.Workout{Activity: "walking", Distance: &short}, "💪 Walking"},
		{"unknown activity", model.Workout{Activity: "curling", Calories: &cal}, "💪 Workout (320 cal)"},
	}
	for _, c := range cases {
		rec := model.Record{Title: "t", Start: testStart, Items: []model.FactItem{c.w}}
		res := Extract(context.Background(), rec, weather.Nop{})
		if !strings.Contains(res.Text, c.want) {
			t.Errorf("%s: expected %q in %q", c.name, c.want, res.Text)
		}
	}
}

func TestExtractMediaLines(t *testing.T) {
	rec := model.Record{
		Title: "Media",
		Start: testStart,
		Items: []model.FactItem{
			model.Song{Title: "Clair de Lune", Artist: "Debussy", Album: "Suite bergamasque"},
			model.Song{},
			model.Podcast{Episode: "Ep 12", Show: "Radiolab"},
			model.Podcast{},
		},
	}
	res := Extract(context.Background(), rec, weather.Nop{})

	for _, want := range []string{
		"🎵 Clair de Lune by Debussy (Suite bergamasque)",
		"🎵 Song",
		"🎙️ Ep 12 (Radiolab)",
		"🎙️ Podcast",
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("expected %q in %q", want, res.Text)
		}
	}
	if len(res.Songs) != 2 || len(res.Podcasts) != 2 {
		t.Errorf("expected 2 songs and 2 podcasts, got %d/%d", len(res.Songs), len(res.Podcasts))
	}
	if !res.Tags["music"] || !res.Tags["podcast"] {
		t.Errorf("expected music and podcast tags, got %v", res.Tags)
	}
}

func TestExtractRepeatedVariantsAndCounts(t *testing.T) {
	rec := model.Record{
		Title: "Busy",
		Start: testStart,
		Items: []model.FactItem{
			model.Contact{Name: "Alice"},
			model.Contact{Name: "Bob"},
			model.Photo{},
			model.Photo{},
			model.Photo{},
			model.MotionActivity{},
			model.StateOfMind{Description: "content"},
			model.StateOfMind{Description: "tired"},
		},
	}
	res := Extract(context.Background(), rec, weather.Nop{})

	if len(res.Contacts) != 2 || res.Contacts[0] != "Alice" || res.Contacts[1] != "Bob" {
		t.Errorf("expected both contacts in order, got %v", res.Contacts)
	}
	if res.PhotoCount != 3 {
		t.Errorf("expected 3 photos, got %d", res.PhotoCount)
	}
	if res.ActivityCount != 1 {
		t.Errorf("expected 1 activity, got %d", res.ActivityCount)
	}
	if res.Mood != "content" {
		t.Errorf("first mood wins, got %q", res.Mood)
	}
	if strings.Count(res.Text, "📷 Photo") != 3 {
		t.Errorf("expected 3 photo lines, got %q", res.Text)
	}
}
