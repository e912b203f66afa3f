// Package model defines the memory record data types.
package model

import (
	"strings"
	"time"
)

// Coordinate is a geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherObservation is a point-in-time weather reading.
type WeatherObservation struct {
	Temperature int    `json:"temp"` // degrees Fahrenheit
	Condition   string `json:"cond"`
	Icon        string `json:"icon,omitempty"`
}

// Record is one captured life-event suggestion: a title, a time range and an
// ordered list of fact items. Records are read-only input; nothing in the
// export pipeline mutates them.
type Record struct {
	Title string
	Start time.Time
	End   *time.Time
	Items []FactItem
}

// FactItem is one typed unit of content inside a record. The variant set is
// closed; unrecognized variants on the wire are dropped during decoding.
type FactItem interface {
	factItem()
}

// Location is a visited place, optionally with a coordinate.
type Location struct {
	Place      string
	Coordinate *Coordinate
}

// Reflection is a journaling prompt.
type Reflection struct {
	Prompt string
}

// Workout is a recorded exercise session. Numeric fields are kept raw;
// formatting happens at render time.
type Workout struct {
	Activity  string
	Distance  *float64 // miles
	Calories  *int
	HeartRate *int // average bpm
	Route     []Coordinate
}

// Contact is a person associated with the record.
type Contact struct {
	Name string
}

// Photo marks the presence of a photo. No per-photo metadata is carried.
type Photo struct{}

// Song is a listened-to track.
type Song struct {
	Title  string
	Artist string
	Album  string
}

// MotionActivity marks the presence of a detected motion activity.
type MotionActivity struct{}

// StateOfMind is a logged mood description.
type StateOfMind struct {
	Description string
}

// Podcast is a listened-to podcast episode.
type Podcast struct {
	Episode string
	Show    string
}

func (Location) factItem()       {}
func (Reflection) factItem()     {}
func (Workout) factItem()        {}
func (Contact) factItem()        {}
func (Photo) factItem()          {}
func (Song) factItem()           {}
func (MotionActivity) factItem() {}
func (StateOfMind) factItem()    {}
func (Podcast) factItem()        {}

// activityLabels maps workout activity types to display labels.
var activityLabels = map[string]string{
	"running":    "Running",
	"cycling":    "Cycling",
	"walking":    "Walking",
	"hiking":     "Hiking",
	"swimming":   "Swimming",
	"yoga":       "Yoga",
	"strength":   "Strength Training",
	"rowing":     "Rowing",
	"elliptical": "Elliptical",
}

// Label returns the display label for the workout's activity type.
// Unknown activity types fall back to "Workout".
func (w Workout) Label() string {
	if l, ok := activityLabels[strings.ToLower(w.Activity)]; ok {
		return l
	}
	return "Workout"
}
