package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire format: fact items travel as a tagged envelope, e.g.
//
//	{"type": "location", "place": "Golden Gate Park", "coord": {"lat": 37.77, "lon": -122.45}}
//
// Unknown "type" values are dropped on decode so newer producers can add
// variants without breaking older consumers.

type recordJSON struct {
	Title string            `json:"title"`
	Start time.Time         `json:"start"`
	End   *time.Time        `json:"end,omitempty"`
	Items []json.RawMessage `json:"items"`
}

type itemEnvelope struct {
	Type string `json:"type"`

	// location
	Place string      `json:"place,omitempty"`
	Coord *Coordinate `json:"coord,omitempty"`

	// reflection
	Prompt string `json:"prompt,omitempty"`

	// workout
	Activity  string       `json:"activity,omitempty"`
	Distance  *float64     `json:"distance,omitempty"`
	Calories  *int         `json:"calories,omitempty"`
	HeartRate *int         `json:"hr,omitempty"`
	Route     []Coordinate `json:"route,omitempty"`

	// contact
	Name string `json:"name,omitempty"`

	// song
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`

	// state_of_mind
	Description string `json:"description,omitempty"`

	// podcast
	Episode string `json:"episode,omitempty"`
	Show    string `json:"show,omitempty"`
}

// UnmarshalJSON decodes the tagged wire form. Items with an unrecognized or
// missing type are skipped.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Title = raw.Title
	r.Start = raw.Start
	r.End = raw.End
	r.Items = nil

	for i, msg := range raw.Items {
		var env itemEnvelope
		if err := json.Unmarshal(msg, &env); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		item := env.toItem()
		if item == nil {
			continue
		}
		r.Items = append(r.Items, item)
	}
	return nil
}

func (e itemEnvelope) toItem() FactItem {
	switch e.Type {
	case "location":
		return Location{Place: e.Place, Coordinate: e.Coord}
	case "reflection":
		return Reflection{Prompt: e.Prompt}
	case "workout":
		return Workout{
			Activity:  e.Activity,
			Distance:  e.Distance,
			Calories:  e.Calories,
			HeartRate: e.HeartRate,
			Route:     e.Route,
		}
	case "contact":
		return Contact{Name: e.Name}
	case "photo":
		return Photo{}
	case "song":
		return Song{Title: e.Title, Artist: e.Artist, Album: e.Album}
	case "motion":
		return MotionActivity{}
	case "state_of_mind":
		return StateOfMind{Description: e.Description}
	case "podcast":
		return Podcast{Episode: e.Episode, Show: e.Show}
	default:
		return nil
	}
}

// MarshalJSON encodes the tagged wire form.
func (r Record) MarshalJSON() ([]byte, error) {
	raw := recordJSON{
		Title: r.Title,
		Start: r.Start,
		End:   r.End,
	}
	for _, item := range r.Items {
		env, ok := envelopeOf(item)
		if !ok {
			continue
		}
		b, err := json.Marshal(env)
		if err != nil {
			return nil, err
		}
		raw.Items = append(raw.Items, b)
	}
	return json.Marshal(raw)
}

func envelopeOf(item FactItem) (itemEnvelope, bool) {
	switch v := item.(type) {
	case Location:
		return itemEnvelope{Type: "location", Place: v.Place, Coord: v.Coordinate}, true
	case Reflection:
		return itemEnvelope{Type: "reflection", Prompt: v.Prompt}, true
	case Workout:
		return itemEnvelope{
			Type:      "workout",
			Activity:  v.Activity,
			Distance:  v.Distance,
			Calories:  v.Calories,
			HeartRate: v.HeartRate,
			Route:     v.Route,
		}, true
	case Contact:
		return itemEnvelope{Type: "contact", Name: v.Name}, true
	case Photo:
		return itemEnvelope{Type: "photo"}, true
	case Song:
		return itemEnvelope{Type: "song", Title: v.Title, Artist: v.Artist, Album: v.Album}, true
	case MotionActivity:
		return itemEnvelope{Type: "motion"}, true
	case StateOfMind:
		return itemEnvelope{Type: "state_of_mind", Description: v.Description}, true
	case Podcast:
		return itemEnvelope{Type: "podcast", Episode: v.Episode, Show: v.Show}, true
	default:
		return itemEnvelope{}, false
	}
}
