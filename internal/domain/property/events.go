package property

import "time"

type PropertyCreated struct {
	Property *Property `json:"property"`
	At       time.Time `json:"at"`
}

func (e PropertyCreated) EventName() string     { return "property_created" }
func (e PropertyCreated) AggregateID() string   { return string(e.Property.ID) }
func (e PropertyCreated) OccurredAt() time.Time { return e.At }

type PropertyUpdated struct {
	Property *Property `json:"property"`
	At       time.Time `json:"at"`
}

func (e PropertyUpdated) EventName() string     { return "property_updated" }
func (e PropertyUpdated) AggregateID() string   { return string(e.Property.ID) }
func (e PropertyUpdated) OccurredAt() time.Time { return e.At }
