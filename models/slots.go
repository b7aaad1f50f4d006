package models

import "fmt"

// TimeSlot is a bookable time interval on a given date.
type TimeSlot struct {
	Date  string `bson:"date" json:"date"`   // "2006-01-02"
	Start int    `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End   int    `bson:"end" json:"end"`
}

// Clock renders minutes-from-midnight as "HH:MM".
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// String renders the slot for logs and chat responses, e.g. "09:00-09:15".
func (s TimeSlot) String() string {
	return Clock(s.Start) + "-" + Clock(s.End)
}
