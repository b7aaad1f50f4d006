package models

// ReminderPayload is the task payload for a delayed appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ClientPhone   string `json:"clientPhone"`
	ServiceName   string `json:"serviceName"`
	Date          string `json:"date"`
	Start         int    `json:"start"`
}
