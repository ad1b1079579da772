package domain

import "time"

// ReservationDateLayout is the wire and storage format of Reservation.Date.
const ReservationDateLayout = "2006-01-02"

// Reservation is a table booking request left through the site.
type Reservation struct {
	ID        string    `json:"id"`
	SessionID string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Guests    int       `json:"guests"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
