package model

import "time"

const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

type Event struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title" validate:"required"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description" validate:"required"`
	Overview    string    `db:"overview" json:"overview" validate:"required"`
	Image       string    `db:"image" json:"image" validate:"required"`
	Venue       string    `db:"venue" json:"venue" validate:"required"`
	Location    string    `db:"location" json:"location" validate:"required"`
	Date        string    `db:"event_date" json:"date" validate:"required"`
	Time        string    `db:"event_time" json:"time" validate:"required"`
	Mode        string    `db:"mode" json:"mode" validate:"required,oneof=online offline hybrid"`
	Audience    string    `db:"audience" json:"audience" validate:"required"`
	Agenda      []string  `db:"agenda" json:"agenda" validate:"required,min=1"`
	Organizer   string    `db:"organizer" json:"organizer" validate:"required"`
	Tags        []string  `db:"tags" json:"tags" validate:"required,min=1"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
