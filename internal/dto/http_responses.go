package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"devevents/internal/model"
)

const (
	MsgEventsFetched   = "Events fetched successfully"
	MsgEventFetched    = "Event fetched successfully"
	MsgEventCreated    = "Event created successfully"
	MsgValidationFail  = "Validation failed"
	MsgInternalFailure = "Something went wrong. Please try again later."
)

type EventResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Event   *EventResponse    `json:"event,omitempty"`
	Events  []EventResponse   `json:"events,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// EventCreatedMessage is published to the announce exchange after a record
// is stored.
type EventCreatedMessage struct {
	EventID   int64     `json:"event_id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func EventToResponse(e *model.Event) *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Organizer:   e.Organizer,
		Tags:        e.Tags,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func SuccessEventsResponse(c *ginext.Context, events []EventResponse) {
	c.JSON(200, Response{
		Success: true,
		Message: MsgEventsFetched,
		Events:  events,
	})
}

func SuccessEventResponse(c *ginext.Context, event *EventResponse) {
	c.JSON(200, Response{
		Success: true,
		Message: MsgEventFetched,
		Event:   event,
	})
}

func CreatedEventResponse(c *ginext.Context, event *EventResponse) {
	c.JSON(201, Response{
		Success: true,
		Message: MsgEventCreated,
		Event:   event,
	})
}

func BadRequestError(c *ginext.Context, message string) {
	c.JSON(400, Response{
		Success: false,
		Message: message,
	})
}

func ValidationFailedError(c *ginext.Context, fields map[string]string) {
	c.JSON(400, Response{
		Success: false,
		Message: MsgValidationFail,
		Errors:  fields,
	})
}

func NotFoundError(c *ginext.Context, message string) {
	c.JSON(404, Response{
		Success: false,
		Message: message,
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Success: false,
		Message: MsgInternalFailure,
	})
}
