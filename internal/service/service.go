package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"devevents/internal/dto"
	"devevents/internal/model"
	"devevents/internal/record"
	"devevents/internal/repo"
	"devevents/internal/uploader"
	"devevents/pkg/validator"
)

// uploadFolder is the destination category label for event images.
const uploadFolder = "DevEvents"

type Service interface {
	CreateEvent(ctx *ginext.Context)
	GetEventBySlug(ctx *ginext.Context)
	GetAllEvents(ctx *ginext.Context)
}

// Publisher emits creation announcements. Failures are logged, never
// surfaced to the client.
type Publisher interface {
	Publish(message []byte) error
}

type service struct {
	repo     repo.Repository
	log      *zerolog.Logger
	uploader uploader.Uploader
	announce Publisher
}

func NewService(repo repo.Repository, logger *zerolog.Logger, up uploader.Uploader, announce Publisher) Service {
	return &service{
		repo:     repo,
		log:      logger,
		uploader: up,
		announce: announce,
	}
}

func (s *service) GetAllEvents(ctx *ginext.Context) {
	events, err := s.repo.GetAllEvents(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get events from DB")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, *dto.EventToResponse(&events[i]))
	}

	dto.SuccessEventsResponse(ctx, resp)
}

func (s *service) GetEventBySlug(ctx *ginext.Context) {
	slug := ctx.Param("slug")
	if !record.ValidSlugParam(slug) {
		dto.BadRequestError(ctx, "Invalid slug format. Slug must contain only lowercase letters, numbers, and hyphens")
		return
	}

	event, err := s.repo.GetEventBySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.NotFoundError(ctx, fmt.Sprintf("Event with slug %q not found", slug))
			return
		}
		s.log.Error().Err(err).Str("slug", slug).Msg("failed to get event by slug")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessEventResponse(ctx, dto.EventToResponse(event))
}

func (s *service) CreateEvent(ctx *ginext.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		dto.BadRequestError(ctx, "Image is required")
		return
	}
	if file.Size > uploader.MaxUploadSize {
		dto.BadRequestError(ctx, "Image exceeds the maximum upload size")
		return
	}

	var tags, agenda []string
	if err := json.Unmarshal([]byte(ctx.PostForm("tags")), &tags); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON data format for tags")
		return
	}
	if err := json.Unmarshal([]byte(ctx.PostForm("agenda")), &agenda); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON data format for agenda")
		return
	}

	src, err := file.Open()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open image part")
		dto.BadRequestError(ctx, "Image could not be read")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read image part")
		dto.BadRequestError(ctx, "Image could not be read")
		return
	}

	imageURL, err := s.uploader.Upload(ctx.Request.Context(), data, file.Filename, uploadFolder)
	if err != nil {
		s.log.Error().Err(err).Msg("image upload failed")
		dto.InternalServerError(ctx)
		return
	}

	event := &model.Event{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Overview:    ctx.PostForm("overview"),
		Image:       imageURL,
		Venue:       ctx.PostForm("venue"),
		Location:    ctx.PostForm("location"),
		Date:        ctx.PostForm("date"),
		Time:        ctx.PostForm("time"),
		Mode:        ctx.PostForm("mode"),
		Audience:    ctx.PostForm("audience"),
		Agenda:      agenda,
		Organizer:   ctx.PostForm("organizer"),
		Tags:        tags,
	}

	if err := record.Normalize(event); err != nil {
		dto.BadRequestError(ctx, err.Error())
		return
	}

	if fields := validator.Validate(ctx, event); len(fields) > 0 {
		dto.ValidationFailedError(ctx, fields)
		return
	}

	base := record.DeriveSlug(event.Title)
	if base == "" {
		dto.ValidationFailedError(ctx, map[string]string{
			"title": "title must contain at least one letter or digit",
		})
		return
	}

	if err := s.insertWithUniqueSlug(ctx.Request.Context(), event, base); err != nil {
		s.log.Error().Err(err).Str("slug", base).Msg("failed to create event in DB")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", event.ID).Str("slug", event.Slug).Msg("event created successfully")
	s.announceCreated(event)

	dto.CreatedEventResponse(ctx, dto.EventToResponse(event))
}

// insertWithUniqueSlug walks the counter sequence base, base-1, base-2, …
// past every slug the store already holds, then inserts. The pre-check is
// not atomic with the insert, so a unique-index violation from a concurrent
// creation restarts the walk at the next counter value.
func (s *service) insertWithUniqueSlug(ctx context.Context, e *model.Event, base string) error {
	candidate := base
	counter := 0
	for {
		for {
			taken, err := s.repo.SlugExists(ctx, candidate, e.ID)
			if err != nil {
				return err
			}
			if !taken {
				break
			}
			counter++
			candidate = fmt.Sprintf("%s-%d", base, counter)
		}

		e.Slug = candidate
		err := s.repo.CreateEvent(ctx, e)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repo.ErrSlugTaken) {
			return err
		}
		counter++
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *service) announceCreated(e *model.Event) {
	if s.announce == nil {
		return
	}
	payload, err := json.Marshal(dto.EventCreatedMessage{
		EventID:   e.ID,
		Slug:      e.Slug,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal created message")
		return
	}
	if err := s.announce.Publish(payload); err != nil {
		s.log.Warn().Err(err).Msg("failed to publish created message to RabbitMQ")
	}
}
