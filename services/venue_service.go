package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
	"github.com/copapymes/league-system/storage"
)

type CreateVenueInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity *int   `json:"capacity"`
}

type UpdateVenueInput struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Capacity *int    `json:"capacity"`
}

type VenueService interface {
	Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error)
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, id int, input UpdateVenueInput) (*models.Venue, error)
	Delete(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Venue, error)
}

type venueService struct {
	venueRepo repositories.VenueRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewVenueService(venueRepo repositories.VenueRepository, uploader storage.FileUploader, logger *slog.Logger) VenueService {
	return &venueService{venueRepo: venueRepo, uploader: uploader, logger: logger}
}

func (s *venueService) Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error) {
	if input.Name == "" || input.Location == "" {
		return nil, ErrVenueNameRequired
	}

	venue := &models.Venue{Name: input.Name, Location: input.Location, Capacity: input.Capacity}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		if errors.Is(err, repositories.ErrVenueConflict) {
			return nil, ErrVenueConflict
		}
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	s.resolvePhotoURL(venue)
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range venues {
		s.resolvePhotoURL(&venues[i])
	}
	return venues, nil
}

func (s *venueService) Update(ctx context.Context, id int, input UpdateVenueInput) (*models.Venue, error) {
	venue, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrVenueNameRequired
		}
		venue.Name = *input.Name
	}
	if input.Location != nil {
		if *input.Location == "" {
			return nil, ErrVenueNameRequired
		}
		venue.Location = *input.Location
	}
	if input.Capacity != nil {
		venue.Capacity = input.Capacity
	}

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		switch {
		case errors.Is(err, repositories.ErrVenueNotFound):
			return nil, ErrVenueNotFound
		case errors.Is(err, repositories.ErrVenueConflict):
			return nil, ErrVenueConflict
		}
		return nil, fmt.Errorf("failed to update venue %d: %w", id, err)
	}
	return venue, nil
}

func (s *venueService) Delete(ctx context.Context, id int) error {
	err := s.venueRepo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrVenueNotFound):
		return ErrVenueNotFound
	case errors.Is(err, repositories.ErrVenueInUse):
		return ErrVenueInUse
	}
	return fmt.Errorf("failed to delete venue %d: %w", id, err)
}

func (s *venueService) UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Venue, error) {
	if s.uploader == nil {
		return nil, ErrMediaStorageDisabled
	}
	ext, ok := crestContentTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedMediaType
	}

	venue, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("venues", fmt.Sprintf("venue-%d-%d%s", id, time.Now().UnixNano(), ext))
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo for venue %d: %w", id, err)
	}

	oldKey := venue.PhotoKey
	if err := s.venueRepo.UpdatePhotoKey(ctx, id, &result.Key); err != nil {
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.Error("failed to delete orphaned venue photo upload",
				slog.String("key", result.Key),
				slog.Any("error", delErr),
			)
		}
		return nil, fmt.Errorf("failed to persist photo key for venue %d: %w", id, err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous venue photo",
				slog.String("key", *oldKey),
				slog.Any("error", err),
			)
		}
	}

	venue.PhotoKey = &result.Key
	s.resolvePhotoURL(venue)
	s.logger.Info("venue photo updated", slog.Int("venue_id", id), slog.String("key", result.Key))
	return venue, nil
}

func (s *venueService) resolvePhotoURL(venue *models.Venue) {
	if s.uploader == nil || venue.PhotoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*venue.PhotoKey)
	if url != "" {
		venue.PhotoURL = &url
	}
}
