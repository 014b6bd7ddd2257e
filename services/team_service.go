package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
	"github.com/copapymes/league-system/storage"
)

type CreateTeamInput struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type UpdateTeamInput struct {
	Name      *string `json:"name"`
	ShortName *string `json:"short_name"`
}

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, onlyActive bool) ([]models.Team, error)
	Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	SetActive(ctx context.Context, id int, active bool) (*models.Team, error)
	Delete(ctx context.Context, id int) error
	UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader, logger: logger}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	shortName := input.ShortName
	if shortName == "" {
		shortName = abbreviate(input.Name)
	}

	team := &models.Team{Name: input.Name, ShortName: shortName, Active: true}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.resolveCrestURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context, onlyActive bool) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.resolveCrestURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = *input.Name
	}
	if input.ShortName != nil {
		team.ShortName = *input.ShortName
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}
	return team, nil
}

func (s *teamService) SetActive(ctx context.Context, id int, active bool) (*models.Team, error) {
	if err := s.teamRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to change team %d active flag: %w", id, err)
	}
	return s.GetByID(ctx, id)
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	err := s.teamRepo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamInUse):
		return ErrTeamInUse
	}
	return fmt.Errorf("failed to delete team %d: %w", id, err)
}

var crestContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

func (s *teamService) UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrMediaStorageDisabled
	}
	ext, ok := crestContentTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedMediaType
	}

	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("crests", fmt.Sprintf("team-%d-%d%s", id, time.Now().UnixNano(), ext))
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", id, err)
	}

	oldKey := team.CrestKey
	if err := s.teamRepo.UpdateCrestKey(ctx, id, &result.Key); err != nil {
		// The upload is orphaned; delete it so the bucket stays clean.
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.Error("failed to delete orphaned crest upload",
				slog.String("key", result.Key),
				slog.Any("error", delErr),
			)
		}
		return nil, fmt.Errorf("failed to persist crest key for team %d: %w", id, err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous crest",
				slog.String("key", *oldKey),
				slog.Any("error", err),
			)
		}
	}

	team.CrestKey = &result.Key
	s.resolveCrestURL(team)
	s.logger.Info("team crest updated", slog.Int("team_id", id), slog.String("key", result.Key))
	return team, nil
}

func (s *teamService) resolveCrestURL(team *models.Team) {
	if s.uploader == nil || team.CrestKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.CrestKey)
	if url != "" {
		team.CrestURL = &url
	}
}

// abbreviate derives a short name from the first letters of up to three words.
func abbreviate(name string) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 3 {
			break
		}
		b.WriteString(strings.ToUpper(word[:1]))
	}
	return b.String()
}
