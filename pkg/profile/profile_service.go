package profile

import (
	"context"
	"errors"
	"sort"
	"strings"

	"fridge-assistant-backend/domain"
	"fridge-assistant-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProfileService interface {
		GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error)
		AddAllergies(ctx context.Context, userID, items string) error
		ClearAllergies(ctx context.Context, userID string) error
		AddDislikes(ctx context.Context, userID, items string) error
		ClearDislikes(ctx context.Context, userID string) error
		SetStatus(ctx context.Context, userID, status string) error
	}

	profileService struct {
		profileRepository ProfileRepository
	}
)

func NewProfileService(profileRepository ProfileRepository) ProfileService {
	return &profileService{profileRepository: profileRepository}
}

// SplitTokens turns a comma-joined token set into its non-empty trimmed
// members.
func SplitTokens(joined string) []string {
	var tokens []string
	for _, t := range strings.Split(joined, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// unionTokens merges newly supplied tokens into an existing set. Updates are
// additive, never replacements; the result is lower-cased and sorted.
func unionTokens(existing, additions string) string {
	set := make(map[string]struct{})
	for _, t := range SplitTokens(existing) {
		set[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range SplitTokens(additions) {
		set[strings.ToLower(t)] = struct{}{}
	}

	merged := make([]string, 0, len(set))
	for t := range set {
		merged = append(merged, t)
	}
	sort.Strings(merged)
	return strings.Join(merged, ", ")
}

// getOrDefault returns the stored profile, or an empty one when the user has
// never touched their profile.
func (s *profileService) getOrDefault(ctx context.Context, userID string) (*entities.UserProfile, error) {
	profile, err := s.profileRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userUUID, err := uuid.Parse(userID)
			if err != nil {
				return nil, domain.ErrParseUUID
			}
			return &entities.UserProfile{UserID: userUUID}, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	profile, err := s.getOrDefault(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	// The default status is stored as the empty string but named "none" on
	// the wire.
	status := profile.Status
	if status == domain.StatusNone {
		status = "none"
	}

	return domain.ProfileResponse{
		Allergies: SplitTokens(profile.Allergies),
		Dislikes:  SplitTokens(profile.Dislikes),
		Status:    status,
	}, nil
}

func (s *profileService) AddAllergies(ctx context.Context, userID, items string) error {
	profile, err := s.getOrDefault(ctx, userID)
	if err != nil {
		return err
	}
	profile.Allergies = unionTokens(profile.Allergies, items)
	return s.profileRepository.Upsert(ctx, profile)
}

func (s *profileService) ClearAllergies(ctx context.Context, userID string) error {
	profile, err := s.getOrDefault(ctx, userID)
	if err != nil {
		return err
	}
	profile.Allergies = ""
	return s.profileRepository.Upsert(ctx, profile)
}

func (s *profileService) AddDislikes(ctx context.Context, userID, items string) error {
	profile, err := s.getOrDefault(ctx, userID)
	if err != nil {
		return err
	}
	profile.Dislikes = unionTokens(profile.Dislikes, items)
	return s.profileRepository.Upsert(ctx, profile)
}

func (s *profileService) ClearDislikes(ctx context.Context, userID string) error {
	profile, err := s.getOrDefault(ctx, userID)
	if err != nil {
		return err
	}
	profile.Dislikes = ""
	return s.profileRepository.Upsert(ctx, profile)
}

func (s *profileService) SetStatus(ctx context.Context, userID, status string) error {
	switch status {
	case "none":
		status = domain.StatusNone
	case domain.StatusVegetarian, domain.StatusVegan:
	default:
		return domain.ErrInvalidStatus
	}

	profile, err := s.getOrDefault(ctx, userID)
	if err != nil {
		return err
	}
	profile.Status = status
	return s.profileRepository.Upsert(ctx, profile)
}
