package query

import (
	"context"
	"errors"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/core/storage"
)

// ProfileService matches profile conditions against stored device tags.
type ProfileService struct {
	profiles storage.ProfileStore
}

func NewProfileService(profiles storage.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// MatchesProfile reports whether the device satisfies every condition.
// No conditions means a match without a lookup; a device without a profile
// matches nothing else.
func (s *ProfileService) MatchesProfile(ctx context.Context, deviceID string, conds []rule.ProfileCondition) (bool, error) {
	if len(conds) == 0 {
		return true, nil
	}

	profile, err := s.profiles.GetProfile(ctx, deviceID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rule.MatchProfile(profile, conds), nil
}
