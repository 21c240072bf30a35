package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/core/storage"
	storagemocks "github.com/aevon-lab/aevon-rules/internal/mocks/storage"
	"github.com/aevon-lab/aevon-rules/internal/query"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_MatchesProfile(t *testing.T) {
	conds := []rule.ProfileCondition{
		{Tag: "gender", Op: rule.OpEq, Value: "female"},
		{Tag: "age", Op: rule.OpGte, Value: "30"},
	}

	tests := []struct {
		name    string
		profile map[string]string
		err     error
		want    bool
		wantErr bool
	}{
		{name: "all conditions hold", profile: map[string]string{"gender": "female", "age": "31"}, want: true},
		{name: "numeric condition fails", profile: map[string]string{"gender": "female", "age": "29"}, want: false},
		{name: "missing tag fails", profile: map[string]string{"gender": "female"}, want: false},
		{name: "unknown device matches nothing", err: storage.ErrNotFound, want: false},
		{name: "store failure surfaces", err: errors.New("pool exhausted"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profiles := storagemocks.NewProfileStore(t)
			profiles.EXPECT().GetProfile(mock.Anything, "dev-1").Return(tc.profile, tc.err).Once()

			got, err := query.NewProfileService(profiles).MatchesProfile(context.Background(), "dev-1", conds)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestProfileService_NoConditionsSkipsLookup(t *testing.T) {
	profiles := storagemocks.NewProfileStore(t)

	ok, err := query.NewProfileService(profiles).MatchesProfile(context.Background(), "dev-1", nil)
	require.NoError(t, err)
	require.True(t, ok)
}
