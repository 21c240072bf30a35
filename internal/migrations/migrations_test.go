package migrations

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_EveryVersionHasUpAndDown(t *testing.T) {
	src, err := iofs.New(MigrationFiles, ".")
	require.NoError(t, err)
	defer src.Close()

	var versions []uint
	v, err := src.First()
	for err == nil {
		versions = append(versions, v)

		up, _, upErr := src.ReadUp(v)
		require.NoError(t, upErr, "version %d has no up migration", v)
		body, readErr := io.ReadAll(up)
		require.NoError(t, readErr)
		require.NotEmpty(t, body)
		up.Close()

		down, _, downErr := src.ReadDown(v)
		require.NoError(t, downErr, "version %d has no down migration", v)
		down.Close()

		v, err = src.Next(v)
	}
	require.True(t, errors.Is(err, os.ErrNotExist), "unexpected error: %v", err)
	require.Equal(t, []uint{1, 2}, versions)
}
