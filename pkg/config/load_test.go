package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movierental/pkg/config"
)

type sample struct {
	Name  string `yaml:"name" env:"SAMPLE_NAME" env-default:"default"`
	Limit int    `yaml:"limit" env:"SAMPLE_LIMIT" env-default:"3"`
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file falls back to environment", func(t *testing.T) {
		t.Setenv("SAMPLE_LIMIT", "7")

		cfg, err := config.Load[sample](ctx, "sample", filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		assert.Equal(t, sample{Name: "default", Limit: 7}, *cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.yml")
		require.NoError(t, os.WriteFile(path, []byte("name: from-file\nlimit: 5\n"), 0o600))

		cfg, err := config.Load[sample](ctx, "sample", path)
		require.NoError(t, err)
		assert.Equal(t, sample{Name: "from-file", Limit: 5}, *cfg)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Setenv("SAMPLE_LIMIT", "many")

		cfg, err := config.Load[sample](ctx, "sample", "")
		require.Error(t, err)
		assert.Nil(t, cfg)
	})
}
