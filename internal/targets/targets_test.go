package targets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/gofetch/internal/domain"
	"github.com/datallboy/gofetch/internal/infra/config"
)

func TestLoadKeepsOrder(t *testing.T) {
	got, err := Load(config.TargetsConfig{Names: []string{"b.MOV", " ", "a.MOV"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Target{{Index: 0, Name: "b.MOV"}, {Index: 1, Name: "a.MOV"}}, got)
}

func TestLoadFilters(t *testing.T) {
	cfg := config.TargetsConfig{
		Names:   []string{"0cf5.MOV", "0db9.MOV", "notes.txt", "clips/0d38.MOV"},
		Include: []string{"*.MOV", "clips/*"},
		Exclude: []string{"0db9*"},
	}

	got, err := Load(cfg)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0cf5.MOV", got[0].Name)
	assert.Equal(t, "clips/0d38.MOV", got[1].Name)
	assert.Equal(t, 1, got[1].Index)
}

func TestLoadBadPattern(t *testing.T) {
	_, err := Load(config.TargetsConfig{Names: []string{"a"}, Include: []string{"[a-"}})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
