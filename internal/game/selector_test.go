package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spotit-game/spotit-backend/internal/content"
)

func testImages() []content.Image {
	return content.Defaults()
}

func newTestSelector(maxHotspots int) *RandomSelector {
	return NewSelectorWithRand(testImages(), maxHotspots, rand.New(rand.NewSource(1)))
}

func TestSelect_DifficultyScalesWithTeamScore(t *testing.T) {
	tests := []struct {
		name      string
		teamScore int
		want      int
	}{
		{"fresh team", 0, 3},
		{"below mid threshold", 99, 3},
		{"at mid threshold", 100, 4},
		{"at high threshold", 200, 5},
		{"well past high threshold", 1000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSelector(8)
			lvl := s.Select(tt.teamScore, "")
			require.Len(t, lvl.Hotspots, tt.want)
		})
	}
}

func TestSelect_CapAppliesBeforeImageSize(t *testing.T) {
	s := newTestSelector(4)
	lvl := s.Select(500, "")
	require.Len(t, lvl.Hotspots, 4)
}

func TestSelect_SubsetDrawnWithoutReplacement(t *testing.T) {
	s := newTestSelector(8)

	for i := 0; i < 50; i++ {
		lvl := s.Select(200, "")

		byID := make(map[string]content.Hotspot)
		for _, h := range lvl.Image.Hotspots {
			byID[h.ID] = h
		}

		seen := make(map[string]bool)
		for _, h := range lvl.Hotspots {
			require.Contains(t, byID, h.ID, "hotspot must come from the selected image")
			require.False(t, seen[h.ID], "hotspot %s drawn twice", h.ID)
			seen[h.ID] = true
		}
	}
}

func TestSelect_AvoidsBackToBackImages(t *testing.T) {
	s := newTestSelector(8)

	prev := s.Select(0, "").Image.ID
	for i := 0; i < 20; i++ {
		next := s.Select(0, prev).Image.ID
		require.NotEqual(t, prev, next, "image repeated back to back")
		prev = next
	}
}

func TestSelect_SingleImageMayRepeat(t *testing.T) {
	images := testImages()[:1]
	s := NewSelectorWithRand(images, 8, rand.New(rand.NewSource(1)))

	first := s.Select(0, "")
	second := s.Select(0, first.Image.ID)
	require.Equal(t, first.Image.ID, second.Image.ID)
}

func TestSelect_FirstRoundUsesFirstImage(t *testing.T) {
	s := newTestSelector(8)
	lvl := s.Select(0, "")
	require.Equal(t, testImages()[0].ID, lvl.Image.ID)
}
