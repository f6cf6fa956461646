package game

import (
	"math/rand"
	"time"

	"github.com/spotit-game/spotit-backend/internal/content"
)

// Difficulty scales with the team's cumulative score at selection time.
const (
	baseHotspotCount = 3
	midScore         = 100
	highScore        = 200
)

// Level is one image plus the ordered hotspot subset to solve before the
// clock runs out.
type Level struct {
	Image    content.Image
	Hotspots []content.Hotspot
}

// Selector picks the next level for a room. prevImageID is the image of the
// level being replaced ("" at the first round).
type Selector interface {
	Select(teamScore int, prevImageID string) Level
}

type RandomSelector struct {
	images []content.Image
	max    int
	rng    *rand.Rand
}

func NewSelector(images []content.Image, maxHotspots int) *RandomSelector {
	return NewSelectorWithRand(images, maxHotspots, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewSelectorWithRand(images []content.Image, maxHotspots int, rng *rand.Rand) *RandomSelector {
	return &RandomSelector{images: images, max: maxHotspots, rng: rng}
}

func (s *RandomSelector) Select(teamScore int, prevImageID string) Level {
	img := s.pickImage(prevImageID)

	count := hotspotCount(teamScore, s.max)
	if count > len(img.Hotspots) {
		count = len(img.Hotspots)
	}

	// Random sample without replacement, in random order.
	subset := make([]content.Hotspot, len(img.Hotspots))
	copy(subset, img.Hotspots)
	s.rng.Shuffle(len(subset), func(i, j int) {
		subset[i], subset[j] = subset[j], subset[i]
	})

	return Level{Image: img, Hotspots: subset[:count]}
}

// pickImage avoids back-to-back repeats when more than one image exists.
func (s *RandomSelector) pickImage(prevImageID string) content.Image {
	if prevImageID == "" {
		return s.images[0]
	}

	others := make([]content.Image, 0, len(s.images))
	for _, img := range s.images {
		if img.ID != prevImageID {
			others = append(others, img)
		}
	}
	if len(others) == 0 {
		return s.images[0]
	}
	return others[s.rng.Intn(len(others))]
}

func hotspotCount(teamScore, max int) int {
	count := baseHotspotCount
	switch {
	case teamScore >= highScore:
		count = baseHotspotCount + 2
	case teamScore >= midScore:
		count = baseHotspotCount + 1
	}
	if count > max {
		count = max
	}
	return count
}
