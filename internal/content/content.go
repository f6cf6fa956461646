// Package content holds the image and hotspot database the game draws its
// levels from. Coordinates and radii are in the same normalized 0-100 space
// the controllers report cursors in.
package content

import "context"

type Hotspot struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Clue   string  `json:"clue"`
}

type Image struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Hotspots []Hotspot `json:"hotspots"`
}

// Store is where images come from: the embedded defaults, or Postgres when a
// deployment manages content externally.
type Store interface {
	Images(ctx context.Context) ([]Image, error)
}

type StaticStore struct {
	images []Image
}

func NewStaticStore(images []Image) *StaticStore {
	return &StaticStore{images: images}
}

func (s *StaticStore) Images(context.Context) ([]Image, error) {
	return s.images, nil
}
