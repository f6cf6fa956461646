package content

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type imageRow struct {
	ID       string `gorm:"primaryKey"`
	URL      string
	Hotspots []hotspotRow `gorm:"foreignKey:ImageID"`
}

func (imageRow) TableName() string { return "images" }

type hotspotRow struct {
	ID      string `gorm:"primaryKey"`
	ImageID string `gorm:"primaryKey"`
	X       float64
	Y       float64
	Radius  float64
	Clue    string
}

func (hotspotRow) TableName() string { return "hotspots" }

type postgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects to a content database and migrates the schema. The
// table contents are managed by whoever curates the images; this process only
// reads them.
func OpenPostgres(dsn string) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open content db: %w", err)
	}
	if err := db.AutoMigrate(&imageRow{}, &hotspotRow{}); err != nil {
		return nil, fmt.Errorf("migrate content db: %w", err)
	}
	return &postgresStore{db: db}, nil
}

func (s *postgresStore) Images(ctx context.Context) ([]Image, error) {
	var rows []imageRow
	if err := s.db.WithContext(ctx).Preload("Hotspots").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}

	images := make([]Image, 0, len(rows))
	for _, row := range rows {
		img := Image{ID: row.ID, URL: row.URL}
		for _, h := range row.Hotspots {
			img.Hotspots = append(img.Hotspots, Hotspot{
				ID: h.ID, X: h.X, Y: h.Y, Radius: h.Radius, Clue: h.Clue,
			})
		}
		images = append(images, img)
	}
	return images, nil
}
