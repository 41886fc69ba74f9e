// Package seed fills an empty photo collection with the system-owned gallery.
package seed

import (
	"context"
	"fmt"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"pupshare/backend/global"
	"time"

	"gorm.io/gorm"
)

type photo struct {
	title       string
	description string
	image       string
	category    models.Category
	tags        []string
}

const unsplash = "https://images.unsplash.com/%s?auto=format&fit=crop&w=800&q=80"

var defaults = []photo{
	{"Golden Retriever Puppy", "Adorable golden retriever puppy with big brown eyes", "photo-1633722715463-d30f4f325e24", models.CategoryPuppies, []string{"goldenretriever", "puppy"}},
	{"Husky Puppy Playing", "Energetic husky puppy with blue eyes", "photo-1568572933382-74d440642117", models.CategoryPlaying, []string{"husky", "puppy"}},
	{"Beagle Puppy", "Cute beagle puppy with floppy ears", "photo-1505628346881-b72b27e84530", models.CategoryPortraits, []string{"beagle", "puppy"}},
	{"Labrador Puppy", "Sweet yellow labrador puppy", "photo-1587300003388-59208cc962cb", models.CategoryPuppies, []string{"labrador", "puppy"}},
	{"Corgi Puppy", "Fluffy corgi puppy with short legs", "photo-1612536024345-ba0c96a1b688", models.CategoryPortraits, []string{"corgi", "fluffy"}},
	{"Pomeranian Puppy", "Tiny fluffy pomeranian puppy", "photo-1544568100-847a948585b9", models.CategoryPuppies, []string{"pomeranian", "fluffy"}},
	{"German Shepherd Puppy", "German shepherd puppy with pointy ears", "photo-1590005024662-41e2a2d66c4f", models.CategoryNature, []string{"germanshepherd"}},
	{"Dachshund Puppy", "Long and low dachshund puppy", "photo-1518717758536-85ae29035b6d", models.CategoryAction, []string{"dachshund"}},
	{"Pug Puppy", "Wrinkly pug puppy with big eyes", "photo-1517849845537-4d257902454a", models.CategoryPortraits, []string{"pug"}},
	{"Bulldog Puppy", "Chunky english bulldog puppy", "photo-1583511655857-d19b40a7a54e", models.CategorySleeping, []string{"bulldog"}},
	{"Shiba Inu Puppy", "Fluffy shiba inu puppy smiling", "photo-1583337130417-3346a1be7dee", models.CategoryPuppies, []string{"shibainu", "fluffy"}},
	{"Border Collie Puppy", "Intelligent border collie puppy", "photo-1587402092301-725e37c70fd8", models.CategoryNature, []string{"bordercollie"}},
}

// DefaultPhotos builds the seed records. They belong to nobody, are already
// approved and can never be deleted by users. Creation times are spread over
// past days so the gallery order is deterministic.
func DefaultPhotos(now time.Time) []models.Photo {
	out := make([]models.Photo, 0, len(defaults))
	for i, d := range defaults {
		created := now.Add(-time.Duration(len(defaults)-i) * 24 * time.Hour)
		out = append(out, models.Photo{
			ID:          fmt.Sprintf("seed-%d", i+1),
			Title:       d.title,
			Description: d.description,
			ImageURL:    fmt.Sprintf(unsplash, d.image),
			Category:    d.category,
			Tags:        d.tags,
			Status:      models.StatusApproved,
			IsDefault:   true,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	return out
}

// Photos inserts the defaults when the photo collection is empty and bumps
// their tags. It reports how many photos were inserted.
func Photos(ctx context.Context, store *repo.Store) (int, error) {
	photos := repo.NewPhotoRepository(store.DB())
	tags := repo.NewTagRepository(store.DB())
	inserted := 0
	err := store.MutateMany(ctx, []repo.Collection{repo.Photos, repo.Tags}, func(tx *gorm.DB) error {
		n, err := photos.WithTx(tx).Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		batch := DefaultPhotos(time.Now())
		if err := photos.WithTx(tx).CreateBatch(ctx, batch); err != nil {
			return err
		}
		tagRepo := tags.WithTx(tx)
		for _, p := range batch {
			for _, t := range p.Tags {
				if err := tagRepo.Increment(ctx, t); err != nil {
					return err
				}
			}
		}
		inserted = len(batch)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		global.Logger.Info().Int("photos", inserted).Msg("seeded default photos")
	}
	return inserted, nil
}
