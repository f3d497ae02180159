package seed

import (
	_ "embed"
	"fmt"

	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed tags.yml
var builtInTagsYAML []byte

type tagFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type tagFixtureFile struct {
	Tags []tagFixture `yaml:"tags"`
}

// BuiltInTags returns the curated tag set shipped with the seeder.
func BuiltInTags() ([]tagFixture, error) {
	var file tagFixtureFile
	if err := yaml.Unmarshal(builtInTagsYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing built-in tags: %w", err)
	}
	return file.Tags, nil
}

// Tags upserts the built-in tags so seeded questions have a stable set to
// draw from. Existing tags keep their ID; name and description are refreshed.
func Tags(db *gorm.DB) ([]models.Tag, error) {
	fixtures, err := BuiltInTags()
	if err != nil {
		return nil, err
	}

	tags := make([]models.Tag, 0, len(fixtures))
	for _, f := range fixtures {
		tag := models.Tag{
			Name:        f.Name,
			Slug:        repository.Slugify(f.Name),
			Description: f.Description,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "updated_at"}),
		}).Create(&tag).Error
		if err != nil {
			return nil, fmt.Errorf("upserting tag %q: %w", f.Name, err)
		}
		if tag.ID == 0 {
			if err := db.Where("slug = ?", tag.Slug).First(&tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
