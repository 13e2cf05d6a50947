// internal/domain/basket/entity.go
package basket

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Basket represents a curated gift basket in the catalog
type Basket struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	Slug            string          `gorm:"uniqueIndex;not null;size:160" json:"slug"`
	Title           string          `gorm:"not null;size:200" json:"title"`
	Category        string          `gorm:"size:100;index" json:"category"`
	Prompt          string          `gorm:"size:500" json:"prompt"`
	TagsCSV         string          `gorm:"column:tags;size:500" json:"-"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock           int             `gorm:"not null;default:0" json:"stock"`
	HeroImage       string          `gorm:"size:500" json:"heroImage,omitempty"`
	DescriptionHTML string          `gorm:"column:description_html;type:text" json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName overrides the table name for Basket
func (Basket) TableName() string {
	return "baskets"
}

// BeforeCreate assigns an id when none is set
func (b *Basket) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Tags returns the tag list stored on the basket.
func (b *Basket) Tags() []string {
	if b.TagsCSV == "" {
		return []string{}
	}
	return strings.Split(b.TagsCSV, ",")
}

// SetTags stores a tag list, trimmed and deduplicated case-insensitively
// while preserving the first-seen casing.
func (b *Basket) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	unique := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, trimmed)
	}
	b.TagsCSV = strings.Join(unique, ",")
}

// Summary is the list-view shape of a basket.
type Summary struct {
	ID        string          `json:"id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Prompt    string          `json:"prompt"`
	Tags      []string        `json:"tags"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	HeroImage string          `json:"heroImage,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Detail adds the rendered description to the summary shape.
type Detail struct {
	Summary
	DescriptionHTML string `json:"descriptionHtml"`
}

func (b *Basket) toSummary() Summary {
	return Summary{
		ID:        b.ID,
		Slug:      b.Slug,
		Title:     b.Title,
		Category:  b.Category,
		Prompt:    b.Prompt,
		Tags:      b.Tags(),
		Price:     b.Price,
		Stock:     b.Stock,
		HeroImage: b.HeroImage,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *Basket) toDetail() Detail {
	return Detail{
		Summary:         b.toSummary(),
		DescriptionHTML: b.DescriptionHTML,
	}
}
