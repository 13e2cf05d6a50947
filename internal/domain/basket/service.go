// internal/domain/basket/service.go
package basket

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no basket matches the lookup.
var ErrNotFound = errors.New("basket not found")

// Service handles catalog business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new basket service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Payload represents basket create/update data
type Payload struct {
	Title       string          `json:"title" binding:"required"`
	Slug        string          `json:"slug"`
	Category    string          `json:"category" binding:"required"`
	Prompt      string          `json:"prompt"`
	Tags        []string        `json:"tags"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	HeroImage   string          `json:"heroImage"`
}

// List returns catalog summaries filtered by category and free-text search,
// newest first. Search matches title, prompt and tags, ignoring case and
// diacritics.
func (s *Service) List(category, search string) ([]Summary, error) {
	var baskets []Basket
	if err := s.db.Find(&baskets).Error; err != nil {
		return nil, fmt.Errorf("failed to list baskets: %w", err)
	}

	summaries := make([]Summary, 0, len(baskets))
	for i := range baskets {
		b := &baskets[i]
		if !matchesCategory(b, category) || !matchesSearch(b, search) {
			continue
		}
		summaries = append(summaries, b.toSummary())
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	return summaries, nil
}

// GetBySlug returns the full detail for one basket.
func (s *Service) GetBySlug(slug string) (*Detail, error) {
	var b Basket
	result := s.db.Where("lower(slug) = ?", strings.ToLower(slug)).First(&b)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve basket: %w", result.Error)
	}

	detail := b.toDetail()
	return &detail, nil
}

// GetByID returns the basket entity by id.
func (s *Service) GetByID(id string) (*Basket, error) {
	var b Basket
	result := s.db.Where("id = ?", id).First(&b)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve basket: %w", result.Error)
	}
	return &b, nil
}

// Create inserts a new basket, generating a unique slug when none is given.
func (s *Service) Create(req *Payload) (*Detail, error) {
	b := Basket{}
	s.apply(&b, req)

	slug, err := s.uniqueSlug(Slugify(firstNonEmpty(req.Slug, req.Title)), "")
	if err != nil {
		return nil, err
	}
	b.Slug = slug

	if err := s.db.Create(&b).Error; err != nil {
		return nil, fmt.Errorf("failed to create basket: %w", err)
	}

	detail := b.toDetail()
	return &detail, nil
}

// Update rewrites an existing basket.
func (s *Service) Update(id string, req *Payload) (*Detail, error) {
	b, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.apply(b, req)

	slug, err := s.uniqueSlug(Slugify(firstNonEmpty(req.Slug, req.Title)), id)
	if err != nil {
		return nil, err
	}
	b.Slug = slug

	if err := s.db.Save(b).Error; err != nil {
		return nil, fmt.Errorf("failed to update basket: %w", err)
	}

	detail := b.toDetail()
	return &detail, nil
}

// Delete removes a basket from the catalog. Historical orders keep their
// frozen item snapshots regardless.
func (s *Service) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Basket{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete basket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count reports the catalog size; used by the seeder.
func (s *Service) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&Basket{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count baskets: %w", err)
	}
	return count, nil
}

func (s *Service) apply(b *Basket, req *Payload) {
	b.Title = req.Title
	b.Category = req.Category
	b.Prompt = req.Prompt
	b.SetTags(req.Tags)
	b.Price = req.Price
	b.Stock = req.Stock
	b.HeroImage = req.HeroImage
	b.DescriptionHTML = req.Description
}

// uniqueSlug appends -2, -3, ... until the slug is free. currentID excludes
// the basket being updated from the collision check.
func (s *Service) uniqueSlug(base, currentID string) (string, error) {
	if base == "" {
		base = "basket"
	}

	slug := base
	for suffix := 2; ; suffix++ {
		var count int64
		query := s.db.Model(&Basket{}).Where("lower(slug) = ?", strings.ToLower(slug))
		if currentID != "" {
			query = query.Where("id <> ?", currentID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// Slugify turns a title into a lowercase ascii slug.
func Slugify(title string) string {
	folded := foldDiacritics(strings.ToLower(title))

	var sb strings.Builder
	lastDash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && sb.Len() > 0 {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(sb.String(), "-")
}

func matchesCategory(b *Basket, category string) bool {
	if category == "" {
		return true
	}
	return strings.EqualFold(b.Category, category)
}

func matchesSearch(b *Basket, search string) bool {
	needle := normalizeText(search)
	if needle == "" {
		return true
	}

	if strings.Contains(normalizeText(b.Title), needle) ||
		strings.Contains(normalizeText(b.Prompt), needle) {
		return true
	}
	for _, tag := range b.Tags() {
		if strings.Contains(normalizeText(tag), needle) {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	return foldDiacritics(strings.ToLower(strings.TrimSpace(s)))
}

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldDiacritics(s string) string {
	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return s
	}
	return folded
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
