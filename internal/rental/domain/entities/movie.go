// Package entities contains the rental domain model: movies, users and the
// rentals that bind them. Every setter validates before assigning, so a
// rejected value leaves the entity unchanged.
package entities

import (
	"strings"
	"time"

	"movierental/internal/rental/domain/pricing"
)

// Границы возрастного рейтинга.
const (
	MinAgeRating = 0
	MaxAgeRating = 18
)

// Movie - фильм каталога.
type Movie struct {
	id            int
	title         string
	releaseDate   time.Time
	ageRating     int
	priceCategory pricing.Category
	rented        bool
}

// NewMovie создает фильм. При ошибке фильм не возвращается.
func NewMovie(title string, releaseDate time.Time, category pricing.Category, ageRating int) (*Movie, error) {
	m := &Movie{}
	if err := m.SetTitle(title); err != nil {
		return nil, err
	}
	if err := m.SetReleaseDate(releaseDate); err != nil {
		return nil, err
	}
	if err := m.SetPriceCategory(category); err != nil {
		return nil, err
	}
	if err := m.SetAgeRating(ageRating); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Movie) ID() int { return m.id }

// SetID назначает идентификатор, выданный хранилищем.
func (m *Movie) SetID(id int) { m.id = id }

func (m *Movie) Title() string { return m.title }

func (m *Movie) SetTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleMissing
	}
	m.title = title
	return nil
}

func (m *Movie) ReleaseDate() time.Time { return m.releaseDate }

func (m *Movie) SetReleaseDate(releaseDate time.Time) error {
	if releaseDate.IsZero() {
		return ErrReleaseDateMissing
	}
	m.releaseDate = CivilDate(releaseDate)
	return nil
}

func (m *Movie) AgeRating() int { return m.ageRating }

func (m *Movie) SetAgeRating(ageRating int) error {
	if ageRating < MinAgeRating || ageRating > MaxAgeRating {
		return ErrAgeRatingOutOfRange
	}
	m.ageRating = ageRating
	return nil
}

func (m *Movie) PriceCategory() pricing.Category { return m.priceCategory }

func (m *Movie) SetPriceCategory(category pricing.Category) error {
	if category == nil {
		return ErrPriceCategoryMissing
	}
	m.priceCategory = category
	return nil
}

func (m *Movie) IsRented() bool { return m.rented }

// SetRented меняет признак выдачи. Используется прокатом и при возврате фильма.
func (m *Movie) SetRented(rented bool) { m.rented = rented }

// Equal сравнивает идентификатор, дату выхода и название.
func (m *Movie) Equal(other *Movie) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.id == other.id &&
		m.title == other.title &&
		m.releaseDate.Equal(other.releaseDate)
}
