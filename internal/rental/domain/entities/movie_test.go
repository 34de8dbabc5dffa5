package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/domain/errs"
	"movierental/internal/rental/domain/pricing"
)

var releaseDate = entities.Date(2009, time.December, 17)

func TestNewMovie(t *testing.T) {
	t.Run("getters echo inputs", func(t *testing.T) {
		for rating := entities.MinAgeRating; rating <= entities.MaxAgeRating; rating++ {
			m, err := entities.NewMovie("Avatar", releaseDate, pricing.Regular, rating)
			require.NoError(t, err)

			assert.Equal(t, "Avatar", m.Title())
			assert.True(t, releaseDate.Equal(m.ReleaseDate()))
			assert.Equal(t, pricing.Regular, m.PriceCategory())
			assert.Equal(t, rating, m.AgeRating())
			assert.False(t, m.IsRented())
			assert.Zero(t, m.ID())
		}
	})

	tests := []struct {
		name     string
		title    string
		date     time.Time
		category pricing.Category
		rating   int
		wantErr  error
	}{
		{"empty title", "", releaseDate, pricing.Regular, 0, entities.ErrTitleMissing},
		{"blank title", "   \t", releaseDate, pricing.Regular, 0, entities.ErrTitleMissing},
		{"missing date", "Avatar", time.Time{}, pricing.Regular, 0, entities.ErrReleaseDateMissing},
		{"missing category", "Avatar", releaseDate, nil, 0, entities.ErrPriceCategoryMissing},
		{"negative rating", "Avatar", releaseDate, pricing.Children, -1, entities.ErrAgeRatingOutOfRange},
		{"rating above 18", "Avatar", releaseDate, pricing.Children, 19, entities.ErrAgeRatingOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := entities.NewMovie(tt.title, tt.date, tt.category, tt.rating)

			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestMovieErrorMessages(t *testing.T) {
	assert.EqualError(t, entities.ErrTitleMissing, "title must not be null nor empty")
	assert.EqualError(t, entities.ErrReleaseDateMissing, "release date must not be null")
	assert.EqualError(t, entities.ErrAgeRatingOutOfRange, "age rating must be in range [0, 18]")
	assert.EqualError(t, entities.ErrPriceCategoryMissing, "price category must not be null")
}

func TestMovieSettersKeepValueOnFailure(t *testing.T) {
	m, err := entities.NewMovie("Tron", releaseDate, pricing.NewRelease, 12)
	require.NoError(t, err)

	assert.ErrorIs(t, m.SetTitle(" "), entities.ErrTitleMissing)
	assert.Equal(t, "Tron", m.Title())

	assert.ErrorIs(t, m.SetReleaseDate(time.Time{}), entities.ErrReleaseDateMissing)
	assert.True(t, releaseDate.Equal(m.ReleaseDate()))

	assert.ErrorIs(t, m.SetAgeRating(42), entities.ErrAgeRatingOutOfRange)
	assert.Equal(t, 12, m.AgeRating())

	assert.ErrorIs(t, m.SetPriceCategory(nil), entities.ErrPriceCategoryMissing)
	assert.Equal(t, pricing.NewRelease, m.PriceCategory())

	require.NoError(t, m.SetTitle("Tron: Legacy"))
	assert.Equal(t, "Tron: Legacy", m.Title())
}

func TestMovieReleaseDateIsCivil(t *testing.T) {
	m, err := entities.NewMovie("Avatar", time.Date(2009, time.December, 17, 22, 30, 0, 0, time.UTC), pricing.Regular, 0)
	require.NoError(t, err)

	assert.Equal(t, releaseDate, m.ReleaseDate())
}

func TestMovieEqual(t *testing.T) {
	a, err := entities.NewMovie("Avatar", releaseDate, pricing.Regular, 0)
	require.NoError(t, err)
	b, err := entities.NewMovie("Avatar", releaseDate, pricing.Children, 12)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "category and rating are not part of equality")

	b.SetRented(true)
	assert.True(t, a.Equal(b), "rented flag is not part of equality")

	b.SetID(7)
	assert.False(t, a.Equal(b))

	a.SetID(7)
	assert.True(t, a.Equal(b))

	require.NoError(t, b.SetTitle("Avatar 2"))
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(nil))
}
