// Package dto содержит объекты передачи данных HTTP API проката.
package dto

import (
	"errors"
	"time"

	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/ports/api"
)

// DateLayout - формат дат в запросах и ответах.
const DateLayout = "2006-01-02"

// ErrInvalidDate возвращается для даты не в формате DateLayout.
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// MovieRequest содержит атрибуты фильма. Отсутствующие поля остаются nil.
type MovieRequest struct {
	Title         *string `json:"title"`
	ReleaseDate   *string `json:"release_date"`
	AgeRating     *int    `json:"age_rating"`
	PriceCategory *string `json:"price_category"`
}

// MovieResponse содержит данные фильма.
type MovieResponse struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	ReleaseDate   string `json:"release_date"`
	AgeRating     int    `json:"age_rating"`
	PriceCategory string `json:"price_category,omitempty"`
	Rented        bool   `json:"rented"`
}

// UserRequest содержит атрибуты клиента.
type UserRequest struct {
	Name      *string `json:"name"`
	FirstName *string `json:"first_name"`
	Birthdate *string `json:"birthdate"`
}

// UserResponse содержит данные клиента.
type UserResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	Birthdate string `json:"birthdate"`
	Age       int    `json:"age"`
}

// RentalRequest содержит данные для выдачи фильма.
type RentalRequest struct {
	UserID  int `json:"user_id"`
	MovieID int `json:"movie_id"`
}

// RentalResponse содержит данные проката.
type RentalResponse struct {
	ID                   int     `json:"id"`
	UserID               int     `json:"user_id"`
	MovieID              int     `json:"movie_id"`
	Title                string  `json:"title"`
	RentalDate           string  `json:"rental_date"`
	RentalDays           int64   `json:"rental_days"`
	RentalFee            float64 `json:"rental_fee"`
	FrequentRenterPoints int     `json:"frequent_renter_points"`
}

// AccountResponse содержит итог по прокатам клиента.
type AccountResponse struct {
	UserID               int     `json:"user_id"`
	Charge               float64 `json:"charge"`
	FrequentRenterPoints int     `json:"frequent_renter_points"`
}

// StockResponse содержит остаток копий.
type StockResponse struct {
	MovieID int    `json:"movie_id,omitempty"`
	Title   string `json:"title,omitempty"`
	InStock int    `json:"in_stock"`
}

// ParseDate разбирает дату. nil и пустая строка дают нулевое время,
// которое домен считает отсутствующим значением.
func ParseDate(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, *s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ToMovieInput переводит запрос в атрибуты фильма.
func (r MovieRequest) ToMovieInput() (api.MovieInput, error) {
	releaseDate, err := ParseDate(r.ReleaseDate)
	if err != nil {
		return api.MovieInput{}, err
	}

	in := api.MovieInput{ReleaseDate: releaseDate}
	if r.Title != nil {
		in.Title = *r.Title
	}
	if r.AgeRating != nil {
		in.AgeRating = *r.AgeRating
	}
	if r.PriceCategory != nil {
		in.PriceCategory = *r.PriceCategory
	}
	return in, nil
}

// ToUserInput переводит запрос в атрибуты клиента.
func (r UserRequest) ToUserInput() (api.UserInput, error) {
	birthdate, err := ParseDate(r.Birthdate)
	if err != nil {
		return api.UserInput{}, err
	}
	return api.UserInput{
		Name:      r.Name,
		FirstName: r.FirstName,
		Birthdate: birthdate,
	}, nil
}

// FromMovie строит ответ по фильму.
func FromMovie(m *entities.Movie) MovieResponse {
	resp := MovieResponse{
		ID:          m.ID(),
		Title:       m.Title(),
		ReleaseDate: formatDate(m.ReleaseDate()),
		AgeRating:   m.AgeRating(),
		Rented:      m.IsRented(),
	}
	if c := m.PriceCategory(); c != nil {
		resp.PriceCategory = c.Name()
	}
	return resp
}

// FromMovies строит ответы по списку фильмов.
func FromMovies(movies []*entities.Movie) []MovieResponse {
	resp := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, FromMovie(m))
	}
	return resp
}

// FromUser строит ответ по клиенту.
func FromUser(u *entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		FirstName: u.FirstName(),
		Birthdate: formatDate(u.Birthdate()),
		Age:       u.Age(),
	}
}

// FromUsers строит ответы по списку клиентов.
func FromUsers(users []*entities.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, FromUser(u))
	}
	return resp
}

// FromRental строит ответ по прокату.
func FromRental(r *entities.Rental) RentalResponse {
	return RentalResponse{
		ID:                   r.ID(),
		UserID:               r.User().ID(),
		MovieID:              r.Movie().ID(),
		Title:                r.Movie().Title(),
		RentalDate:           formatDate(r.RentalDate()),
		RentalDays:           r.RentalDays(),
		RentalFee:            r.RentalFee(),
		FrequentRenterPoints: r.FrequentRenterPoints(),
	}
}

// FromRentals строит ответы по списку прокатов.
func FromRentals(rentals []*entities.Rental) []RentalResponse {
	resp := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		resp = append(resp, FromRental(r))
	}
	return resp
}
