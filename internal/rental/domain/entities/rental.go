package entities

import "time"

// MaxRentals - максимальное число одновременных прокатов одного клиента.
const MaxRentals = 3

// Rental связывает клиента с выданным ему фильмом.
type Rental struct {
	id         int
	idAssigned bool
	user       *User
	movie      *Movie
	rentalDate time.Time
}

// NewRental выдает фильм клиенту сегодняшним числом.
// Все проверки выполняются до изменения user и movie.
func NewRental(user *User, movie *Movie) (*Rental, error) {
	if user == nil {
		return nil, ErrUserMissing
	}
	if movie == nil || movie.IsRented() {
		return nil, ErrMovieUnavailable
	}
	if len(user.rentals) >= MaxRentals {
		return nil, ErrTooManyRentals
	}
	if user.Age() < movie.AgeRating() {
		return nil, ErrUserTooYoung
	}

	r := &Rental{
		user:       user,
		movie:      movie,
		rentalDate: Today(),
	}
	user.addRental(r)
	movie.SetRented(true)
	return r, nil
}

// MaterializeRental восстанавливает сохраненный прокат.
// Возраст клиента и лимит прокатов не проверяются, уже выданный фильм допустим.
func MaterializeRental(id int, user *User, movie *Movie, rentalDate time.Time) (*Rental, error) {
	if user == nil {
		return nil, ErrUserMissing
	}
	if movie == nil {
		return nil, ErrMovieUnavailable
	}
	if rentalDate.IsZero() {
		return nil, ErrInvalidRentalDate
	}
	rentalDate = CivilDate(rentalDate)
	if rentalDate.After(Today()) {
		return nil, ErrInvalidRentalDate
	}

	r := &Rental{
		id:         id,
		idAssigned: true,
		user:       user,
		movie:      movie,
		rentalDate: rentalDate,
	}
	user.addRental(r)
	movie.SetRented(true)
	return r, nil
}

func (r *Rental) ID() int { return r.id }

// SetID назначает идентификатор один раз; повторный вызов возвращает ErrRentalIDChanged.
func (r *Rental) SetID(id int) error {
	if r.idAssigned {
		return ErrRentalIDChanged
	}
	r.id = id
	r.idAssigned = true
	return nil
}

func (r *Rental) User() *User { return r.user }

func (r *Rental) Movie() *Movie { return r.movie }

func (r *Rental) RentalDate() time.Time { return r.rentalDate }

// RentalDays вычисляется при каждом чтении относительно сегодняшней даты.
func (r *Rental) RentalDays() int64 {
	return DaysBetween(r.rentalDate, Today())
}

func (r *Rental) RentalFee() float64 {
	return r.movie.PriceCategory().Charge(r.RentalDays())
}

func (r *Rental) FrequentRenterPoints() int {
	return r.movie.PriceCategory().FrequentRenterPoints(r.RentalDays())
}

// Equal: при назначенных идентификаторах сравниваются они,
// до назначения - клиент и фильм.
func (r *Rental) Equal(other *Rental) bool {
	if r == nil || other == nil {
		return r == other
	}
	switch {
	case r.idAssigned && other.idAssigned:
		return r.id == other.id
	case !r.idAssigned && !other.idAssigned:
		return r.user.Equal(other.user) && r.movie.Equal(other.movie)
	default:
		return false
	}
}
