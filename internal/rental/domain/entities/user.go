package entities

import (
	"time"
	"unicode/utf8"
)

// MaxNameLength - максимальная длина имени и фамилии в символах.
const MaxNameLength = 40

// User - клиент проката.
type User struct {
	id         int
	idAssigned bool
	name       string
	firstName  string
	birthdate  time.Time
	rentals    []*Rental
}

// NewUser создает клиента без прокатов.
func NewUser(name, firstName string, birthdate time.Time) (*User, error) {
	u := &User{rentals: make([]*Rental, 0, MaxRentals)}
	if err := u.SetName(name); err != nil {
		return nil, err
	}
	if err := u.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := u.SetBirthdate(birthdate); err != nil {
		return nil, err
	}
	return u, nil
}

// CheckName проверяет имя. nil означает отсутствующее значение.
func CheckName(name *string) error {
	if name == nil {
		return ErrNameMissing
	}
	n := utf8.RuneCountInString(*name)
	if n == 0 || n > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

func (u *User) ID() int { return u.id }

// SetID назначает идентификатор один раз; повторный вызов возвращает ErrUserIDChanged.
func (u *User) SetID(id int) error {
	if u.idAssigned {
		return ErrUserIDChanged
	}
	u.id = id
	u.idAssigned = true
	return nil
}

func (u *User) Name() string { return u.name }

func (u *User) SetName(name string) error {
	if err := CheckName(&name); err != nil {
		return err
	}
	u.name = name
	return nil
}

func (u *User) FirstName() string { return u.firstName }

func (u *User) SetFirstName(firstName string) error {
	if err := CheckName(&firstName); err != nil {
		return err
	}
	u.firstName = firstName
	return nil
}

func (u *User) Birthdate() time.Time { return u.birthdate }

// SetBirthdate отклоняет пустую дату и дату позже сегодняшней.
func (u *User) SetBirthdate(birthdate time.Time) error {
	if birthdate.IsZero() {
		return ErrInvalidBirthdate
	}
	birthdate = CivilDate(birthdate)
	if birthdate.After(Today()) {
		return ErrInvalidBirthdate
	}
	u.birthdate = birthdate
	return nil
}

// Age возвращает число полных лет на сегодня.
func (u *User) Age() int {
	return YearsBetween(u.birthdate, Today())
}

// Rentals возвращает копию списка прокатов в порядке добавления.
func (u *User) Rentals() []*Rental {
	out := make([]*Rental, len(u.rentals))
	copy(out, u.rentals)
	return out
}

func (u *User) addRental(r *Rental) {
	u.rentals = append(u.rentals, r)
}

// Charge возвращает сумму стоимостей всех текущих прокатов.
func (u *User) Charge() float64 {
	var total float64
	for _, r := range u.rentals {
		total += r.RentalFee()
	}
	return total
}

// FrequentRenterPoints возвращает сумму бонусных баллов по текущим прокатам.
func (u *User) FrequentRenterPoints() int {
	var total int
	for _, r := range u.rentals {
		total += r.FrequentRenterPoints()
	}
	return total
}

// Equal сравнивает идентификатор, имя, фамилию и дату рождения.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.id == other.id &&
		u.name == other.name &&
		u.firstName == other.firstName &&
		u.birthdate.Equal(other.birthdate)
}
