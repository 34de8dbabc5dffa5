// Package statement renders a client's rentals as a printable bill.
package statement

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/domain/errs"
)

// MaxNameLength - предел длины имени и фамилии в заголовке счета.
const MaxNameLength = 8

// Ошибки проверки данных отчета.
var (
	ErrNameTooLong    = errs.Validation("name must not be longer than 8 characters")
	ErrRentalsMissing = errs.Validation("rentals must not be null")
)

// Rental - то, что счету нужно знать о прокате.
type Rental interface {
	RentalDays() int64
	RentalFee() float64
	Movie() *entities.Movie
}

// Printer печатает отчет.
type Printer interface {
	Print() string
}

// Statement - проверенные данные отчета: имя клиента и его прокаты.
type Statement struct {
	lastName  string
	firstName string
	rentals   []Rental
}

// New проверяет данные отчета. Пустой список прокатов допустим, nil - нет.
func New(lastName, firstName string, rentals []Rental) (*Statement, error) {
	if utf8.RuneCountInString(lastName) > MaxNameLength ||
		utf8.RuneCountInString(firstName) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if rentals == nil {
		return nil, ErrRentalsMissing
	}
	return &Statement{
		lastName:  lastName,
		firstName: firstName,
		rentals:   rentals,
	}, nil
}

func (s *Statement) LastName() string { return s.lastName }

func (s *Statement) FirstName() string { return s.firstName }

func (s *Statement) Rentals() []Rental { return s.rentals }

// Bill - текстовый счет фиксированной ширины.
type Bill struct {
	*Statement
}

// NewBill создает счет.
func NewBill(lastName, firstName string, rentals []Rental) (*Bill, error) {
	s, err := New(lastName, firstName, rentals)
	if err != nil {
		return nil, err
	}
	return &Bill{Statement: s}, nil
}

// Print возвращает счет: заголовок и по строке на прокат в исходном порядке.
func (b *Bill) Print() string {
	var sb strings.Builder

	sb.WriteString("Statement\n")
	sb.WriteString("=========\n")
	fmt.Fprintf(&sb, "for: %s %s\n", b.firstName, b.lastName)
	sb.WriteString("\n")
	sb.WriteString("Days   Price  Title\n")
	sb.WriteString("-------------------\n")

	for _, r := range b.rentals {
		fmt.Fprintf(&sb, "%4d  %6.2f  %s\n", r.RentalDays(), r.RentalFee(), r.Movie().Title())
	}
	return sb.String()
}

// FromRentals приводит прокаты клиента к виду, который принимает счет.
func FromRentals(rentals []*entities.Rental) []Rental {
	out := make([]Rental, 0, len(rentals))
	for _, r := range rentals {
		out = append(out, r)
	}
	return out
}
