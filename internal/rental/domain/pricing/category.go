// Package pricing implements the price categories that turn a rental duration
// into a fee and frequent renter points.
package pricing

// Category рассчитывает стоимость аренды и бонусные баллы по числу дней.
type Category interface {
	// Charge возвращает стоимость аренды за daysRented дней.
	Charge(daysRented int64) float64
	// FrequentRenterPoints возвращает бонусные баллы за аренду.
	FrequentRenterPoints(daysRented int64) int
	// Name возвращает отображаемое имя; по нему категория хранится и ищется в реестре.
	Name() string
}

// Имена категорий.
const (
	RegularName    = "Regular"
	ChildrenName   = "Children"
	NewReleaseName = "NewRelease"
)

// Категории - неизменяемые значения без состояния.
var (
	Regular    Category = regular{}
	Children   Category = children{}
	NewRelease Category = newRelease{}
)

// basePoints - один балл за любую аренду длиной больше нуля дней.
type basePoints struct{}

func (basePoints) FrequentRenterPoints(daysRented int64) int {
	if daysRented > 0 {
		return 1
	}
	return 0
}

type regular struct{ basePoints }

// Charge: 2 за первые два дня, затем 1.5 за каждый день.
func (regular) Charge(daysRented int64) float64 {
	if daysRented <= 0 {
		return 0
	}
	if daysRented <= 2 {
		return 2
	}
	return 2 + float64(daysRented-2)*1.5
}

func (regular) Name() string { return RegularName }

func (r regular) String() string { return r.Name() }

type children struct{ basePoints }

// Charge: 1.5 за первые три дня, затем 1.5 за каждый день.
func (children) Charge(daysRented int64) float64 {
	if daysRented <= 0 {
		return 0
	}
	if daysRented <= 3 {
		return 1.5
	}
	return 1.5 + float64(daysRented-3)*1.5
}

func (children) Name() string { return ChildrenName }

func (c children) String() string { return c.Name() }

// newRelease follows the classic three-tier video store pricing:
// a flat 3 per day and a bonus point for rentals longer than one day.
type newRelease struct{}

const newReleaseDailyRate = 3.0

func (newRelease) Charge(daysRented int64) float64 {
	if daysRented <= 0 {
		return 0
	}
	return float64(daysRented) * newReleaseDailyRate
}

func (newRelease) FrequentRenterPoints(daysRented int64) int {
	switch {
	case daysRented <= 0:
		return 0
	case daysRented == 1:
		return 1
	default:
		return 2
	}
}

func (newRelease) Name() string { return NewReleaseName }

func (n newRelease) String() string { return n.Name() }
