// Package stock counts physical copies per movie title and notifies
// low-stock listeners on removal.
//
// Stock is not safe for concurrent use; callers serialize access.
package stock

import "movierental/internal/rental/domain/errs"

// AllTitles передается в InStock для получения суммы по всем названиям.
const AllTitles = ""

// ErrNotInStock возвращается при списании копии, которой нет в наличии.
var ErrNotInStock = errs.Rule("movie is not in stock")

// Movie - все, что складу нужно знать о фильме.
type Movie interface {
	Title() string
}

// LowStockListener получает уведомление, когда остаток не превышает порог.
type LowStockListener interface {
	Threshold() int
	StockLow(movie Movie, inStock int)
}

// Stock - учет копий по названиям.
type Stock struct {
	counts    map[string]int
	listeners []LowStockListener
}

// New создает пустой склад.
func New() *Stock {
	return &Stock{counts: make(map[string]int)}
}

// AddToStock добавляет копию и возвращает новый остаток по названию.
func (s *Stock) AddToStock(movie Movie) int {
	title := movie.Title()
	s.counts[title]++
	return s.counts[title]
}

// RemoveFromStock списывает копию и уведомляет каждого слушателя,
// чей порог не ниже нового остатка.
func (s *Stock) RemoveFromStock(movie Movie) (int, error) {
	title := movie.Title()
	n := s.counts[title]
	if n == 0 {
		return 0, ErrNotInStock
	}

	n--
	s.counts[title] = n

	for _, l := range s.listeners {
		if n <= l.Threshold() {
			l.StockLow(movie, n)
		}
	}
	return n, nil
}

// InStock возвращает остаток по названию, для AllTitles - сумму по всем.
func (s *Stock) InStock(title string) int {
	if title != AllTitles {
		return s.counts[title]
	}

	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// AddLowStockListener регистрирует слушателя; повторная регистрация игнорируется.
func (s *Stock) AddLowStockListener(l LowStockListener) {
	if l == nil || s.indexOf(l) >= 0 {
		return
	}
	s.listeners = append(s.listeners, l)
}

// RemoveLowStockListener снимает слушателя с учета.
func (s *Stock) RemoveLowStockListener(l LowStockListener) {
	i := s.indexOf(l)
	if i < 0 {
		return
	}
	s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
}

func (s *Stock) indexOf(l LowStockListener) int {
	for i, existing := range s.listeners {
		if existing == l {
			return i
		}
	}
	return -1
}
