package entities

import "time"

const day = 24 * time.Hour

// Date возвращает календарную дату (полночь UTC).
func Date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// CivilDate отбрасывает время суток и часовой пояс, сохраняя местную дату t.
// Нулевое время остается нулевым.
func CivilDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today возвращает текущую местную дату.
func Today() time.Time {
	return CivilDate(time.Now())
}

// DaysBetween возвращает число целых дней от from до to.
func DaysBetween(from, to time.Time) int64 {
	return int64(CivilDate(to).Sub(CivilDate(from)) / day)
}

// YearsBetween возвращает число полных лет от from до to.
func YearsBetween(from, to time.Time) int {
	from, to = CivilDate(from), CivilDate(to)

	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}
