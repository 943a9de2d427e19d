package discography

import "discography/internal/types"

// NormalizeReleaseDate приводит дату релиза к виду YYYY-MM-DD.
// Неизвестная точность возвращает дату без изменений.
func NormalizeReleaseDate(date, precision string) string {
	switch precision {
	case types.PrecisionYear:
		return date + "-01-01"
	case types.PrecisionMonth:
		return date + "-01"
	default:
		return date
	}
}
