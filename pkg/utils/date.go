package utils

import "time"

// ParseDate interpreta uma data no formato YYYY-MM-DD. Vazio vira zero value.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseTimestamp interpreta um instante RFC3339; vazio devolve o fallback.
func ParseTimestamp(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}

	return time.Parse(time.RFC3339, raw)
}
