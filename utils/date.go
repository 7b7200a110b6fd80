package utils

import (
	"time"
)

func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}

func ValidateDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
