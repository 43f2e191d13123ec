package matching

import (
	"regexp"
	"strconv"
	"time"
)

// MinPlausibleYear is the earliest year treated as a release year.
const MinPlausibleYear = 1870

var trailingYearPattern = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)\s*$`)

// SplitYear peels a trailing "(YYYY)" off title when the year lies between
// MinPlausibleYear and five years after now. Otherwise the title is returned
// untouched with a nil year.
func SplitYear(title string, now time.Time) (string, *int) {
	m := trailingYearPattern.FindStringSubmatch(title)
	if m == nil {
		return title, nil
	}
	year, err := strconv.Atoi(m[2])
	if err != nil || year < MinPlausibleYear || year > now.Year()+5 {
		return title, nil
	}
	return m[1], &year
}
