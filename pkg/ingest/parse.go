package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

const (
	// Excel serial dates count days from 1899-12-30 (1900 leap year bug included).
	excelEpochYear = 1899
	excelMinSerial = 10000 // 1927-05-18, smaller numbers are read as years
	excelMaxSerial = 2958465 // 9999-12-31
	secondsPerDay  = 24 * 60 * 60
)

var errEmptyValue = errors.New("empty value")

// parseDate accepts Excel serial day numbers and anything dateparse
// understands. Values without a zone are read as UTC.
func parseDate(s string, opts ...dateparse.ParserOption) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyValue
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= excelMinSerial && v <= excelMaxSerial {
		return fromExcelSerial(v), nil
	}

	t, err := dateparse.ParseIn(s, time.UTC, opts...)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unparseable date %q", s)
	}
	return t, nil
}

func fromExcelSerial(v float64) time.Time {
	days := math.Floor(v)
	secs := math.Round((v - days) * secondsPerDay)
	epoch := time.Date(excelEpochYear, time.December, 30, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
}

// parseNumber reads a number written with either dot or comma decimals and
// optional thousands separators. An empty cell returns errEmptyValue.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, errEmptyValue
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 != 3 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("invalid number %q", s)
	}
	return v, nil
}
