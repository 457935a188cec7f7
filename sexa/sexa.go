// Package sexa converts colon-separated sexagesimal coordinate strings
// to decimal degrees.
package sexa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

func split(s string) (neg bool, a, b int, c float64, err error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		err = errors.New("expected three colon-separated components")
		return
	}

	if a, err = strconv.Atoi(parts[0]); err != nil {
		return
	}

	if b, err = strconv.Atoi(parts[1]); err != nil {
		return
	}

	c, err = strconv.ParseFloat(parts[2], 64)
	return
}

// RAToDeg converts a sexagesimal right ascension (hours:minutes:seconds)
// to decimal degrees.
func RAToDeg(s string) (float64, error) {
	neg, h, m, sec, err := split(s)
	if err != nil {
		return 0, fmt.Errorf("parse RA %q: %w", s, err)
	}

	if neg {
		return 0, fmt.Errorf("parse RA %q: right ascension cannot be negative", s)
	}

	return unit.NewRA(h, m, sec).Deg(), nil
}

// DecToDeg converts a sexagesimal declination (degrees:minutes:seconds,
// optionally signed) to decimal degrees.
func DecToDeg(s string) (float64, error) {
	neg, d, m, sec, err := split(s)
	if err != nil {
		return 0, fmt.Errorf("parse DEC %q: %w", s, err)
	}

	sign := byte('+')
	if neg {
		sign = '-'
	}

	deg := unit.NewAngle(sign, d, m, sec).Deg()
	if deg < -90 || deg > 90 {
		return 0, fmt.Errorf("parse DEC %q: declination out of range", s)
	}

	return deg, nil
}
