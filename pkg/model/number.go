package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// wholeNumber reads a JSON number or numeric string holding an integer.
// Anything else, fractions included, reads as zero so the field fails
// its range check instead of the body decode.
func wholeNumber(raw json.RawMessage) int {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" || s == "null" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

func (r *ReviewCreate) UnmarshalJSON(data []byte) error {
	type alias ReviewCreate
	aux := struct {
		*alias
		Rating json.RawMessage `json:"rating"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Rating = wholeNumber(aux.Rating)
	return nil
}

func (r *ReservationCreate) UnmarshalJSON(data []byte) error {
	type alias ReservationCreate
	aux := struct {
		*alias
		Duration json.RawMessage `json:"duration"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Duration = wholeNumber(aux.Duration)
	return nil
}
