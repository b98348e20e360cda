package domain

import (
	"encoding/json"
	"strconv"
)

// SearchStatus tags the outcome of a search in the search log
type SearchStatus string

const (
	StatusExactMatch         SearchStatus = "exact_match"
	StatusSimilarityFallback SearchStatus = "similarity_fallback"
)

// Response status values
const (
	ResponseFound    = "found"
	ResponseNotFound = "not_found"
)

// NotFoundMessage is shown to users when only recommendations are available
const NotFoundMessage = "We don’t have that item, but you might like:"

// SearchLogRecord is one line of the append-only search log
type SearchLogRecord struct {
	Timestamp string       `json:"timestamp"`
	Query     string       `json:"query"`
	Status    SearchStatus `json:"status"`
	Results   []string     `json:"results"`
}

// Rating is an average rating serialized with exactly one decimal digit
type Rating float64

// MarshalJSON renders the rating as a one-decimal number, e.g. 4 -> 4.0
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r), 'f', 1, 64)), nil
}

// RoundRating rounds a rating to one decimal place, half to even on the
// exact binary value.
func RoundRating(v float64) Rating {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return Rating(v)
	}
	return Rating(rounded)
}

// FoundResponse is returned when the query exactly matches a catalog item
type FoundResponse struct {
	Status      string  `json:"status"`
	ItemName    string  `json:"item_name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Restaurant  string  `json:"restaurant"`
	Rating      Rating  `json:"rating"`
}

// NotFoundResponse is returned when only similar items are available
type NotFoundResponse struct {
	Status          string           `json:"status"`
	Message         string           `json:"message"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SearchResponse holds exactly one of the two response shapes
type SearchResponse struct {
	Found    *FoundResponse
	NotFound *NotFoundResponse
}

// IsFound reports whether the response carries an exact match
func (r *SearchResponse) IsFound() bool {
	return r.Found != nil
}

// MarshalJSON encodes whichever response shape is populated
func (r SearchResponse) MarshalJSON() ([]byte, error) {
	if r.Found != nil {
		return json.Marshal(r.Found)
	}
	return json.Marshal(r.NotFound)
}
