package domain

// Required columns of the tabular catalog source
const (
	ColumnName        = "menuItemName"
	ColumnDescription = "menuItemDescription"
	ColumnPrice       = "menuItemCurrentPrice"
	ColumnCategory    = "menuItemCategory"
	ColumnImageURL    = "menuItemImageUrl"
	ColumnRestaurant  = "restaurantName"
	ColumnRating      = "menuItemAverageRating"
)

// RequiredColumns lists every column the catalog source must provide
var RequiredColumns = []string{
	ColumnName,
	ColumnDescription,
	ColumnPrice,
	ColumnCategory,
	ColumnImageURL,
	ColumnRestaurant,
	ColumnRating,
}

// CatalogItem is one menu item loaded from the catalog source.
// Items are created once at startup and never mutated afterwards.
type CatalogItem struct {
	Name           string  `json:"menuItemName"`
	Description    string  `json:"menuItemDescription"`
	Price          float64 `json:"menuItemCurrentPrice"`
	Category       string  `json:"menuItemCategory"`
	ImageURL       string  `json:"menuItemImageUrl"`
	Restaurant     string  `json:"restaurantName"`
	Rating         float64 `json:"menuItemAverageRating"` // 0-5
	NormalizedName string  `json:"-"`
}

// Recommendation is a similarity-ranked catalog item returned on fallback
type Recommendation struct {
	Name       string  `json:"menuItemName"`
	Price      float64 `json:"menuItemCurrentPrice"`
	ImageURL   string  `json:"menuItemImageUrl"`
	Restaurant string  `json:"restaurantName"`
	Score      float64 `json:"-"`
}

// MatchResult is the outcome of matching a query against the catalog.
// Found results carry Item; otherwise Recommendations holds up to three items.
type MatchResult struct {
	Found           bool
	Item            *CatalogItem
	Recommendations []Recommendation
}

// ResultNames returns the item names carried by the result, in order
func (r *MatchResult) ResultNames() []string {
	if r.Found {
		return []string{r.Item.Name}
	}
	names := make([]string, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		names = append(names, rec.Name)
	}
	return names
}

// Status returns the search log status tag for the result
func (r *MatchResult) Status() SearchStatus {
	if r.Found {
		return StatusExactMatch
	}
	return StatusSimilarityFallback
}
