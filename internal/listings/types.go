package listings

// Spec is one entry of a listing's open attribute map. The schema of
// the map is defined server-side; the client passes it through.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListingSnapshot is the read-only shape of a marketplace listing as
// returned by the remote API. Prices are minor units of Currency.
type ListingSnapshot struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	PriceMinor int64           `json:"priceMinor"`
	Currency   string          `json:"currency"`
	Location   string          `json:"location"`
	CategoryID string          `json:"categoryId"`
	ImageKeys  []string        `json:"imageKeys"`
	Specs      map[string]Spec `json:"specs"`
}

// Category is a marketplace category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SearchFilter describes a listing search. Zero values mean "no
// constraint" and are omitted from the request variables.
type SearchFilter struct {
	Query         string
	CategoryID    string
	MinPriceMinor int64
	MaxPriceMinor int64
	Sort          string
	Limit         int
	Offset        int
}

// variables builds the GraphQL variables for the filter.
func (f SearchFilter) variables() map[string]interface{} {
	vars := map[string]interface{}{}
	if f.Query != "" {
		vars["query"] = f.Query
	}
	if f.CategoryID != "" {
		vars["categoryId"] = f.CategoryID
	}
	if f.MinPriceMinor > 0 {
		vars["minPrice"] = f.MinPriceMinor
	}
	if f.MaxPriceMinor > 0 {
		vars["maxPrice"] = f.MaxPriceMinor
	}
	if f.Sort != "" {
		vars["sort"] = f.Sort
	}
	if f.Limit > 0 {
		vars["limit"] = f.Limit
	}
	if f.Offset > 0 {
		vars["offset"] = f.Offset
	}
	return vars
}
