package wallhaven

import "time"

// serviceName is the name of the wallhaven image service
const serviceName = "Wallhaven"

// Default values for wallhaven.cc image service
const (
	WallhavenAPISearchURL = "https://wallhaven.cc/api/v1/search" // WallhavenAPISearchURL is the URL used to search for images on wallhaven API
	DefaultSearchTimeout  = 10 * time.Second                     // DefaultSearchTimeout bounds a single search request
)

// Query parameter names and fixed values for a search request.
const (
	paramQuery   = "q"
	paramSorting = "sorting"
	paramOrder   = "order"
	paramPage    = "page"
	paramAtLeast = "atleast"

	sortingRelevance = "relevance"
	orderDesc        = "desc"
	firstPage        = "1"
)
