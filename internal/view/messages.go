package view

// User-facing strings.
const (
	pageTitle       = "Launch search"
	loadingText     = "Loading data..."
	noDataText      = "No data found for this launch."
	detailErrorText = "An error occurred while fetching launch information."
	searchErrorText = "An error occurred while searching for launches."
	searchLabel     = "Search for launches"
	searchButton    = "Search"
	backLinkText    = "Back to search"
	recentHeading   = "Recent searches"
)

func resultsHeading(query string) string {
	return `Search results for "` + query + `"`
}

func noResultsText(query string) string {
	return `No launches found for "` + query + `".`
}
