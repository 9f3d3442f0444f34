package model

// Status is the launch status as reported by the launch library.
type Status struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Mission describes the payload mission of a launch.
type Mission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Launch is a single launch record. Image and Mission are optional.
type Launch struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	WindowStart string   `json:"window_start"`
	WindowEnd   string   `json:"window_end"`
	Status      Status   `json:"status"`
	Image       string   `json:"image"`
	Mission     *Mission `json:"mission"`
}

// LaunchSummary is the list representation returned by search.
type LaunchSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	WindowStart string  `json:"window_start"`
	Status      *Status `json:"status"`
}

// SearchResult is one page of search results.
type SearchResult struct {
	Count   int             `json:"count"`
	Results []LaunchSummary `json:"results"`
}
