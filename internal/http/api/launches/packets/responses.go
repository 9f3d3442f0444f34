package packets

// RESPONSES FOR /api/launches/*

// Description fields in these packets are sanitized HTML fragments; names are
// plain text as delivered upstream.
type StatusResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type MissionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LaunchResponse mirrors model.Launch; image and mission are omitted when absent.
type LaunchResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	WindowStart string           `json:"window_start"`
	WindowEnd   string           `json:"window_end"`
	Status      StatusResponse   `json:"status"`
	Image       string           `json:"image,omitempty"`
	Mission     *MissionResponse `json:"mission,omitempty"`
}

type LaunchSummaryResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	WindowStart string          `json:"window_start,omitempty"`
	Status      *StatusResponse `json:"status,omitempty"`
}

type SearchResponse struct {
	Query   string                  `json:"query"`
	Count   int                     `json:"count"`
	Results []LaunchSummaryResponse `json:"results"`
}
