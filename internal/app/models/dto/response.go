package dto

// ListResponse is the envelope every paginated list endpoint returns.
type ListResponse struct {
	Items       interface{} `json:"items"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Total       int64       `json:"total"`
}

// MessageResponse represents a simple acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
