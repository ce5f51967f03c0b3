package dto

// UpdateStatusRequest is the body of a project status update
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
