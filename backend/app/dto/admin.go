package dto

type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type RoleRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

type Stats struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalPhotos    int64 `json:"totalPhotos"`
	PendingPhotos  int64 `json:"pendingPhotos"`
	ApprovedPhotos int64 `json:"approvedPhotos"`
	TotalComments  int64 `json:"totalComments"`
}
