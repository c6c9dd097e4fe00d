package handler

import "github.com/cliplink/affiliate-system/internal/core/domain"

type generateLinkRequest struct {
	VideoID        string `json:"video_id"        validate:"required"`
	DestinationURL string `json:"destination_url" validate:"required,url"`
	TargetUserID   string `json:"target_user_id"  validate:"required"`
}

type creditEntriesRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required"`
	Amount       int    `json:"amount"         validate:"required,gt=0"`
}

type dashboardResponse struct {
	User  *domain.User            `json:"user"`
	Links []*domain.AffiliateLink `json:"links"`
}
