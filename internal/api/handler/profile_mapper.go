package handler

import "github.com/storefront/identity-system/internal/core/ports"

func toProfileResponse(v *ports.ProfileView) profileResponse {
	return profileResponse{
		UserID:            v.UserID,
		Username:          v.Username,
		Email:             v.Email,
		FirstName:         v.FirstName,
		LastName:          v.LastName,
		EmailConfirmed:    v.EmailConfirmed,
		ImageURL:          v.ImageURL,
		ImageThumbnailURL: v.ImageThumbnailURL,
		StatusMessage:     v.StatusMessage,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func toProfileListResponse(views []ports.ProfileView) profileListResponse {
	items := make([]profileResponse, 0, len(views))
	for i := range views {
		items = append(items, toProfileResponse(&views[i]))
	}
	return profileListResponse{Items: items, Total: len(items)}
}
