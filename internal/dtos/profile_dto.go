package dtos

import "github.com/justsurfingit/jobs-tracker/internal/models"

type ProfileUpdateRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileResponse flattens the typed metadata into the cv_*/cl_* keys the
// dashboard reads. Missing documents are null.
type ProfileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Provider  string  `json:"provider"`
	AvatarURL string  `json:"avatar_url"`
	CVURL     *string `json:"cv_url"`
	CVName    *string `json:"cv_name"`
	CLURL     *string `json:"cl_url"`
	CLName    *string `json:"cl_name"`
}

func NewProfileResponse(u *models.User) ProfileResponse {
	resp := ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Provider:  u.Provider,
		AvatarURL: u.Metadata.AvatarURL,
	}
	if cv := u.Metadata.CV; cv != nil {
		resp.CVURL, resp.CVName = &cv.URL, &cv.Name
	}
	if cl := u.Metadata.CoverLetter; cl != nil {
		resp.CLURL, resp.CLName = &cl.URL, &cl.Name
	}
	return resp
}

type DocumentResponse struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
	Name string `json:"name"`
}
