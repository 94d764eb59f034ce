package dto

// UpdateLogoURLRequest sets or clears the logo. A null or empty logoUrl removes it.
type UpdateLogoURLRequest struct {
	LogoURL *string `json:"logoUrl" binding:"omitempty,url"`
}

// Normalized returns nil for an empty URL.
func (r UpdateLogoURLRequest) Normalized() *string {
	if r.LogoURL == nil || *r.LogoURL == "" {
		return nil
	}
	return r.LogoURL
}
