package model

// AppInput is the create/update payload. Pointers distinguish "absent" from
// "set to empty" so updates only touch the supplied fields.
type AppInput struct {
	Domain        *string `json:"domain,omitempty"`
	TargetURL     *string `json:"targetUrl,omitempty"`
	Name          *string `json:"name,omitempty"`
	DeveloperName *string `json:"developerName,omitempty"`
	Description   *string `json:"description,omitempty"`
	Language      *string `json:"language,omitempty"`
	ThemeColor    *string `json:"themeColor,omitempty"`
	Icon          *string `json:"icon,omitempty"`
	Countries     *string `json:"countries,omitempty"`
	FBPixelID     *string `json:"fbPixelId,omitempty"`
	PostbackURL   *string `json:"postbackUrl,omitempty"`
	Status        *string `json:"status,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type IconResponse struct {
	IconURL string `json:"iconUrl"`
}
