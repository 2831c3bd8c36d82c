package entity

// PushRequest holds the five collected inputs for one push-copy generation,
// plus the Telegram handle of the requester. It is consumed once.
type PushRequest struct {
	Product   string `json:"product"`
	Country   string `json:"country"`
	Language  string `json:"language"`
	AppLink   string `json:"app_link"`
	Message   string `json:"message"`
	Requester string `json:"requester"`
}
