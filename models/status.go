package models

type RootGetResponse struct {
	Message string `json:"message"`
}

type HealthGetResponse struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}
