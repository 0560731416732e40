package auth

type TokenRequest struct {
	OperatorKey string `json:"operator_key"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
