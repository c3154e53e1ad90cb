package user

// SignupRequest - тело запроса регистрации.
type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=1,max=25"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=4,max=15"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// TokenPair - пара токенов, выдаваемая при регистрации, входе и обновлении.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// LoginResponse - ответ на вход: пара токенов плюс данные для сессии.
type LoginResponse struct {
	TokenPair
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type RequestEmail struct {
	Email string `json:"email" validate:"required,email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
