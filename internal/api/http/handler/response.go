package handler

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  any    `json:"result"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	FullName     string `json:"fullName" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	IsVeterinary bool   `json:"isVeterinary"`
}

// OtpRequest is the query of GET /otp.
type OtpRequest struct {
	Email string `query:"email" validate:"required,email"`
}

// ValidateOtpRequest is the body of POST /otp/validate.
type ValidateOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

// LoginResponse is the result of a successful login.
type LoginResponse struct {
	Token      string       `json:"token"`
	Expiration string       `json:"expiration"`
	ID         string       `json:"id"`
	Roles      []string     `json:"roles"`
	User       UserResponse `json:"user"`
}

// UserResponse is the public profile of a user.
type UserResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	IsVeterinary bool   `json:"isVeterinary"`
}
