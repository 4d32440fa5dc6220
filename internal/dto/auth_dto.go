package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type RegisterUserRequest struct {
	Email     string  `json:"email"      validate:"required,email"`
	Password  string  `json:"password"   validate:"required,min=6"`
	FirstName string  `json:"first_name" validate:"required,min=1,max=60"`
	LastName  string  `json:"last_name"  validate:"required,min=1,max=60"`
	Phone     *string `json:"phone"`
}

type RegisterCenterRequest struct {
	Email       string  `json:"email"    validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	Name        string  `json:"name"     validate:"required,min=2,max=120"`
	Description *string `json:"description"`
	Address     string  `json:"address"  validate:"required"`
	Phone       *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

// AccountResponse is the principal summary embedded in login responses.
// Type: "user" | "service_center".
type AccountResponse struct {
	ID    uint   `json:"id"`
	Type  string `json:"type"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	Account      AccountResponse `json:"account"`
}

// ─── Profile ─────────────────────────────────────────────────────────────────

type UpdateCenterProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

type ServiceCenterResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone"`
	LogoURL     *string `json:"logo_url"`
}

type ServiceCenterListResponse struct {
	Data  []ServiceCenterResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

type ServiceCenterFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}
