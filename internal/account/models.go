package account

import "bookqa/internal/bookstore"

// UserRequest is the credentials body shared by the account endpoints.
type UserRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required,password_strength"`
}

type CreatedUser struct {
	UserID   string           `json:"userID"`
	Username string           `json:"username"`
	Books    []bookstore.Book `json:"books"`
}

// TokenResult is the GenerateToken body. Token and Expires are empty when
// Status is "Failed".
type TokenResult struct {
	Token   string `json:"token"`
	Expires string `json:"expires"`
	Status  string `json:"status"`
	Result  string `json:"result"`
}

const (
	TokenSuccess = "Success"
	TokenFailed  = "Failed"
)

// Session is the Login body.
type Session struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Token       string `json:"token"`
	Expires     string `json:"expires"`
	CreatedDate string `json:"created_date"`
	IsActive    bool   `json:"isActive"`
}

type User struct {
	UserID   string           `json:"userId"`
	Username string           `json:"username"`
	Books    []bookstore.Book `json:"books"`
}
