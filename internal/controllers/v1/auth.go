package v1

import (
	"net/http"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/httputil"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes for authentication.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)
}

// Credentials is the request body for registration and login.
type Credentials struct {
	Username string `json:"username" example:"morre"`
	Email    string `json:"email" example:"morre@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginResponse is the response returned on successful authentication.
type LoginResponse struct {
	Data  *SessionData `json:"data"`
	Error *string      `json:"error" example:"the password must be at least 8 characters"`
}

// SessionData contains the token and the user it belongs to.
type SessionData struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  models.User `json:"user"`
}

// Register creates a new user account.
//
//	@Summary		Register
//	@Description	Creates a new user and returns a session token
//	@Tags			Auth
//	@Produce		json
//	@Success		201			{object}	LoginResponse
//	@Failure		400			{object}	LoginResponse
//	@Failure		500			{object}	LoginResponse
//	@Param			credentials	body		Credentials	true	"Credentials"
//	@Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	hash, err := auth.HashPassword(credentials.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	user := models.User{
		Username: credentials.Username,
		Email:    credentials.Email,
		Password: hash,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	token, err := co.Tokens.Generate(user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{Data: &SessionData{Token: token, User: user}})
}

// Login authenticates a user by username and password.
//
//	@Summary		Login
//	@Description	Verifies credentials and returns a session token
//	@Tags			Auth
//	@Produce		json
//	@Success		200			{object}	LoginResponse
//	@Failure		400			{object}	LoginResponse
//	@Failure		401			{object}	LoginResponse
//	@Failure		500			{object}	LoginResponse
//	@Param			credentials	body		Credentials	true	"Credentials"
//	@Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	user, err := models.FindUserByUsername(models.DB, credentials.Username)
	if err != nil {
		s := auth.ErrInvalidCredentials.Error()
		c.JSON(status(auth.ErrInvalidCredentials), LoginResponse{Error: &s})
		return
	}

	err = auth.CheckPassword(user.Password, credentials.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	token, err := co.Tokens.Generate(user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Data: &SessionData{Token: token, User: user}})
}
