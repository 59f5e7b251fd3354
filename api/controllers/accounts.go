package controllers

import (
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"net/http"
	"strings"
	"time"
)

// SessionCookie describes the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

type AccountController struct {
	accounts *services.AccountService
	cookie   SessionCookie
}

func NewAccountController(accounts *services.AccountService, cookie SessionCookie) *AccountController {
	return &AccountController{accounts: accounts, cookie: cookie}
}

func (c *AccountController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	group := engine.Group("/polls")

	group.POST("/register/", c.register)
	group.POST("/login/", c.login)
	group.POST("/logout/", auth, c.logout)
}

// @Summary Create an account
// @Description Registers the user and signs them in
// @Tags accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param account body models.RegisterRequest true "Username and password twice"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /polls/register/ [post]
func (c *AccountController) register(g *gin.Context) {
	var req models.RegisterRequest
	if err := g.ShouldBind(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}
	session, err := c.accounts.Register(g.Request.Context(), req.Username, req.Password1, req.Password2)
	if err != nil {
		respondError(g, "AUTH: failed to register", err)
		return
	}
	c.setCookie(g, session.Token, session.ExpiresAt)
	g.JSON(http.StatusCreated, models.TransformSession(session, ""))
}

// @Summary Log in
// @Description Repeated failures lock the username out for a while
// @Tags accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body models.LoginRequest true "Username and password"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthenticatedResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /polls/login/ [post]
func (c *AccountController) login(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBind(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request format"})
		return
	}
	session, err := c.accounts.Login(g.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(g, "AUTH: failed to log in", err)
		return
	}
	c.setCookie(g, session.Token, session.ExpiresAt)
	g.JSON(http.StatusOK, models.TransformSession(session, safeNext(req.Next)))
}

// @Security SessionToken
// @Summary Log out
// @Description Revokes the current session token
// @Tags accounts
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.UnauthenticatedResponse
// @Router /polls/logout/ [post]
func (c *AccountController) logout(g *gin.Context) {
	if err := c.accounts.Logout(g.Request.Context(), transport.CurrentIdentity(g)); err != nil {
		respondError(g, "AUTH: failed to log out", err)
		return
	}
	g.SetSameSite(http.SameSiteLaxMode)
	g.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
	g.JSON(http.StatusOK, models.MessageResponse{Message: "logged out"})
}

func (c *AccountController) setCookie(g *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	g.SetSameSite(http.SameSiteLaxMode)
	g.SetCookie(c.cookie.Name, token, maxAge, "/", "", c.cookie.Secure, true)
}

// safeNext only allows redirects back into the polls app.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/polls/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/polls/"
}
