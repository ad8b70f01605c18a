// Package auth serves the login screen. Credentials are not verified: any
// filled pair opens the dashboard.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-dashboard/internal/handler"
	"github.com/jwalitptl/hospital-dashboard/internal/middleware"
	"github.com/jwalitptl/hospital-dashboard/internal/session"
)

const HomePath = "/dashboard"

type LoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginView is the body of the login page. The password is never echoed.
type LoginView struct {
	Email string
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Root)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

func (h *Handler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) LoginPage(c *gin.Context) {
	handler.Render(c, http.StatusOK, "login.html", handler.NewPage(c, "Connexion", "", LoginView{}))
}

func (h *Handler) Login(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		sess.Notify(session.LevelError, "Veuillez remplir tous les champs")
		view := LoginView{Email: c.PostForm("email")}
		handler.Render(c, http.StatusUnprocessableEntity, "login.html", handler.NewPage(c, "Connexion", "", view))
		return
	}

	sess.SetEmail(req.Email)
	sess.Notify(session.LevelSuccess, "Connexion réussie!")
	middleware.RequestLogger(c).Info().Msg("User signed in")
	handler.Redirect(c, HomePath)
}

func (h *Handler) Logout(c *gin.Context) {
	middleware.CurrentSession(c).Reset()
	handler.Redirect(c, "/login")
}
