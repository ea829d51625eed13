package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recruitment-buddy/internal/domain"
	"recruitment-buddy/internal/service"
)

const appName = "RecruitmentBuddy"

// UserHandler cubre landing, registro, login, logout y reseteo de contraseña.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	jwtServ  *service.JWTService
	session  *Session
	states   service.QuestionnaireStateStore
}

func NewUserHandler(
	logger *zap.Logger,
	userServ *service.UserService,
	jwtServ *service.JWTService,
	session *Session,
	states service.QuestionnaireStateStore,
) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
		jwtServ:  jwtServ,
		session:  session,
		states:   states,
	}
}

// Landing maneja GET /.
func (h *UserHandler) Landing(c *gin.Context) {
	resp := gin.H{
		"app":           appName,
		"authenticated": false,
		"flash":         popFlash(c),
	}
	if claims, ok := GetAuthClaims(c); ok {
		resp["authenticated"] = true
		resp["user"] = gin.H{"id": claims.UserID, "email": claims.Email, "first_name": claims.FirstName}
	}
	c.JSON(http.StatusOK, resp)
}

// LoginPage maneja GET /login.
func (h *UserHandler) LoginPage(c *gin.Context) {
	if _, ok := GetAuthClaims(c); ok {
		c.Redirect(http.StatusFound, "/questionnaire")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "login", "flash": popFlash(c)})
}

// Login maneja POST /login (form o JSON).
func (h *UserHandler) Login(c *gin.Context) {
	if _, ok := GetAuthClaims(c); ok {
		c.Redirect(http.StatusSeeOther, "/questionnaire")
		return
	}

	var req struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		setFlash(c, "Invalid email address.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	user, err := h.userServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			setFlash(c, "Invalid email address.")
		case errors.Is(err, service.ErrIncorrectPassword):
			setFlash(c, "Incorrect password.")
		case errors.Is(err, service.ErrRateLimited):
			setFlash(c, "Too many login attempts. Please try again later.")
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if !h.startSession(c, user) {
		return
	}
	setFlash(c, "Successfully logged in!")
	c.Redirect(http.StatusSeeOther, "/questionnaire")
}

// SignupPage maneja GET /signup.
func (h *UserHandler) SignupPage(c *gin.Context) {
	if _, ok := GetAuthClaims(c); ok {
		c.Redirect(http.StatusFound, "/questionnaire")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "signup", "flash": popFlash(c)})
}

// Signup maneja POST /signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var input service.SignupInput
	if err := c.ShouldBind(&input); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
	}

	user, err := h.userServ.Signup(c.Request.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			setFlash(c, verr.Message)
			c.Redirect(http.StatusSeeOther, "/signup")
			return
		}
		h.logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	if !h.startSession(c, user) {
		return
	}
	setFlash(c, "Account created successfully! Welcome to "+appName+"!")
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout maneja GET /logout: revoca el refresh, borra cookies y descarta el
// acumulador del cuestionario.
func (h *UserHandler) Logout(c *gin.Context) {
	if refresh, err := c.Cookie(refreshCookieName); err == nil && refresh != "" && h.jwtServ != nil {
		if err := h.jwtServ.RevokeRefresh(refresh); err != nil {
			h.logger.Debug("revoke refresh on logout", zap.Error(err))
		}
	}
	if claims, ok := GetAuthClaims(c); ok && h.states != nil {
		if err := h.states.Clear(c.Request.Context(), claims.UserID); err != nil {
			h.logger.Warn("clear questionnaire state failed", zap.Error(err), zap.String("user_id", claims.UserID))
		}
	}
	h.session.clearCookies(c)
	setFlash(c, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

// Refresh maneja POST /auth/refresh. Acepta la cookie o refresh_token en JSON.
func (h *UserHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if token == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing refresh token"})
		return
	}
	if h.jwtServ == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
		return
	}

	pair, err := h.jwtServ.RefreshPair(token)
	if err != nil {
		h.session.clearCookies(c)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	h.session.setCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"tokens": pair})
}

// ForgotPasswordPage maneja GET /forgot-password.
func (h *UserHandler) ForgotPasswordPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "forgot_password", "flash": popFlash(c)})
}

// ForgotPassword maneja POST /forgot-password.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `form:"email" json:"email" binding:"required,email"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "A valid email is required."})
		return
	}

	err := h.userServ.RequestPasswordReset(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "reset_code_sent"})
	case errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "A valid email is required."})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"status": "error", "message": "Too many requests. Please try again later."})
	case errors.Is(err, service.ErrEmailSendFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Email delivery unavailable."})
	default:
		h.logger.Error("request password reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}

// ResetPassword maneja POST /reset-password.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email           string `form:"email" json:"email"`
		Code            string `form:"code" json:"code"`
		Password        string `form:"password" json:"password"`
		ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request."})
		return
	}

	err := h.userServ.ResetPassword(c.Request.Context(), req.Email, req.Code, req.Password, req.ConfirmPassword)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": verr.Message})
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrResetNotRequested),
			errors.Is(err, service.ErrResetExpired),
			errors.Is(err, service.ErrResetInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		default:
			h.logger.Error("reset password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		}
		return
	}

	setFlash(c, "Your password has been reset. Please log in.")
	c.JSON(http.StatusOK, gin.H{"status": "password_reset", "redirect": "/login"})
}

func (h *UserHandler) startSession(c *gin.Context, user domain.User) bool {
	if h.jwtServ == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return false
	}
	pair, err := h.jwtServ.GeneratePair(user)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err), zap.String("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return false
	}
	// Cada sesion nueva arranca el cuestionario desde cero.
	if h.states != nil {
		if err := h.states.Clear(c.Request.Context(), user.ID); err != nil {
			h.logger.Error("clear questionnaire state failed", zap.Error(err), zap.String("user_id", user.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
			return false
		}
	}
	h.session.setCookies(c, pair)
	return true
}
