package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	session *Session,
	userH *UserHandler,
	questionnaireH *QuestionnaireHandler,
	catalogH *CatalogHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), metricsMiddleware(), session.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", healthH.Healthz)

	r.GET("/", userH.Landing)
	r.GET("/login", userH.LoginPage)
	r.POST("/login", userH.Login)
	r.GET("/signup", userH.SignupPage)
	r.POST("/signup", userH.Signup)
	r.GET("/logout", userH.Logout)
	r.POST("/auth/refresh", userH.Refresh)
	r.GET("/forgot-password", userH.ForgotPasswordPage)
	r.POST("/forgot-password", userH.ForgotPassword)
	r.POST("/reset-password", userH.ResetPassword)

	pages := r.Group("", RequireLogin())
	pages.GET("/questionnaire", questionnaireH.ShowStep)
	pages.GET("/recommendations", questionnaireH.Recommendations)

	actions := r.Group("", RequireLoginJSON())
	actions.POST("/questionnaire/next", questionnaireH.Next)
	actions.POST("/submit_questionnaire", questionnaireH.Submit)

	api := r.Group("/api", RequireLogin())
	api.GET("/majors", catalogH.Majors)
	api.GET("/majors/:id/similar", catalogH.SimilarMajors)
	api.GET("/personality-types", catalogH.PersonalityTypes)
	api.GET("/responses/:id/matches", catalogH.ResponseMatches)

	return r
}
