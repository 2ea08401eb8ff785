package router

import (
	"github.com/gin-gonic/gin"

	authhandler "devport_backend/internal/feature/auth/transport/handler"
	contacthandler "devport_backend/internal/feature/contact/transport/handler"
	profilehandler "devport_backend/internal/feature/profile/transport/handler"
	projecthandler "devport_backend/internal/feature/projects/transport/handler"
	jwtmw "devport_backend/internal/platform/jwt"
	"devport_backend/internal/platform/http/handler"
	"devport_backend/internal/platform/http/middleware"
	"devport_backend/internal/shared/ratelimiter"
)

// Config はルーター生成に必要な依存関係です。
type Config struct {
	BasePath       string
	AllowedOrigins []string
	Production     bool

	Auth     *authhandler.AuthHandler
	Profile  *profilehandler.ProfileHandler
	Projects *projecthandler.ProjectHandler
	Contact  *contacthandler.ContactHandler

	// Verifier はセッショントークンを検証します（*jwtmw.Issuer）。
	Verifier jwtmw.TokenVerifier
	// Limiter は公開の認証系・問い合わせルートに適用されます。
	Limiter *ratelimiter.KeyedLimiter
	// Ping は /readyz で使用します。
	Ping handler.PingFunc
}

func NewRouter(cfg Config) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.SecureHeaders(cfg.Production))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(cfg.Ping))

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api"
	}
	api := r.Group(basePath)

	// 認証不要（総当たり対策のためレート制限）
	public := api.Group("/", cfg.Limiter.Middleware())
	{
		public.POST("/user/signup", cfg.Auth.Signup)
		public.POST("/user/login", cfg.Auth.Login)
		public.POST("/user/forgot-password", cfg.Auth.ForgotPassword)
		public.POST("/user/reset-password", cfg.Auth.ResetPassword)
		public.POST("/user/verify-email", cfg.Auth.VerifyEmail)
		public.POST("/contact", cfg.Contact.Send)
	}

	// 公開ポートフォリオ
	api.GET("/user/profile/:id", cfg.Profile.GetPublic)
	api.GET("/user/projects/:id", cfg.Projects.ListByUser)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → Authorization: Bearer <セッショントークン> が必要になる
	private := api.Group("/", jwtmw.AuthRequired(cfg.Verifier))
	{
		private.PUT("/user/password", cfg.Auth.ChangePassword)
		private.GET("/user/profile", cfg.Profile.GetMine)
		private.PUT("/user/profile", cfg.Profile.UpdateMine)
		private.GET("/user/projects", cfg.Projects.ListMine)
		private.POST("/user/projects", cfg.Projects.Create)
		private.PUT("/user/projects/:id", cfg.Projects.Update)
		private.DELETE("/user/projects/:id", cfg.Projects.Delete)
	}

	return r
}
