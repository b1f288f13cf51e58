package routes

import (
	"github.com/cluns13/loadedteaclub-backend/configs"
	"github.com/cluns13/loadedteaclub-backend/controllers"
	"github.com/cluns13/loadedteaclub-backend/middlewares"
	"github.com/cluns13/loadedteaclub-backend/repository"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, feed *ws.FeedHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	rewardRepo := repository.NewRewardRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	businessSvc := services.NewBusinessService(businessRepo, menuRepo, reviewRepo)
	notifier := services.NewEmailNotifier(db, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	claimSvc := services.NewClaimService(
		claimRepo, businessRepo, userRepo, notifier,
		services.LogSMSSender{}, services.LogMailSender{},
		cfg.CodeTTL, cfg.ClaimReapply,
	)
	claimSvc.Events = feed
	menuSvc := services.NewMenuService(menuRepo, businessSvc)
	reviewSvc := services.NewReviewService(reviewRepo)
	promoSvc := services.NewPromotionService(promoRepo, businessSvc)
	reportSvc := services.NewReportService(reportRepo)
	rewardSvc := services.NewRewardService(rewardRepo, businessSvc, cfg.RewardsTarget)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	businessCtrl := controllers.NewBusinessController(businessSvc)
	claimCtrl := controllers.NewClaimController(claimSvc)
	adminCtrl := controllers.NewAdminController(claimSvc, reportSvc, userRepo)
	menuCtrl := controllers.NewMenuController(menuSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)
	promoCtrl := controllers.NewPromotionController(promoSvc)
	reportCtrl := controllers.NewReportController(reportSvc)
	rewardCtrl := controllers.NewRewardController(rewardSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Public directory
	r.GET("/businesses", businessCtrl.List)
	r.GET("/businesses/:id", businessCtrl.Detail)
	r.GET("/businesses/:id/menu", menuCtrl.List)
	r.GET("/businesses/:id/reviews", reviewCtrl.List)
	r.GET("/businesses/:id/promotions", promoCtrl.ListByBusiness)
	r.GET("/promotions", promoCtrl.ListActive)

	// Claims (claimant, must be logged in)
	claims := r.Group("/claims", auth)
	{
		claims.POST("", claimCtrl.Create)
		claims.GET("/mine", claimCtrl.Mine)
		claims.POST("/menu/validate", claimCtrl.ValidateMenu)
		claims.GET("/:id", claimCtrl.Detail)
		claims.GET("/:id/verification", claimCtrl.VerificationStatus)
		claims.POST("/:id/verification/:method", claimCtrl.Initiate)
		claims.POST("/:id/verification/:method/code", claimCtrl.SubmitCode)
		claims.POST("/:id/documents", claimCtrl.UploadDocument)
		claims.PUT("/:id/menu", claimCtrl.ResubmitMenu)
		claims.POST("/:id/payment", claimCtrl.RecordPayment)
	}

	// Reviews / reports (logged in)
	u := r.Group("", auth)
	{
		u.POST("/businesses/:id/reviews", reviewCtrl.Create)
		u.POST("/businesses/:id/reports", reportCtrl.Create)
		u.GET("/rewards", rewardCtrl.Cards)
		u.POST("/rewards/redeem", rewardCtrl.Redeem)
	}

	// Partner (owner/admin)
	partner := r.Group("/partner", middlewares.AuthMiddleware(cfg.JWTSecret, "owner", "admin"))
	{
		partner.GET("/businesses", businessCtrl.Owned)
		partner.PATCH("/businesses/:id", businessCtrl.Update)
		partner.POST("/menu", menuCtrl.Create)
		partner.PATCH("/menu/:id", menuCtrl.Update)
		partner.DELETE("/menu/:id", menuCtrl.Delete)
		partner.POST("/promotions", promoCtrl.Create)
		partner.DELETE("/promotions/:id", promoCtrl.Delete)
		partner.POST("/rewards/stamp", rewardCtrl.Stamp)
	}

	// Admin (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/claims", adminCtrl.Claims) // ?status=pending
		admin.GET("/claims/:id", adminCtrl.ClaimDetail)
		admin.PATCH("/claims/:id/documents", adminCtrl.ReviewDocuments)
		admin.PATCH("/claims/:id/menu", adminCtrl.ReviewMenu)
		admin.PATCH("/claims/:id/approve", adminCtrl.ApproveClaim)
		admin.PATCH("/claims/:id/reject", adminCtrl.RejectClaim)

		admin.POST("/businesses", businessCtrl.Create)
		admin.GET("/reports", adminCtrl.Reports)
		admin.PATCH("/reports/:id/resolve", adminCtrl.ResolveReport)
	}

	// Admin live feed
	r.GET("/ws/admin/claims", middlewares.WSAuthMiddleware(cfg.JWTSecret), feed.HandleWebSocket)
}
