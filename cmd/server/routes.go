package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"mint-market.backend/internal/interfaces/http/handlers"
	"mint-market.backend/internal/interfaces/http/middleware"
	"mint-market.backend/pkg/jwt"
)

type routeDeps struct {
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	walletHandler *handlers.WalletHandler
	nftHandler    *handlers.NFTHandler
	jwtService    *jwt.JWTService
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAPIV1Routes(r, d)
	return r
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	authRequired := middleware.AuthMiddleware(d.jwtService)

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/2fa/verify", d.authHandler.Verify2FA)
		}

		// Profile routes (protected)
		users := v1.Group("/users", authRequired)
		{
			users.GET("/me", d.userHandler.GetMe)
			users.PATCH("/me", d.userHandler.UpdateMe)
			users.POST("/me/avatar", d.userHandler.UploadAvatar)
		}

		// Public wallet lookups
		v1.GET("/users/wallet/:address", d.userHandler.GetByWallet)
		v1.GET("/users/wallet/:address/nfts", d.nftHandler.ListByWallet)

		// Wallet routes (protected)
		wallets := v1.Group("/wallets", authRequired)
		{
			wallets.POST("", d.walletHandler.LinkWallet)
			wallets.GET("", d.walletHandler.ListWallets)
			wallets.PUT("/:address/primary", d.walletHandler.SetPrimaryWallet)
			wallets.DELETE("/:address", d.walletHandler.UnlinkWallet)
		}

		// Public marketplace and mint reads
		v1.GET("/marketplace", d.nftHandler.Marketplace)

		nfts := v1.Group("/nfts")
		{
			nfts.GET("/:mint", d.nftHandler.GetNFT)
			nfts.GET("/:mint/history", d.nftHandler.PurchaseHistory)
			nfts.GET("/:mint/verify", d.nftHandler.VerifyOwnership)
			nfts.POST("/:mint/purchase", d.nftHandler.Purchase)

			// Draft and listing management (protected)
			nfts.POST("/drafts", authRequired, d.nftHandler.CreateDraft)
			nfts.GET("/drafts", authRequired, d.nftHandler.ListDrafts)
			nfts.GET("/drafts/:id", authRequired, d.nftHandler.GetDraft)
			nfts.DELETE("/drafts/:id", authRequired, d.nftHandler.DeleteDraft)
			nfts.POST("/drafts/:id/finalize", authRequired, d.nftHandler.FinalizeMint)
			nfts.POST("/list", authRequired, d.nftHandler.ListNFT)
			nfts.POST("/:mint/delist", authRequired, d.nftHandler.Delist)
			nfts.GET("/owned", authRequired, d.nftHandler.ListOwned)
		}
	}
}
