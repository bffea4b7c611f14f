package router

import (
	"net/http"

	"github.com/bqmanh/marketplace-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Liveness endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Server is running",
		})
	})

	authHandler := handler.NewAuthHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	bidHandler := handler.NewBidHandler(deps)

	guard := RequireAuth(deps.Logger, deps.Auth.CookieName, deps.Auth.Secret)
	owner := RequireOwnership()

	// Session routes
	r.POST("/jwt", authHandler.IssueToken)
	r.GET("/logout", authHandler.Logout)

	// Job routes
	r.GET("/jobs", jobHandler.ListJobs)
	r.GET("/filtered-jobs", jobHandler.ListFilteredJobs)
	r.GET("/total-jobs", jobHandler.CountJobs)
	r.POST("/jobs", jobHandler.CreateJob)
	r.GET("/jobs/:id", jobHandler.GetJob)
	r.DELETE("/jobs/:id", jobHandler.DeleteJob)
	r.PUT("/update-job/:id", jobHandler.UpdateJob)
	r.GET("/my-jobs/:email", guard, owner, jobHandler.ListMyJobs)

	// Bid routes
	r.GET("/bids", bidHandler.ListBids)
	r.POST("/bids", bidHandler.CreateBid)
	r.PATCH("/bids/:id", bidHandler.UpdateBidStatus)
	r.GET("/my-bids/:email", guard, owner, bidHandler.ListMyBids)
	r.GET("/bid-requests/:email", guard, owner, bidHandler.ListBidRequests)

	return r
}
