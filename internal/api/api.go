package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homeboardapp/backend/internal/middleware"
	"github.com/homeboardapp/backend/internal/service"
	"github.com/homeboardapp/backend/internal/session"
)

// SetupAPI wires services, middleware and handlers onto the router. Every
// route except register/login runs behind auth, the session cookie and the
// per-request household resolution.
func SetupAPI(router *gin.Engine, db *gorm.DB, sessions session.Store, jwtSecret string) {
	authService := service.NewAuthService(db, jwtSecret)
	householdService := service.NewHouseholdService(db)
	contextService := service.NewContextService(db, sessions, householdService)
	categoryService := service.NewCategoryService(db)
	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db)

	authHandler := NewAuthHandler(authService, contextService)
	householdHandler := NewHouseholdHandler(householdService, contextService)
	dashboardHandler := NewDashboardHandler(householdService, categoryService, ingredientService, recipeService)
	categoryHandler := NewCategoryHandler(categoryService)
	ingredientHandler := NewIngredientHandler(ingredientService)
	recipeHandler := NewRecipeHandler(recipeService)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session())
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	protected.Use(middleware.CurrentHousehold(contextService))
	{
		householdHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
		categoryHandler.RegisterRoutes(protected)
		ingredientHandler.RegisterRoutes(protected)
		recipeHandler.RegisterRoutes(protected)
	}
}
