package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homeboardapp/backend/internal/middleware"
	"github.com/homeboardapp/backend/internal/service"
)

type DashboardHandler struct {
	householdService  *service.HouseholdService
	categoryService   *service.CategoryService
	ingredientService *service.IngredientService
	recipeService     *service.RecipeService
}

func NewDashboardHandler(householdService *service.HouseholdService, categoryService *service.CategoryService, ingredientService *service.IngredientService, recipeService *service.RecipeService) *DashboardHandler {
	return &DashboardHandler{
		householdService:  householdService,
		categoryService:   categoryService,
		ingredientService: ingredientService,
		recipeService:     recipeService,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
}

// GetDashboard summarizes the active household. Users without a household get
// a prompt to add one instead of a summary.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	active := middleware.ActiveHousehold(c)
	if active == nil {
		c.JSON(http.StatusOK, gin.H{
			"household": nil,
			"message":   "add a household to get started",
		})
		return
	}

	members, err := h.householdService.ListMembers(c.Request.Context(), active.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := h.categoryService.List(c.Request.Context(), active)
	if err != nil {
		respondError(c, err)
		return
	}
	ingredients, err := h.ingredientService.List(c.Request.Context(), active)
	if err != nil {
		respondError(c, err)
		return
	}
	recipes, err := h.recipeService.List(c.Request.Context(), active)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"household":   active,
		"members":     memberResponses(members),
		"categories":  len(categories),
		"ingredients": len(ingredients),
		"recipes":     len(recipes),
	})
}
