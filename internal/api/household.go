package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homeboardapp/backend/internal/apperrors"
	"github.com/homeboardapp/backend/internal/middleware"
	"github.com/homeboardapp/backend/internal/models"
	"github.com/homeboardapp/backend/internal/service"
)

type HouseholdHandler struct {
	householdService *service.HouseholdService
	contextService   *service.ContextService
}

func NewHouseholdHandler(householdService *service.HouseholdService, contextService *service.ContextService) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
		contextService:   contextService,
	}
}

func (h *HouseholdHandler) RegisterRoutes(router *gin.RouterGroup) {
	households := router.Group("/households")
	{
		households.GET("", h.ListHouseholds)
		households.POST("", h.CreateHousehold)
		households.GET("/:id", h.GetHousehold)
		households.POST("/:id/switch", h.SwitchHousehold)
		households.POST("/:id/members", h.AddMember)
	}
}

// ListHouseholds returns the households the authenticated user belongs to,
// oldest first, and marks the active one.
func (h *HouseholdHandler) ListHouseholds(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	households, err := h.householdService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	var activeID string
	if active := middleware.ActiveHousehold(c); active != nil {
		activeID = active.ID.String()
	}
	c.JSON(http.StatusOK, gin.H{
		"households":          households,
		"active_household_id": activeID,
	})
}

// CreateHousehold makes a household with the creator as admin. The new
// household becomes active when the user had none.
func (h *HouseholdHandler) CreateHousehold(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	household, err := h.householdService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	if middleware.ActiveHousehold(c) == nil {
		if err := h.contextService.SwitchActiveHousehold(c.Request.Context(), middleware.SessionID(c), household); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, household)
}

// GetHousehold returns a household with its members. Only members may look.
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	household, err := h.householdService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	isMember, err := h.householdService.IsMember(c.Request.Context(), household.ID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isMember {
		respondError(c, apperrors.ErrForbidden)
		return
	}

	members, err := h.householdService.ListMembers(c.Request.Context(), household.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"household": household,
		"members":   memberResponses(members),
	})
}

// SwitchHousehold updates the session's active-household pointer. Membership
// is verified here before the pointer moves.
func (h *HouseholdHandler) SwitchHousehold(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	household, err := h.householdService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	isMember, err := h.householdService.IsMember(c.Request.Context(), household.ID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isMember {
		respondError(c, apperrors.ErrForbidden)
		return
	}

	if err := h.contextService.SwitchActiveHousehold(c.Request.Context(), middleware.SessionID(c), household); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_household_id": household.ID})
}

// AddMember adds a user to the household by email.
func (h *HouseholdHandler) AddMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.householdService.AddMember(c.Request.Context(), id, userID, req.Email, req.Admin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

func memberResponses(members []models.HouseholdMember) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp := MemberResponse{
			UserID:     m.UserID,
			MemberType: string(m.MemberType),
			IsAdmin:    m.IsAdmin(),
			JoinedAt:   m.JoinedAt.Format(time.RFC3339),
		}
		if m.User != nil {
			resp.Email = m.User.Email
			resp.DisplayName = m.User.DisplayName
		}
		out = append(out, resp)
	}
	return out
}
