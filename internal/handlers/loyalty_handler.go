package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucLoyalty "github.com/BruksfildServices01/salon-scheduler/internal/usecase/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type LoyaltyHandler struct {
	engine *ucLoyalty.Engine
	audit  *audit.Dispatcher
}

func NewLoyaltyHandler(engine *ucLoyalty.Engine, audit *audit.Dispatcher) *LoyaltyHandler {
	return &LoyaltyHandler{engine: engine, audit: audit}
}

// ======================================================
// GET SUMMARY
// ======================================================

func (h *LoyaltyHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	phone, ok := validators.NormalizePhone(c.Query("client_phone"))
	if !ok {
		httperr.BadRequest(c, "invalid_client_phone", "Invalid client phone number.")
		return
	}

	summary, err := h.engine.GetSummary(c.Request.Context(), tenantID, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "account_not_found", "No loyalty account for that phone.")
			return
		}
		httperr.Internal(c, "failed_to_get_loyalty", "Could not load loyalty account.")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ======================================================
// FORCE-GRANT (admin override)
// ======================================================

type GrantRewardRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientName  string `json:"client_name"`
}

func (h *LoyaltyHandler) GrantReward(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req GrantRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	phone, ok := validators.NormalizePhone(req.ClientPhone)
	if !ok {
		httperr.BadRequest(c, "invalid_client_phone", "Invalid client phone number.")
		return
	}

	account, err := h.engine.GrantReward(c.Request.Context(), tenantID, phone, req.ClientName)
	if err != nil {
		httperr.Internal(c, "failed_to_grant_reward", "Could not grant reward.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "loyalty_reward_granted",
		Entity:   "reward_account",
		EntityID: &account.ID,
	})

	c.JSON(http.StatusOK, account)
}
