package api

import (
	"net/http"

	"membership-api/internal/services"
	"membership-api/internal/session"

	"github.com/gin-gonic/gin"
)

// VerifyEmailRequest represents the email-entry submission.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyEmailResponse tells the client where the login flow goes next.
type VerifyEmailResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PurchaseFound bool   `json:"purchase_found"`
	NextStep      string `json:"next_step"`
	Source        string `json:"source,omitempty"`
}

// VerifyEmail runs the purchase check for an email and routes the flow to
// password creation or password entry.
// POST /api/auth/verify-email
func VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, VerifyEmailResponse{
			Success: false,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	verifier := services.NewVerifier()
	verification, err := verifier.VerifyPurchase(c.Request.Context(), req.Email)
	if err != nil {
		// Outage is distinguishable from "no purchase": the client can tell
		// the member to retry instead of claiming the email was not found.
		c.JSON(http.StatusServiceUnavailable, VerifyEmailResponse{
			Success:  false,
			Message:  "Purchase verification is temporarily unavailable, please try again",
			NextStep: string(session.StepEmail),
		})
		return
	}

	if !verification.Found {
		c.JSON(http.StatusOK, VerifyEmailResponse{
			Success:       false,
			Message:       "Email not found in our purchase records. Use the same email as your Hotmart purchase.",
			PurchaseFound: false,
			NextStep:      string(session.StepEmail),
		})
		return
	}

	userService := services.NewUserService()
	user, err := userService.EnsureVerifiedUser(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, VerifyEmailResponse{
			Success: false,
			Message: "Failed to prepare user account",
		})
		return
	}

	c.JSON(http.StatusOK, VerifyEmailResponse{
		Success:       true,
		Message:       "Purchase verified",
		PurchaseFound: true,
		NextStep:      string(session.NextAfterVerification(true, user)),
		Source:        verification.Source,
	})
}
