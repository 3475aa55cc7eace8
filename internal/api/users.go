package api

import (
	"net/http"

	"membership-api/internal/models"
	"membership-api/internal/response"
	"membership-api/internal/services"
	"membership-api/internal/session"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest sets the password for a verified buyer.
type CreateUserRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name"`
}

// AuthResponse carries a session token plus the user record.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`

	// Checks echoes the per-rule password feedback on rejection.
	Checks *session.PasswordChecks `json:"checks,omitempty"`
}

// CreateUser creates credentials for a verified buyer.
// POST /api/users/create
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AuthResponse{
			Success: false,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	checks := session.CheckPassword(req.Password, req.ConfirmPassword)
	if !checks.OK() {
		c.JSON(http.StatusBadRequest, AuthResponse{
			Success: false,
			Message: "Password does not meet the requirements",
			Checks:  &checks,
		})
		return
	}

	userService := services.NewUserService()
	user, err := userService.GetUser(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to load user"})
		return
	}

	// A record normally exists by now (verify-email creates it). If the
	// client skipped that step, run the purchase check here.
	if user == nil {
		verification, err := services.NewVerifier().VerifyPurchase(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, AuthResponse{
				Success: false,
				Message: "Purchase verification is temporarily unavailable, please try again",
			})
			return
		}
		if !verification.Found {
			c.JSON(http.StatusForbidden, AuthResponse{
				Success: false,
				Message: "No purchase found for this email",
			})
			return
		}
		if user, err = userService.EnsureVerifiedUser(req.Email); err != nil {
			c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create user"})
			return
		}
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, AuthResponse{
			Success: false,
			Message: "Account access has been revoked",
		})
		return
	}

	if user.HasPassword {
		c.JSON(http.StatusConflict, AuthResponse{
			Success: false,
			Message: "Account already has a password, use login",
		})
		return
	}

	user, err = userService.CreatePassword(req.Email, req.Password, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to save credentials"})
		return
	}

	token, err := services.NewTokenService().Issue(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User:    user,
	})
}

// LoginRequest represents a password-entry submission.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser validates credentials and issues a session token.
// POST /api/users/login
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AuthResponse{
			Success: false,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	userService := services.NewUserService()
	valid, err := userService.ValidateLogin(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Login failed, try again"})
		return
	}
	if !valid {
		// Generic message, no hint whether the email exists
		c.JSON(http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	user, err := userService.GetUser(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to load user"})
		return
	}
	if user == nil {
		// Allowlisted test email without a stored record
		if user, err = userService.EnsureVerifiedUser(req.Email); err != nil {
			c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to load user"})
			return
		}
	}

	token, err := services.NewTokenService().Issue(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// PlanGenerated marks the authenticated member's study plan as generated,
// ending first-access gating for this email permanently.
// POST /api/users/plan-generated
func PlanGenerated(c *gin.Context) {
	email := c.GetString("email")

	userService := services.NewUserService()
	if err := userService.MarkPlanGenerated(email); err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to record plan generation")
		return
	}

	user, err := userService.GetUser(email)
	if err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	response.SuccessJSON(c, user)
}

// DeactivateUserRequest represents an admin deactivation request.
type DeactivateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// DeactivateUser revokes a member's access.
// POST /api/users/deactivate
func DeactivateUser(c *gin.Context) {
	var req DeactivateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := services.NewUserService().Deactivate(req.Email, ""); err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to deactivate user")
		return
	}
	response.SuccessJSON(c, gin.H{"email": req.Email, "deactivated": true})
}
