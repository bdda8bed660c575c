package devserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/estately/domain"
	"github.com/you/estately/internal/infrastructure/auth"
)

// AuthHandlers serves the passwordless phone/OTP endpoints.
type AuthHandlers struct {
	otpSvc *OTPService
	issuer *auth.TokenIssuer
	store  *MemStore
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(otpSvc *OTPService, issuer *auth.TokenIssuer, store *MemStore) *AuthHandlers {
	return &AuthHandlers{otpSvc: otpSvc, issuer: issuer, store: store}
}

// StartAuthRequest carries the contact number opening an auth attempt.
type StartAuthRequest struct {
	ContactNo string `json:"contactNo" binding:"required,len=10,numeric"`
}

// VerifyOTPRequest carries an OTP submission.
type VerifyOTPRequest struct {
	ContactNo string `json:"contactNo" binding:"required,len=10,numeric"`
	OTP       string `json:"otp" binding:"required"`
}

// SignupRequest carries the registration details for a verified contact.
type SignupRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	ContactNo string `json:"contactNo" binding:"required,len=10,numeric"`
}

// StartAuth classifies the contact number and sends an OTP. The reply is the
// bare classification string the client switches on.
func (h *AuthHandlers) StartAuth(c *gin.Context) {
	var req StartAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpSvc.Generate(c.Request.Context(), req.ContactNo); err != nil {
		if errors.Is(err, errOTPThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		log.Printf("otp generate failed for %s: %v", req.ContactNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	if _, err := h.store.FindUser(req.ContactNo); err != nil {
		c.JSON(http.StatusOK, string(domain.ClassificationSignup))
		return
	}
	c.JSON(http.StatusOK, string(domain.ClassificationLogin))
}

// VerifyOTP checks the submitted code and tells the client how to proceed.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpSvc.Verify(c.Request.Context(), req.ContactNo, req.OTP); err != nil {
		switch {
		case errors.Is(err, errOTPMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum OTP attempts exceeded"})
		case errors.Is(err, errOTPNotFound), errors.Is(err, errOTPInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP verification failed"})
		}
		return
	}

	if _, err := h.store.FindUser(req.ContactNo); err != nil {
		c.JSON(http.StatusOK, string(domain.ProceedToSignup))
		return
	}
	c.JSON(http.StatusOK, string(domain.ProceedToLogin))
}

// SignIn exchanges a verified contact number for a token grant.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req StartAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verified, err := h.otpSvc.IsVerified(c.Request.Context(), req.ContactNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification lookup failed"})
		return
	}
	if !verified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Contact number not verified"})
		return
	}

	user, err := h.store.FindUser(req.ContactNo)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No account for contact number"})
		return
	}
	if user.Locked {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is locked"})
		return
	}

	token, err := h.issuer.Issue(user.ContactNo, user.Role)
	if err != nil {
		log.Printf("token issue failed for %s: %v", user.ContactNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	h.otpSvc.ConsumeVerified(c.Request.Context(), req.ContactNo)
	c.JSON(http.StatusOK, domain.TokenGrant{JWT: token, Role: user.Role})
}

// SignUp registers a verified contact number and returns a token grant.
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verified, err := h.otpSvc.IsVerified(c.Request.Context(), req.ContactNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification lookup failed"})
		return
	}
	if !verified {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Contact number not verified"})
		return
	}

	user := &userRecord{
		Name:      req.Name,
		Email:     req.Email,
		ContactNo: req.ContactNo,
		Role:      domain.RoleUser,
	}
	if err := h.store.CreateUser(user); err != nil {
		if errors.Is(err, errEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	token, err := h.issuer.Issue(user.ContactNo, user.Role)
	if err != nil {
		log.Printf("token issue failed for %s: %v", user.ContactNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	h.otpSvc.ConsumeVerified(c.Request.Context(), req.ContactNo)
	c.JSON(http.StatusCreated, domain.TokenGrant{JWT: token, Role: user.Role})
}
