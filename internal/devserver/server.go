package devserver

import (
	"github.com/gin-gonic/gin"

	"github.com/you/estately/internal/infrastructure/auth"
)

// BuildRouter assembles the dev backend's route tree. The property catalogue
// is public; per-property actions, the user surface and the admin surface
// require a Bearer token, with Casbin gating roles on top.
func BuildRouter(ah *AuthHandlers, ph *PropertyHandlers, bh *BookingHandlers, sh *ShortlistHandlers, uh *UserHandlers, issuer *auth.TokenIssuer, az *Authorizer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	authGroup := r.Group("/auth")
	authGroup.POST("/start", ah.StartAuth)
	authGroup.POST("/verify-otp", ah.VerifyOTP)
	r.POST("/signin", ah.SignIn)
	r.POST("/signup", ah.SignUp)

	// Public catalogue. Registration order matters: gin resolves static
	// segments before the :id wildcard.
	r.GET("/property", ph.List)
	r.GET("/property/featured", ph.Featured)
	r.GET("/property/search", ph.Search)
	r.GET("/property/:id", ph.Get)

	authed := r.Group("/").Use(RequireAuth(issuer), Authorize(az))
	authed.POST("/property/:id/book", bh.Create)
	authed.GET("/property/:id/user-booking", bh.UserPropertyBooking)
	authed.POST("/property/:id/shortlist", sh.Add)
	authed.POST("/property/:id/toggle-shortlist", sh.Toggle)
	authed.GET("/users/profile", uh.GetProfile)
	authed.PUT("/users/profile", uh.UpdateProfile)
	authed.GET("/users/bookings", bh.UserBookings)
	authed.GET("/users/shortlist", sh.List)
	authed.DELETE("/users/shortlist/:id", sh.Remove)

	adm := r.Group("/admin").Use(RequireAuth(issuer), Authorize(az))
	adm.GET("/properties", ph.List)
	adm.POST("/properties", ph.Create)
	adm.PUT("/properties/:id", ph.Update)
	adm.DELETE("/properties/:id", ph.Delete)
	adm.GET("/bookings", bh.AllBookings)
	adm.PUT("/bookings/:id", bh.UpdateStatus)

	return r
}
