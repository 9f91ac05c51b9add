// File: internal/common/routes.go
package common

// Browser-facing route paths. The route guards and the OAuth/verification
// redirect targets all agree on these, so they live here rather than in any
// single handler package.
const (
	PathHome       = "/"
	PathLogin      = "/login"
	PathRegister   = "/register"
	PathDashboard  = "/dashboard"
	PathCheckEmail = "/check-email"
	PathVerify     = "/verify"
	PathSuccess    = "/success"
	PathFailed     = "/failed"
)
