package handlers

import (
	"net/http"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/api/middleware"
	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/gin-gonic/gin"
)

// CookieOptions controls the HttpOnly cookie carrying the access token.
type CookieOptions struct {
	Name   string
	Secure bool
}

type AccountHandler struct {
	accounts services.AccountService
	resets   services.PasswordResetService
	cookie   CookieOptions
}

func NewAccountHandler(accounts services.AccountService, resets services.PasswordResetService, cookie CookieOptions) *AccountHandler {
	return &AccountHandler{accounts: accounts, resets: resets, cookie: cookie}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if !bind(c, "AccountHandler.Register", &in) {
		return
	}
	if _, err := h.accounts.Register(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Registration successful! Please login to continue.", "/account/login", nil)
}

func (h *AccountHandler) Authenticate(c *gin.Context) {
	var in services.LoginInput
	if !bind(c, "AccountHandler.Authenticate", &in) {
		return
	}
	res, err := h.accounts.Authenticate(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setCookie(c, res.Token.Token, res.Token.ExpiresAt)
	respond(c, http.StatusOK, "Login successful", res.Redirect, gin.H{
		"token":      res.Token.Token,
		"expires_at": res.Token.ExpiresAt,
		"user":       res.User,
	})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		writeError(c, err)
		return
	}
	h.clearCookie(c)
	respond(c, http.StatusOK, "You have been logged out.", "/account/login", nil)
}

func (h *AccountHandler) Profile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.accounts.Profile(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", view)
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.UpdateProfileInput
	if !bind(c, "AccountHandler.UpdateProfile", &in) {
		return
	}
	u, err := h.accounts.UpdateProfile(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully.", authz.LandingPath(actor.Type), u)
}

func (h *AccountHandler) UpdateProfilePicture(c *gin.Context) {
	const op = "AccountHandler.UpdateProfilePicture"

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		writeError(c, utils.InvalidField(op, "image", "The image field is required."))
		return
	}
	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	u, err := h.accounts.UpdateProfilePicture(c.Request.Context(), actor, services.ImageUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Reader:   file,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile picture updated successfully", "", gin.H{"image": u.Image, "image_url": u.ImageURL})
}

func (h *AccountHandler) UpdatePassword(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.UpdatePasswordInput
	if !bind(c, "AccountHandler.UpdatePassword", &in) {
		return
	}
	if err := h.accounts.UpdatePassword(c.Request.Context(), actor, in); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Password updated successfully.", "", nil)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.accounts.DeleteAccount(c.Request.Context(), actor, middleware.ClaimsFrom(c)); err != nil {
		writeError(c, err)
		return
	}
	h.clearCookie(c)
	respond(c, http.StatusOK, "Account deleted successfully", "/", nil)
}

func (h *AccountHandler) GenerateResetCode(c *gin.Context) {
	var in services.GenerateResetInput
	if !bind(c, "AccountHandler.GenerateResetCode", &in) {
		return
	}
	ticket, err := h.resets.GenerateResetCode(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Reset code generated", "", ticket)
}

func (h *AccountHandler) VerifyCode(c *gin.Context) {
	var in services.VerifyCodeInput
	if !bind(c, "AccountHandler.VerifyCode", &in) {
		return
	}
	if err := h.resets.VerifyCode(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Code verified successfully", "", nil)
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var in services.ResetPasswordInput
	if !bind(c, "AccountHandler.ResetPassword", &in) {
		return
	}
	if err := h.resets.ResetPassword(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Password reset successfully", "/account/login", nil)
}

func (h *AccountHandler) setCookie(c *gin.Context, token string, exp time.Time) {
	if h.cookie.Name == "" {
		return
	}
	maxAge := int(time.Until(exp).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AccountHandler) clearCookie(c *gin.Context) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
