package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/congo-pay/onboarding/internal/screens"
)

// RegisterScreenRoutes wires the sign-in and registration screens. lock guards
// both submit endpoints; rateLimiter applies to sign-in only. Either may be nil.
func RegisterScreenRoutes(r fiber.Router, h *screens.Handler, lock, rateLimiter fiber.Handler) {
    group := r.Group("/screens")

    login := []fiber.Handler{}
    if rateLimiter != nil {
        login = append(login, rateLimiter)
    }
    register := []fiber.Handler{}
    if lock != nil {
        login = append(login, lock)
        register = append(register, lock)
    }

    group.Post("/login/submit", append(login, h.SubmitSignIn)...)
    group.Post("/login/link", h.OpenRegistration)
    group.Post("/register/submit", append(register, h.SubmitRegistration)...)
    group.Post("/register/link", h.OpenSignIn)
}
