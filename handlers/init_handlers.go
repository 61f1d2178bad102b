package handlers

import (
	"log"
	"os"

	"app/database"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// HandleInitializeManager creates the first manager account if none exists.
// Guarded by INIT_TOKEN so the endpoint is useless once deployed without it.
// POST /api/v1/auth/init
func HandleInitializeManager(c *fiber.Ctx) error {
	initToken := os.Getenv("INIT_TOKEN")
	if initToken == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "INIT_TOKEN not configured"})
	}

	providedToken := c.Get("X-Init-Token")
	maskToken := func(t string) string {
		if len(t) <= 8 {
			return "****"
		}
		return t[:4] + "..." + t[len(t)-4:]
	}
	if providedToken != initToken {
		log.Printf("Init attempt with invalid token: %s", maskToken(providedToken))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid initialization token"})
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Init request body parse error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields (name, email, password)"})
	}

	db := database.GetDB()

	var managerCount int
	if err := db.QueryRow(c.Context(), "SELECT COUNT(*) FROM users WHERE role = 'manager'").Scan(&managerCount); err != nil {
		log.Printf("Init manager count query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	if managerCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "A manager account already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not process password"})
	}

	var createdUser models.User
	err = db.QueryRow(c.Context(), `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, 'manager')
        RETURNING id, name, email, role, is_active, created_at`,
		req.Name, req.Email, string(hashedPassword),
	).Scan(&createdUser.ID, &createdUser.Name, &createdUser.Email, &createdUser.Role,
		&createdUser.IsActive, &createdUser.CreatedAt)
	if err != nil {
		log.Printf("Error creating initial manager: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not create manager account"})
	}

	log.Printf("✅ [INIT] Created initial manager account %s", createdUser.Email)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": createdUser})
}
