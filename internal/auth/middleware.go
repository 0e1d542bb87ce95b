package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

/* ============================== JWT Claims ============================== */

// Claims represents the JWT payload we issue and expect.
type Claims struct {
	Sub  string `json:"sub"`  // user ID
	Role string `json:"role"` // "client" | "lawyer" | "admin"
	jwt.RegisteredClaims
}

/* ============================== JWT Helpers ============================= */

// IssueToken signs a short-lived JWT (default 7 days) for the given user and role.
func IssueToken(userID, role string) (string, error) {
	claims := &Claims{
		Sub:  userID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

/* ============================== Middleware ============================== */

// RequireAuth validates a Bearer JWT and injects userID and role into the context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			return fiber.ErrUnauthorized
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		c.Locals("userID", claims.Sub)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// MustUserID reads the authenticated user ID from context or panics (programming error).
func MustUserID(c *fiber.Ctx) string {
	if v := c.Locals("userID"); v != nil {
		return v.(string)
	}
	panic(errors.New("user not in context"))
}

// MustRole reads the authenticated user role from context or panics (programming error).
func MustRole(c *fiber.Ctx) string {
	if v := c.Locals("role"); v != nil {
		return v.(string)
	}
	panic(errors.New("role not in context"))
}

// RequireRole ensures the authenticated user has the expected role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if MustRole(c) != role {
			return fiber.ErrForbidden
		}
		return c.Next()
	}
}

/* =========================== Error Formatting =========================== */

// httpCodeToString converts an HTTP status code to a short, stable string.
func httpCodeToString(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// storeError maps a domain error from the store to its HTTP shape.
// Returns false when err is not a store sentinel.
func storeError(err error) (status int, code, msg string, ok bool) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "Not found", true
	case errors.Is(err, store.ErrEmailTaken):
		return fiber.StatusConflict, "EMAIL_TAKEN", "Email already registered", true
	case errors.Is(err, store.ErrPhoneTaken):
		return fiber.StatusConflict, "PHONE_TAKEN", "Phone already registered", true
	case errors.Is(err, store.ErrBadCredential):
		return fiber.StatusUnauthorized, "BAD_CREDENTIAL", "Incorrect password", true
	case errors.Is(err, store.ErrBanned):
		return fiber.StatusForbidden, "ACCOUNT_BANNED", "This account is banned", true
	case errors.Is(err, store.ErrPendingVerification):
		return fiber.StatusForbidden, "PENDING_VERIFICATION", "Account is awaiting verification", true
	case errors.Is(err, store.ErrNotApprovedLawyer):
		return fiber.StatusConflict, "LAWYER_NOT_APPROVED", "Lawyer is not approved", true
	case errors.Is(err, store.ErrProtectedUser):
		return fiber.StatusForbidden, "PROTECTED_USER", "The super admin cannot be modified", true
	case errors.Is(err, store.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "Action not permitted", true
	case errors.Is(err, store.ErrNotParticipant):
		return fiber.StatusForbidden, "NOT_PARTICIPANT", "Only chat participants may send messages", true
	case errors.Is(err, store.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed", true
	case errors.Is(err, store.ErrInvalidRating):
		return fiber.StatusBadRequest, "INVALID_RATING", "Rating must be between 1 and 5", true
	case errors.Is(err, store.ErrInvalidReportType):
		return fiber.StatusBadRequest, "INVALID_REPORT_TYPE", "Unknown report type", true
	}
	return 0, "", "", false
}

// ErrorHandler is the global Fiber error handler: store sentinels and
// fiber errors both come out as one consistent JSON shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if status, code, msg, ok := storeError(err); ok {
		return c.Status(status).JSON(models.ErrorResponse{
			Code:    code,
			Error:   true,
			Message: msg,
		})
	}

	// Defaults
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	// Fiber errors carry status codes
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		if strings.TrimSpace(e.Message) != "" {
			msg = e.Message
		} else {
			switch code {
			case fiber.StatusBadRequest:
				msg = fiber.ErrBadRequest.Message
			case fiber.StatusUnauthorized:
				msg = fiber.ErrUnauthorized.Message
			case fiber.StatusForbidden:
				msg = fiber.ErrForbidden.Message
			case fiber.StatusNotFound:
				msg = fiber.ErrNotFound.Message
			case fiber.StatusConflict:
				msg = fiber.ErrConflict.Message
			}
		}
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Code:    httpCodeToString(code),
		Error:   true,
		Message: msg,
	})
}
