package middleware

import (
	"fmt"
	"strings"

	apperrors "github.com/course-microservice/internal/pkg/errors"
	"github.com/course-microservice/internal/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// LocalCoupleID - ключ couple id в locals запроса
	LocalCoupleID = "coupleID"
	// LocalUserID - ключ user id в locals запроса
	LocalUserID = "userID"
)

// Auth - middleware аутентификации по bearer-токену. Извлекает claims
// coupleId и userId и кладёт их в locals; дальше движок доверяет этим
// значениям и не перепроверяет учётные данные.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		coupleID, _ := claims["coupleId"].(string)
		if coupleID == "" {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		// числовые claims приходят из JSON как float64
		userIDClaim, ok := claims["userId"].(float64)
		if !ok {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		c.Locals(LocalCoupleID, coupleID)
		c.Locals(LocalUserID, int64(userIDClaim))

		return c.Next()
	}
}

// CoupleID возвращает couple id аутентифицированного запроса
func CoupleID(c *fiber.Ctx) string {
	coupleID, _ := c.Locals(LocalCoupleID).(string)
	return coupleID
}

// UserID возвращает user id аутентифицированного запроса
func UserID(c *fiber.Ctx) int64 {
	userID, _ := c.Locals(LocalUserID).(int64)
	return userID
}
