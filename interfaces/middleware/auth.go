package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"social-publisher/domain/dto"
	"social-publisher/domain/model"
)

// Auth validates the Bearer token and stores the caller's user id in the
// request context under "user_id".
func Auth(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Access token required"))
			return
		}
		parts := strings.SplitN(authorization, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Access token required"))
			return
		}

		var claims model.UserClaims
		token, err := jwt.ParseWithClaims(
			parts[1],
			&claims,
			func(token *jwt.Token) (interface{}, error) {
				return []byte(secretKey), nil
			},
		)
		if err != nil || !token.Valid || claims.UserID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid or expired token"))
			return
		}

		ctx.Set("user_id", claims.UserID)
		ctx.Set("user_email", claims.Email)
		ctx.Next()
	}
}
