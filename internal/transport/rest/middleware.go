package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	expertIDCtx         = "expert_id"
)

// Токены выпускает внешний сервис авторизации; здесь они только проверяются
// по общему секрету. Эндпоинтов логина и обновления у этого сервиса нет.
type tokenClaims struct {
	jwt.RegisteredClaims
	ExpertID int64 `json:"expert_id"`
}

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		method := c.Request.Method
		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()

		logger := h.logger.With(
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", ip),
			zap.String("user-agent", userAgent),
		)

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				h.logger.Error("request error", zap.Error(err))
			}
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Origin, Accept, User-Agent, X-Requested-With, Cache-Control, DNT, Referer")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 часа

		origin := c.Request.Header.Get("Origin")
		if origin != "" && c.Request.Header.Get("Authorization") != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			errorResponse(c, http.StatusUnauthorized, "пустой заголовок авторизации")
			c.Abort()
			return
		}

		headerParts := strings.Split(header, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			errorResponse(c, http.StatusUnauthorized, "неверный формат заголовка авторизации")
			c.Abort()
			return
		}

		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(headerParts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("неожиданный метод подписи токена")
			}
			return []byte(h.config.JWT.SigningKey), nil
		})
		if err != nil || !token.Valid {
			errorResponse(c, http.StatusUnauthorized, "недействительный токен")
			c.Abort()
			return
		}

		if claims.ExpertID == 0 {
			errorResponse(c, http.StatusUnauthorized, "в токене отсутствует ID эксперта")
			c.Abort()
			return
		}

		c.Set(expertIDCtx, claims.ExpertID)

		c.Next()
	}
}

func getExpertID(c *gin.Context) (int64, error) {
	expertID, exists := c.Get(expertIDCtx)
	if !exists {
		return 0, errors.New("пользователь не авторизован")
	}

	id, ok := expertID.(int64)
	if !ok {
		return 0, errors.New("некорректный ID эксперта")
	}

	return id, nil
}

// authorizedExpert сверяет ID из пути с ID из токена: эксперт управляет
// только собственными настройками.
func (h *Handler) authorizedExpert(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return 0, false
	}

	tokenExpertID, err := getExpertID(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, false
	}

	if tokenExpertID != id {
		forbiddenResponse(c, "нет доступа к данным этого эксперта")
		return 0, false
	}

	return id, true
}
