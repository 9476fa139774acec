package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/tastebook-backend/internal/platform/envutil"
)

// CORS builds the cors handler from ALLOWED_ORIGINS (comma separated).
// Empty means same-origin only in prod and localhost dev origins otherwise.
func CORS() gin.HandlerFunc {
	raw := envutil.Str("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	origins := []string{}
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
