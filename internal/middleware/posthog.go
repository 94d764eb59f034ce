package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// anonymousDistinctID is reported for public routes such as the mobile receipt upload.
const anonymousDistinctID = "anonymous"

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware tracks every successful API call as a PostHog event named after its route.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// "/api/v1/expenses/:id" -> "api_v1_expenses_:id"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(distinctID(c), eventName, props)
	}
}

// PosthogEvent sends a custom event from a handler.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path
	posthogClient.Enqueue(distinctID(c), eventName, properties)
}

func distinctID(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return userID
	}
	return anonymousDistinctID
}
