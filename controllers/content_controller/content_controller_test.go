package content_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cc := NewContentController()
	r := gin.New()
	r.GET("/services", cc.Services)
	r.GET("/testimonials", cc.Testimonials)
	r.GET("/stats", cc.Stats)
	r.GET("/process", cc.Process)

	for path, key := range map[string]string{
		"/services":     "services",
		"/testimonials": "testimonials",
		"/stats":        "stats",
		"/process":      "steps",
	} {
		t.Run(key, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)

			var body map[string][]map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body[key])
		})
	}
}
