package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/saleflow/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTenantRouter() *gin.Engine {
	router := gin.New()
	router.Use(TenantMiddleware())
	router.GET("/api/v1/orders", func(c *gin.Context) {
		tenantID, ok := GetTenantID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tenant_id":  tenantID.String(),
			"ctx_tenant": logger.GetTenantID(c.Request.Context()),
		})
	})
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestTenantMiddleware_HeaderExtraction(t *testing.T) {
	tenantID := uuid.New().String()
	tests := []struct {
		name           string
		tenantID       string
		expectedStatus int
	}{
		{
			name:           "valid tenant ID in header",
			tenantID:       tenantID,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing tenant ID",
			tenantID:       "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid tenant ID format",
			tenantID:       "invalid-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "nil tenant ID",
			tenantID:       uuid.Nil.String(),
			expectedStatus: http.StatusBadRequest,
		},
	}

	router := newTenantRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if tt.tenantID != "" {
				req.Header.Set(TenantHeaderKey, tt.tenantID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.tenantID, body["tenant_id"])
				assert.Equal(t, tt.tenantID, body["ctx_tenant"])
				return
			}
			assert.Equal(t, false, body["success"])
			errInfo, ok := body["error"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, "ERR_INVALID_TENANT", errInfo["code"])
		})
	}
}

func TestTenantMiddleware_SkipPaths(t *testing.T) {
	router := newTenantRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
