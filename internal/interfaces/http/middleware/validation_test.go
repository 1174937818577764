package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/saleflow/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type automationInput struct {
		OrderIDs []string `json:"order_ids" binding:"required,min=1"`
		Method   string   `json:"method" binding:"required,oneof=delivered all"`
	}

	SetupValidator()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req automationInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("returns field details", func(t *testing.T) {
		w := post(`{"order_ids": [], "method": "fixed"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "order_ids", resp.Error.Details[0].Field)
		assert.Equal(t, "Must contain at least 1 items", resp.Error.Details[0].Message)
		assert.Equal(t, "method", resp.Error.Details[1].Field)
		assert.Equal(t, "Must be one of: delivered all", resp.Error.Details[1].Message)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		w := post(`{"order_ids":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("valid input", func(t *testing.T) {
		w := post(`{"order_ids": ["a"], "method": "all"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestFormatValidationErrors_PlainError(t *testing.T) {
	resp := FormatValidationErrors(errors.New("boom"), "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "boom", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}

func TestSetupValidator_DecimalComparisons(t *testing.T) {
	type lineInput struct {
		Quantity decimal.Decimal `json:"quantity" binding:"gt=0"`
		Amount   decimal.Decimal `json:"amount" binding:"gte=0"`
	}
	SetupValidator()

	tests := []struct {
		name    string
		input   lineInput
		details []dto.ValidationDetail
	}{
		{"valid", lineInput{Quantity: decimal.RequireFromString("0.5")}, nil},
		{"zero quantity", lineInput{}, []dto.ValidationDetail{{Field: "quantity", Message: "Must be greater than 0"}}},
		{
			"negative amount",
			lineInput{Quantity: decimal.NewFromInt(1), Amount: decimal.NewFromInt(-5)},
			[]dto.ValidationDetail{{Field: "amount", Message: "Must be at least 0"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.input)
			if tt.details == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			resp := FormatValidationErrors(err, "")
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.details, resp.Error.Details)
		})
	}
}
