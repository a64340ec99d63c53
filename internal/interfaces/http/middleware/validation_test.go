package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/mes/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type returnInput struct {
	IssueDetailID string          `json:"issue_detail_id" binding:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Condition     string          `json:"condition" binding:"required,oneof=GOOD DAMAGED EXPIRED"`
	Reason        string          `json:"reason" binding:"max=10"`
}

func newValidatedRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/returns", func(c *gin.Context) {
		var in returnInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(in.Quantity.String()))
	})
	return router
}

func postJSON(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodPost, "/returns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestValidation_FieldDetails(t *testing.T) {
	router := newValidatedRouter()

	w, resp := postJSON(router, `{"issue_detail_id":"not-a-uuid","quantity":"0","condition":"LOST","reason":"far too long a reason"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid UUID format", messages["issue_detail_id"])
	assert.Equal(t, "This field is required", messages["quantity"], "zero decimal counts as missing")
	assert.Equal(t, "Must be one of: GOOD DAMAGED EXPIRED", messages["condition"])
	assert.Equal(t, "Must be at most 10 characters", messages["reason"])
}

func TestValidation_DecimalAccepted(t *testing.T) {
	router := newValidatedRouter()

	w, resp := postJSON(router, `{"issue_detail_id":"9b2f6f0e-3c55-4a55-9d8e-1f0c8f1d2e3a","quantity":"12.5","condition":"GOOD"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12.5", resp.Data)
}

func TestValidation_MalformedJSON(t *testing.T) {
	router := newValidatedRouter()

	w, resp := postJSON(router, `{"quantity":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, []string{dto.ErrCodeInvalidJSON, dto.ErrCodeBadRequest}, resp.Error.Code)
}

func TestSetupValidator_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		SetupValidator()
		SetupValidator()
	})
}
