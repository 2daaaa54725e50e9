package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/accountowner/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	ID   string `param:"id" json:"-" validate:"required,guid"`
	Name string `json:"name" validate:"required,notblank,max=5"`
	Born string `json:"born" validate:"required,datetime=2006-01-02"`
}

func (p *samplePayload) Validate() error {
	return Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "name", Message: "is taken"}}
}

func newContext(method, body string, id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/samples/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/samples/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	out := map[string]string{}
	for _, fe := range httpErr.Errors {
		out[fe.Field] = fe.Error
	}
	return out
}

func TestBindAndValidate(t *testing.T) {
	const id = "6f1c2a58-5d43-4bd4-9d7a-7a0f3d3d4a10"

	t.Run("valid payload binds path and body", func(t *testing.T) {
		p := &samplePayload{}
		c := newContext(http.MethodPut, `{"name":"Ann","born":"1990-01-01"}`, id)

		require.NoError(t, BindAndValidate(c, p))
		assert.Equal(t, id, p.ID)
		assert.Equal(t, "Ann", p.Name)
	})

	t.Run("field errors use json and param names", func(t *testing.T) {
		c := newContext(http.MethodPut, `{"name":"Annabel","born":"01/01/1990"}`, "nope")

		got := fieldErrors(t, BindAndValidate(c, &samplePayload{}))

		assert.Equal(t, "must be a valid UUID", got["id"])
		assert.Equal(t, "must not exceed 5 characters", got["name"])
		assert.Equal(t, "must be a date in the format YYYY-MM-DD", got["born"])
	})

	t.Run("uppercase id is accepted", func(t *testing.T) {
		p := &samplePayload{}
		c := newContext(http.MethodPut, `{"name":"Ann","born":"1990-01-01"}`, strings.ToUpper(id))

		require.NoError(t, BindAndValidate(c, p))
		assert.Equal(t, strings.ToUpper(id), p.ID)
	})

	t.Run("whitespace only is blank", func(t *testing.T) {
		c := newContext(http.MethodPut, `{"name":"   ","born":"1990-01-01"}`, id)

		got := fieldErrors(t, BindAndValidate(c, &samplePayload{}))

		assert.Equal(t, "must not be blank", got["name"])
	})

	t.Run("missing fields are required", func(t *testing.T) {
		c := newContext(http.MethodPut, `{}`, id)

		got := fieldErrors(t, BindAndValidate(c, &samplePayload{}))

		assert.Equal(t, "is required", got["name"])
		assert.Equal(t, "is required", got["born"])
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		c := newContext(http.MethodPut, `{"name":`, id)

		err := BindAndValidate(c, &samplePayload{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Empty(t, httpErr.Errors)
	})

	t.Run("custom validation errors are kept", func(t *testing.T) {
		c := newContext(http.MethodPut, `{}`, id)

		got := fieldErrors(t, BindAndValidate(c, &customPayload{}))

		assert.Equal(t, "is taken", got["name"])
	})
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("6f1c2a58-5d43-4bd4-9d7a-7a0f3d3d4a10"))
	assert.True(t, IsValidUUID("6F1C2A58-5D43-4BD4-9D7A-7A0F3D3D4A10"))
	assert.False(t, IsValidUUID("6f1c2a58"))
	assert.False(t, IsValidUUID("6f1c2a585d434bd49d7a7a0f3d3d4a10"))
	assert.False(t, IsValidUUID("{6f1c2a58-5d43-4bd4-9d7a-7a0f3d3d4a10}"))
}
