package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/centipy/palette-server/internal/errors"
	"github.com/centipy/palette-server/internal/validation"
)

type saveRequest struct {
	Name   string   `json:"name" validate:"required,max=80"`
	Colors []string `json:"colors" validate:"min=3,max=8,dive,hex"`
}

type generateRequest struct {
	Scheme string `json:"scheme" validate:"omitempty,scheme"`
	Base   string `json:"base" validate:"omitempty,colorstr"`
	Count  int    `json:"count" validate:"omitempty,min=3,max=8"`
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

	d, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	return d
}

func TestValidator_Success(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Validate(saveRequest{Name: "Sunset", Colors: []string{"#FF0000", "0f0", "#0000ff"}}))
	assert.NoError(t, v.Validate(generateRequest{Scheme: "split_complementary", Base: "rgb(10, 20, 30)", Count: 5}))
	assert.NoError(t, v.Validate(generateRequest{}))
}

func TestValidator_SaveErrors(t *testing.T) {
	v := validation.New()

	d := details(t, v.Validate(saveRequest{Colors: []string{"#FF0000", "nope", "#00F"}}))
	assert.Equal(t, "is required", d["name"])
	assert.Equal(t, "must be a hex color", d["colors[1]"])

	d = details(t, v.Validate(saveRequest{Name: "x", Colors: []string{"#FFF"}}))
	assert.Equal(t, "must contain at least 3 items", d["colors"])
}

func TestValidator_GenerateErrors(t *testing.T) {
	v := validation.New()

	d := details(t, v.Validate(generateRequest{Scheme: "plaid", Base: "blurple", Count: 12}))
	assert.Equal(t, "must be a harmony scheme", d["scheme"])
	assert.Equal(t, "must be a hex, rgb(), hsl(), or named color", d["base"])
	assert.Equal(t, "must not exceed 8", d["count"])
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Var("color", "tomato", "colorstr"))

	d := details(t, v.Var("color", "", "required"))
	assert.Equal(t, "is required", d["color"])
}
