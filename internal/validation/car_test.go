package validation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCarStore struct {
	takenBarcodes map[string]int64 // code -> owning id
	lookupErr     error
	lookups       int
}

func (f *fakeCarStore) BarcodeTaken(_ context.Context, code string, excludeID int64) (bool, error) {
	f.lookups++
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	owner, ok := f.takenBarcodes[code]
	return ok && owner != excludeID, nil
}

// pinned clock so the year upper bound stays stable.
func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func decodeCarPayload(t *testing.T, body string) *CarPayload {
	t.Helper()
	var p CarPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return &p
}

func newCarValidator(categories *fakeCategoryStore, cars *fakeCarStore) *CarValidator {
	if categories == nil {
		categories = &fakeCategoryStore{}
	}
	if cars == nil {
		cars = &fakeCarStore{}
	}
	return NewCarValidator(categories, cars, fixedNow)
}

func validCarBody() string {
	return `{"make":"Toyota","model":"Corolla","year":2020,"price":18500.50}`
}

func TestCarValidateCreate(t *testing.T) {
	categories := &fakeCategoryStore{activeIDs: map[int64]bool{1: true}}
	cars := &fakeCarStore{takenBarcodes: map[string]int64{"ABC-123": 9}}
	v := NewCarValidator(categories, cars, fixedNow)

	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{
			name: "valid minimal payload passes",
			body: validCarBody(),
		},
		{
			name: "valid full payload passes",
			body: `{"make":"Toyota","model":"Corolla","year":2020,"price":18500.50,"color":"rojo","status":false,"category_id":1,"codigo_barras":"XYZ_99"}`,
		},
		{
			name:      "missing make",
			body:      `{"model":"Corolla","year":2020,"price":100}`,
			wantField: "make",
			wantMsg:   "El campo marca es obligatorio.",
		},
		{
			name:      "missing model",
			body:      `{"make":"Toyota","year":2020,"price":100}`,
			wantField: "model",
		},
		{
			name:      "year below lower bound",
			body:      `{"make":"Toyota","model":"Corolla","year":1899,"price":100}`,
			wantField: "year",
			wantMsg:   "El campo año debe ser al menos 1900.",
		},
		{
			name:      "year above current year",
			body:      `{"make":"Toyota","model":"Corolla","year":2026,"price":100}`,
			wantField: "year",
			wantMsg:   "El campo año no puede ser mayor a 2025.",
		},
		{
			name:      "year not an integer",
			body:      `{"make":"Toyota","model":"Corolla","year":2020.5,"price":100}`,
			wantField: "year",
			wantMsg:   "El campo año debe ser un número entero.",
		},
		{
			name:      "negative price",
			body:      `{"make":"Toyota","model":"Corolla","year":2020,"price":-0.01}`,
			wantField: "price",
		},
		{
			name:      "price not numeric",
			body:      `{"make":"Toyota","model":"Corolla","year":2020,"price":"caro"}`,
			wantField: "price",
			wantMsg:   "El campo precio debe ser un valor numérico.",
		},
		{
			name:      "color too long",
			body:      `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"color":"` + longString(51) + `"}`,
			wantField: "color",
		},
		{
			name:      "status of the wrong type",
			body:      `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"status":"sí"}`,
			wantField: "status",
		},
		{
			name:      "category missing or inactive",
			body:      `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"category_id":42}`,
			wantField: "category_id",
			wantMsg:   "La categoría seleccionada no existe o no está activa.",
		},
		{
			name:      "barcode with illegal characters",
			body:      `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"codigo_barras":"ABC 123"}`,
			wantField: "codigo_barras",
			wantMsg:   "El código de barras solo puede contener letras, números, guiones y guiones bajos.",
		},
		{
			name:      "duplicate barcode",
			body:      `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"codigo_barras":"ABC-123"}`,
			wantField: "codigo_barras",
			wantMsg:   "Ya existe un vehículo con este código de barras.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.ValidateCreate(context.Background(), decodeCarPayload(t, tt.body))
			require.NoError(t, err)
			if tt.wantField == "" {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
				return
			}
			require.Contains(t, errs, tt.wantField)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errs.First(tt.wantField))
			}
		})
	}
}

func TestCarValidateCreateBoundaries(t *testing.T) {
	v := newCarValidator(nil, nil)

	for _, body := range []string{
		`{"make":"Ford","model":"T","year":1900,"price":0}`,
		`{"make":"Toyota","model":"Corolla","year":2025,"price":"0.00"}`,
		`{"make":"Toyota","model":"Corolla","year":"2020","price":100}`,
		`{"make":"Toyota","model":"Corolla","year":2020,"price":100,"color":null,"category_id":null,"codigo_barras":null}`,
	} {
		errs, err := v.ValidateCreate(context.Background(), decodeCarPayload(t, body))
		require.NoError(t, err)
		assert.False(t, errs.HasErrors(), "boundary payload rejected: %s -> %v", body, errs)
	}
}

func TestCarCategoryTypeFailureSkipsLookup(t *testing.T) {
	categories := &fakeCategoryStore{lookupErr: errors.New("should not be called")}
	v := NewCarValidator(categories, &fakeCarStore{}, fixedNow)

	errs, err := v.ValidateCreate(context.Background(),
		decodeCarPayload(t, `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"category_id":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, "El campo categoría debe ser un número entero.", errs.First("category_id"))
}

func TestCarBarcodePatternFailureSkipsLookup(t *testing.T) {
	cars := &fakeCarStore{}
	v := NewCarValidator(&fakeCategoryStore{}, cars, fixedNow)

	errs, err := v.ValidateCreate(context.Background(),
		decodeCarPayload(t, `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"codigo_barras":"¡hola!"}`))
	require.NoError(t, err)
	assert.Contains(t, errs, "codigo_barras")
	assert.Zero(t, cars.lookups)
}

func TestCarValidateUpdate(t *testing.T) {
	cars := &fakeCarStore{takenBarcodes: map[string]int64{"ABC-123": 9, "ZZZ-1": 5}}
	v := NewCarValidator(&fakeCategoryStore{}, cars, fixedNow)

	t.Run("absent fields are skipped", func(t *testing.T) {
		errs, err := v.ValidateUpdate(context.Background(), 9, decodeCarPayload(t, `{"price":9999.99}`))
		require.NoError(t, err)
		assert.False(t, errs.HasErrors())
	})

	t.Run("own barcode does not count as duplicate", func(t *testing.T) {
		errs, err := v.ValidateUpdate(context.Background(), 9, decodeCarPayload(t, `{"codigo_barras":"ABC-123"}`))
		require.NoError(t, err)
		assert.False(t, errs.HasErrors())
	})

	t.Run("someone else's barcode does", func(t *testing.T) {
		errs, err := v.ValidateUpdate(context.Background(), 9, decodeCarPayload(t, `{"codigo_barras":"ZZZ-1"}`))
		require.NoError(t, err)
		assert.Equal(t, "Ya existe un vehículo con este código de barras.", errs.First("codigo_barras"))
	})

	t.Run("present null make is still required", func(t *testing.T) {
		errs, err := v.ValidateUpdate(context.Background(), 9, decodeCarPayload(t, `{"make":null}`))
		require.NoError(t, err)
		assert.Equal(t, "El campo marca es obligatorio.", errs.First("make"))
	})
}

func TestCarValidateLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	v := NewCarValidator(&fakeCategoryStore{}, &fakeCarStore{lookupErr: boom}, fixedNow)

	errs, err := v.ValidateCreate(context.Background(),
		decodeCarPayload(t, `{"make":"Toyota","model":"Corolla","year":2020,"price":100,"codigo_barras":"OK-1"}`))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, errs)
}

func TestCarNilClockDefaultsToNow(t *testing.T) {
	v := NewCarValidator(&fakeCategoryStore{}, &fakeCarStore{}, nil)

	body := `{"make":"Toyota","model":"Corolla","year":` +
		time.Now().Format("2006") + `,"price":100}`
	errs, err := v.ValidateCreate(context.Background(), decodeCarPayload(t, body))
	require.NoError(t, err)
	assert.False(t, errs.HasErrors())
}
