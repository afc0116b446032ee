package http

import (
	"net/http/httptest"
	"testing"

	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, target string, headers map[string]string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(echo.GET, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestCaller_MissingHeader_ReturnsRequired(t *testing.T) {
	ctx := newTestContext(t, "/api/v1/orders", nil)

	_, err := caller(ctx)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCaller_ValidHeader(t *testing.T) {
	id := kernel.NewUUID()
	ctx := newTestContext(t, "/api/v1/orders", map[string]string{callerHeader: id.String()})

	got, err := caller(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsEqual(id))
}

func TestOrderScope_ResolvesFromQueryParams(t *testing.T) {
	patientID := kernel.NewUUID()
	ctx := newTestContext(t, "/api/v1/orders?patient_id="+patientID.String(), nil)

	scope, scopeID, err := orderScope(ctx)
	require.NoError(t, err)
	assert.Equal(t, queries.OrderScopePatient, scope)
	assert.True(t, scopeID.IsEqual(patientID))

	partnerID := kernel.NewUUID()
	ctx = newTestContext(t, "/api/v1/orders?partner_id="+partnerID.String(), nil)

	scope, scopeID, err = orderScope(ctx)
	require.NoError(t, err)
	assert.Equal(t, queries.OrderScopeDeliveryPartner, scope)
	assert.True(t, scopeID.IsEqual(partnerID))
}

func TestOrderScope_NoScopeParam_ListsAllOrders(t *testing.T) {
	ctx := newTestContext(t, "/api/v1/orders", nil)

	scope, scopeID, err := orderScope(ctx)
	require.NoError(t, err)
	assert.Equal(t, queries.OrderScopeAll, scope)
	require.Error(t, scopeID.Validate())
}

func TestPaginationFromQuery(t *testing.T) {
	ctx := newTestContext(t, "/api/v1/orders?page=3&limit=10&sort_by=status&sort_order=desc", nil)

	pagination, err := paginationFromQuery(ctx, queries.OrderSortColumns())
	require.NoError(t, err)
	assert.Equal(t, 3, pagination.Page())
	assert.Equal(t, 10, pagination.Limit())
	assert.Equal(t, 20, pagination.Offset())
	assert.Equal(t, "status desc", pagination.OrderBy())
}

func TestPaginationFromQuery_BadNumber_ReturnsInvalid(t *testing.T) {
	ctx := newTestContext(t, "/api/v1/orders?page=abc", nil)

	_, err := paginationFromQuery(ctx, queries.OrderSortColumns())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAddressFromBody(t *testing.T) {
	lat, lng := 40.7128, -74.006

	address, err := addressFromBody(addressBody{
		Street:     "12 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Phone:      "+15551234567",
		Latitude:   &lat,
		Longitude:  &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, "Springfield", address.City())
	require.NotNil(t, address.Coordinates())
	assert.InDelta(t, lat, address.Coordinates().Latitude(), 1e-9)
}

func TestAddressFromBody_LatitudeWithoutLongitude_IsInvalid(t *testing.T) {
	lat := 40.7128

	_, err := addressFromBody(addressBody{
		Street:     "12 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Phone:      "+15551234567",
		Latitude:   &lat,
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
