package http

import (
	"strconv"

	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// caller extracts the authenticated caller ID from the request headers.
func caller(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(callerHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(callerHeader)
	}
	return kernel.UUIDFromString(raw)
}

// pathIDAndCaller reads the :id path parameter and the caller header.
func pathIDAndCaller(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	callerID, err := caller(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return id, callerID, nil
}

// requestScope resolves the listing scope from the patient_id or pharmacy_id
// query parameter. Exactly one must be present.
func requestScope(ctx echo.Context) (queries.RequestScope, kernel.UUID, error) {
	if raw := ctx.QueryParam("patient_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		return queries.RequestScopePatient, id, err
	}
	if raw := ctx.QueryParam("pharmacy_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		return queries.RequestScopePharmacy, id, err
	}
	return queries.RequestScopeUnknown, kernel.UUID{},
		errs.NewValueIsRequiredError("patient_id or pharmacy_id")
}

// orderScope resolves the listing scope from the patient_id, pharmacy_id or
// partner_id query parameter. With none present the listing is unscoped and
// covers all orders.
func orderScope(ctx echo.Context) (queries.OrderScope, kernel.UUID, error) {
	if raw := ctx.QueryParam("patient_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		return queries.OrderScopePatient, id, err
	}
	if raw := ctx.QueryParam("pharmacy_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		return queries.OrderScopePharmacy, id, err
	}
	if raw := ctx.QueryParam("partner_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		return queries.OrderScopeDeliveryPartner, id, err
	}
	return queries.OrderScopeAll, kernel.UUID{}, nil
}

// paginationFromQuery builds a Pagination from page, limit, sort_by and
// sort_order query parameters.
func paginationFromQuery(ctx echo.Context, allowedSortColumns []string) (queries.Pagination, error) {
	page, err := intQueryParam(ctx, "page")
	if err != nil {
		return queries.Pagination{}, err
	}
	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return queries.Pagination{}, err
	}

	return queries.NewPagination(
		page, limit,
		ctx.QueryParam("sort_by"), ctx.QueryParam("sort_order"),
		allowedSortColumns,
	)
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return value, nil
}

// addressFromBody converts an address payload into the domain value object.
// Latitude and longitude must be given together.
func addressFromBody(body addressBody) (order.Address, error) {
	var coordinates *kernel.GeoPoint
	if body.Latitude != nil || body.Longitude != nil {
		if body.Latitude == nil || body.Longitude == nil {
			return order.Address{}, errs.NewValueIsInvalidError("coordinates")
		}
		point, err := kernel.NewGeoPoint(*body.Latitude, *body.Longitude)
		if err != nil {
			return order.Address{}, err
		}
		coordinates = &point
	}

	return order.NewAddress(body.Street, body.City, body.PostalCode, body.Phone, coordinates)
}
