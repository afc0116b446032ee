package order

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created via NewAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the delivery destination of an order: street, city, postal code
// and contact phone, plus optional coordinates for the delivery partner.
// Address is an immutable value object.
type Address struct { //nolint:recvcheck //using for validation
	street      string
	city        string
	postalCode  string
	phone       string
	coordinates *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a delivery address. Street, city, postal code and phone
// are required; coordinates are optional.
func NewAddress(street, city, postalCode, phone string, coordinates *kernel.GeoPoint) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setPostalCode(postalCode),
		addr.setPhone(phone),
		addr.setCoordinates(coordinates),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate ensures the address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Phone returns the contact phone number.
func (a Address) Phone() string {
	return a.phone
}

// Coordinates returns the optional delivery coordinates.
func (a Address) Coordinates() *kernel.GeoPoint {
	return a.coordinates
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}

func (a *Address) setCoordinates(coordinates *kernel.GeoPoint) error {
	if coordinates != nil {
		if err := coordinates.Validate(); err != nil {
			return err
		}
	}
	a.coordinates = coordinates
	return nil
}
