package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// HTTPPatientDirectory resolves patient contacts from the patient registry
// service.
type HTTPPatientDirectory struct {
	client  *http.Client
	baseURL string
}

// NewHTTPPatientDirectory creates a directory client for the registry at baseURL.
func NewHTTPPatientDirectory(baseURL string) *HTTPPatientDirectory {
	return &HTTPPatientDirectory{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

type contactResponse struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// LookupContact fetches the patient's contact details from the registry.
func (d *HTTPPatientDirectory) LookupContact(ctx context.Context, patientID kernel.UUID) (ports.Contact, error) {
	url := fmt.Sprintf("%s/patients/%s/contact", d.baseURL, patientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Contact{}, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return ports.Contact{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.Contact{}, errs.NewObjectNotFoundError("patient", patientID.String())
	}
	if resp.StatusCode != http.StatusOK {
		return ports.Contact{}, fmt.Errorf("patient registry returned %d", resp.StatusCode)
	}

	var out contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.Contact{}, err
	}

	return ports.Contact{Name: out.Name, Email: out.Email, Phone: out.Phone}, nil
}
