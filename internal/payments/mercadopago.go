package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/saloncore/salon-scheduler/internal/models"
)

// MercadoPago issues checkout links for appointment payments. A nil
// *MercadoPago means payment links are disabled for this deployment.
type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

// PaymentLink creates a checkout preference priced at the appointment's
// service, keyed by the booking reference for reconciliation.
func (m *MercadoPago) PaymentLink(
	ctx context.Context,
	ap *models.Appointment,
) (string, error) {

	req := preference.Request{
		ExternalReference: ap.Reference,
		Items: []preference.ItemRequest{
			{
				Title:       ap.Service.Name,
				Description: ap.Service.Description,
				Quantity:    1,
				UnitPrice:   ap.Service.Price,
			},
		},
	}

	resource, err := m.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return resource.InitPoint, nil
}
