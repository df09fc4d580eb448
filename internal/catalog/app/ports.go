package app

import (
	"context"

	"github.com/kasoma/sokocart/internal/catalog/domain"
)

// Fetcher pulls the remote delivery and payment catalogs. The HTTP
// implementation lives in order/infra/httpapi next to the order gateway,
// since both talk to the same API.
type Fetcher interface {
	FetchDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error)
	FetchPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}
