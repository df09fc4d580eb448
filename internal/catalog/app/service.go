package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kasoma/sokocart/internal/catalog/domain"
)

// Service serves the delivery and payment catalogs, preferring the remote
// versions and falling back per catalog to the static sets when a fetch
// fails. A nil fetcher serves the static sets directly.
type Service struct {
	fetcher Fetcher
	log     *slog.Logger
}

func NewService(fetcher Fetcher, log *slog.Logger) *Service {
	return &Service{fetcher: fetcher, log: log}
}

// Load fetches both catalogs concurrently. It never fails: each catalog
// independently falls back to its static set on error.
func (s *Service) Load(ctx context.Context) ([]domain.DeliveryOption, []domain.PaymentMethod) {
	if s.fetcher == nil {
		return domain.StaticDeliveryOptions(), domain.StaticPaymentMethods()
	}

	options := domain.StaticDeliveryOptions()
	methods := domain.StaticPaymentMethods()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		remote, err := s.fetcher.FetchDeliveryOptions(ctx)
		if err != nil {
			s.log.Warn("delivery catalog fetch failed, using static catalog", slog.Any("err", err))
			return nil
		}
		if len(remote) > 0 {
			options = remote
		}
		return nil
	})

	g.Go(func() error {
		remote, err := s.fetcher.FetchPaymentMethods(ctx)
		if err != nil {
			s.log.Warn("payment catalog fetch failed, using static catalog", slog.Any("err", err))
			return nil
		}
		if len(remote) > 0 {
			methods = remote
		}
		return nil
	})

	// goroutines only return nil; Wait is for joining
	_ = g.Wait()

	return options, methods
}

// DeliveryOptions returns the delivery catalog on its own.
func (s *Service) DeliveryOptions(ctx context.Context) []domain.DeliveryOption {
	if s.fetcher == nil {
		return domain.StaticDeliveryOptions()
	}
	remote, err := s.fetcher.FetchDeliveryOptions(ctx)
	if err != nil || len(remote) == 0 {
		if err != nil {
			s.log.Warn("delivery catalog fetch failed, using static catalog", slog.Any("err", err))
		}
		return domain.StaticDeliveryOptions()
	}
	return remote
}

// PaymentMethods returns the payment catalog on its own.
func (s *Service) PaymentMethods(ctx context.Context) []domain.PaymentMethod {
	if s.fetcher == nil {
		return domain.StaticPaymentMethods()
	}
	remote, err := s.fetcher.FetchPaymentMethods(ctx)
	if err != nil || len(remote) == 0 {
		if err != nil {
			s.log.Warn("payment catalog fetch failed, using static catalog", slog.Any("err", err))
		}
		return domain.StaticPaymentMethods()
	}
	return remote
}
