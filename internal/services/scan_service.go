package services

import (
	"context"
	"petcare/internal/models"
	"petcare/internal/providers"
	"petcare/internal/structures"
	"time"
)

type ScanServiceInterface interface {
	Scan(ctx context.Context, scanType models.ScanType) (models.ScanResult, error)
}

// ScanService runs the simulated health scan: a fixed analysis delay
// followed by a canned result, gated by the user's entitlement.
type ScanService struct {
	delay   time.Duration
	users   UserStoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewScanService(conf *structures.Config, users UserStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ScanServiceInterface {
	return &ScanService{
		delay:   conf.Scanner.Delay,
		users:   users,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *ScanService) Scan(ctx context.Context, scanType models.ScanType) (models.ScanResult, error) {
	scanType = models.NormalizeScanType(scanType)

	charged, _, err := s.users.ReserveScan()
	if err != nil {
		return models.ScanResult{}, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			if charged {
				s.users.ReleaseScan()
			}
			return models.ScanResult{}, ctx.Err()
		}
	}

	s.metrics.IncScans(string(scanType))
	result := models.LookupScan(scanType)
	s.logger.Infof(providers.TypeScan, "Scan %s finished: %s", scanType, result.Status)
	return result, nil
}
