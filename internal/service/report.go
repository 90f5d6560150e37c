package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
)

type ReportService interface {
	ShortageReport(ctx context.Context, actor domain.Actor, now time.Time) (*domain.ShortageReport, error)
}

type ReportServiceImpl struct {
	BaseService
	inventory    repository.InventoryRepository
	requests     repository.RequestRepository
	demandWindow time.Duration
}

func NewReportService(
	base BaseService,
	inventory repository.InventoryRepository,
	requests repository.RequestRepository,
	demandWindowDays int,
) *ReportServiceImpl {
	if demandWindowDays <= 0 {
		demandWindowDays = 30
	}

	return &ReportServiceImpl{
		BaseService:  base,
		inventory:    inventory,
		requests:     requests,
		demandWindow: time.Duration(demandWindowDays) * 24 * time.Hour,
	}
}

// ShortageReport compares available stock with recent demand for every blood type.
func (s *ReportServiceImpl) ShortageReport(ctx context.Context, actor domain.Actor, now time.Time) (*domain.ShortageReport, error) {
	const op = "internal.service.report.ShortageReport"

	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	stock, err := s.inventory.Summary(ctx, "", now)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to summarize inventory: %w", op, err)
	}

	demand, err := s.requests.DemandSince(ctx, now.Add(-s.demandWindow))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to aggregate demand: %w", op, err)
	}

	return buildShortageReport(stock, demand, now), nil
}

func buildShortageReport(stock []domain.InventorySummary, demand []domain.BloodTypeDemand, now time.Time) *domain.ShortageReport {
	available := make(map[domain.BloodType]int, len(stock))
	for _, row := range stock {
		available[row.BloodType] = row.Units
	}

	demanded := make(map[domain.BloodType]domain.BloodTypeDemand, len(demand))
	for _, row := range demand {
		demanded[row.BloodType] = row
	}

	report := &domain.ShortageReport{
		Shortages:     make([]domain.ShortageEntry, 0, len(domain.AllBloodTypes)),
		CriticalTypes: []domain.BloodType{},
		HighRiskTypes: []domain.BloodType{},
		GeneratedAt:   now,
	}

	for _, bt := range domain.AllBloodTypes {
		d := demanded[bt]

		rate := 100
		if d.TotalRequests > 0 {
			rate = int(math.Round(float64(d.Fulfilled) / float64(d.TotalRequests) * 100))
		}

		entry := domain.ShortageEntry{
			BloodType:       bt,
			AvailableUnits:  available[bt],
			RecentDemand:    d.UnitsNeeded,
			Shortfall:       max(0, d.UnitsNeeded-available[bt]),
			FulfillmentRate: rate,
			RiskLevel:       domain.RiskLevelFor(available[bt]),
		}

		switch entry.RiskLevel {
		case domain.RiskCritical:
			report.CriticalTypes = append(report.CriticalTypes, bt)
		case domain.RiskHigh:
			report.HighRiskTypes = append(report.HighRiskTypes, bt)
		}

		report.Shortages = append(report.Shortages, entry)
	}

	sort.SliceStable(report.Shortages, func(i, j int) bool {
		return report.Shortages[i].Shortfall > report.Shortages[j].Shortfall
	})

	return report
}
