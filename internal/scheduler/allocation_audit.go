package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/internal/app/service"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"github.com/HovVathana/shoppink-backend/pkg/redis"
	"github.com/robfig/cron/v3"
)

const (
	auditReportCacheKey = "catalog:allocation_report"
	auditReportTTL      = 48 * time.Hour
)

// AuditReport is the outcome of one sweep over every product's allocations.
type AuditReport struct {
	RanAt             time.Time                    `json:"ran_at"`
	ProductsChecked   int                          `json:"products_checked"`
	ProductsViolating int                          `json:"products_violating"`
	Violations        map[uint][]catalog.Violation `json:"violations,omitempty"`
}

// AllocationAuditor sweeps the whole catalog for stock over-allocations on a
// schedule, so drift introduced by manual edits surfaces without anyone
// opening the product page.
type AllocationAuditor struct {
	cron           *cron.Cron
	productRepo    repository.ProductRepository
	catalogService service.CatalogService
}

func NewAllocationAuditor(productRepo repository.ProductRepository, catalogService service.CatalogService) *AllocationAuditor {
	return &AllocationAuditor{
		cron:           cron.New(),
		productRepo:    productRepo,
		catalogService: catalogService,
	}
}

// Start schedules the nightly sweep and runs one immediately in the
// background so the dashboard has a report after deploys.
func (a *AllocationAuditor) Start() error {
	if _, err := a.cron.AddFunc("0 3 * * *", a.RunAudit); err != nil {
		return err
	}
	a.cron.Start()
	go a.RunAudit()

	logger.Info("Allocation auditor scheduled", map[string]interface{}{
		"schedule": "0 3 * * *",
	})
	return nil
}

func (a *AllocationAuditor) Stop() {
	ctx := a.cron.Stop()
	<-ctx.Done()
}

// RunAudit validates every product and caches the findings for the dashboard.
func (a *AllocationAuditor) RunAudit() {
	started := time.Now()
	report := AuditReport{
		RanAt:      started,
		Violations: make(map[uint][]catalog.Violation),
	}

	ids, err := a.productRepo.FindAllIDs()
	if err != nil {
		logger.Error("Allocation audit failed to list products", err, nil)
		return
	}

	for _, id := range ids {
		violations, err := a.catalogService.AuditAllocations(id)
		if err != nil {
			logger.Error("Allocation audit failed for product", err, map[string]interface{}{
				"product_id": id,
			})
			continue
		}
		report.ProductsChecked++
		if len(violations) > 0 {
			report.ProductsViolating++
			report.Violations[id] = violations
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if payload, err := json.Marshal(report); err == nil {
		_ = redis.CacheSet(ctx, auditReportCacheKey, payload, auditReportTTL)
	}

	logger.Info("Allocation audit completed", map[string]interface{}{
		"products_checked":   report.ProductsChecked,
		"products_violating": report.ProductsViolating,
		"duration_ms":        time.Since(started).Milliseconds(),
	})
}

// LatestReport returns the cached report, or nil when none has run yet.
func LatestReport(ctx context.Context) (*AuditReport, error) {
	payload, found, err := redis.CacheGet(ctx, auditReportCacheKey)
	if err != nil || !found {
		return nil, err
	}
	var report AuditReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
