// Package analytics contiene los KPIs, la estadística descriptiva y el reporte consolidado del inventario.
// Todo se calcula sobre un snapshot del catálogo y nunca modifica estado.
package analytics

import (
	"context"

	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// SnapshotSource lectura completa del catálogo (implementada por catalog.UseCase).
type SnapshotSource interface {
	Snapshot(ctx context.Context) ([]entity.Product, error)
}

// ReportPDFGenerator renderiza el reporte de inventario a PDF.
type ReportPDFGenerator interface {
	GenerateInventoryReport(report *dto.InventoryReportDTO) ([]byte, error)
}
