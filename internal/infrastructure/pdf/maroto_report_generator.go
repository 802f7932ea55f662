// Package pdf genera el reporte consolidado de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                      │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Productos | Valor inventario | Alertas stock bajo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Productos | Stock | P.Compra prom | Valor│
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRECIOS: media / mediana / desviación / p25 / p75           │
//	│  STOCK BAJO: SKU | Producto | Stock | Umbral                 │
//	│  ATÍPICOS: SKU | Producto | Precio | Tipo | Límites          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/techinventory-api/internal/application/analytics"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador con formato numérico en español.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(r *dto.InventoryReportDTO) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.kpiRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("DESGLOSE POR CATEGORÍA"))
	m.AddRows(tableHeader([]string{"Categoría", "Productos", "Stock", "P. compra prom.", "Valor"}, []int{4, 2, 2, 2, 2}))
	for _, c := range r.Categories {
		m.AddRows(tableRow([]string{
			c.Category,
			g.printer.Sprintf("%d", c.Count),
			g.printer.Sprintf("%d", c.TotalStock),
			g.money(c.AveragePurchasePrice),
			g.money(c.TotalValue),
		}, []int{4, 2, 2, 2, 2}))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("ESTADÍSTICA DE PRECIOS"))
	m.AddRows(tableHeader([]string{"Serie", "Media", "Mediana", "Desv.", "P25", "P75"}, []int{2, 2, 2, 2, 2, 2}))
	m.AddRows(g.priceRow("Compra", r.Prices.Purchase))
	m.AddRows(g.priceRow("Venta", r.Prices.Sale))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New(
		g.printer.Sprintf("Margen promedio: %.2f%%   |   Margen total: %s   |   Valor promedio por producto: %s",
			r.Prices.AverageMarginPct, g.money(r.Prices.TotalMargin), g.money(r.Prices.AverageValuePerProduct)),
		props.Text{Size: 8, Top: 1, Color: colorGray},
	))))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("PRODUCTOS CON STOCK BAJO"))
	if len(r.LowStock) == 0 {
		m.AddRows(emptyRow("Sin alertas de stock."))
	} else {
		m.AddRows(tableHeader([]string{"SKU", "Producto", "Stock", "Umbral"}, []int{3, 5, 2, 2}))
		for _, p := range r.LowStock {
			m.AddRows(tableRow([]string{p.SKU, p.Name, fmt.Sprint(p.Stock), fmt.Sprint(p.ReorderThreshold)}, []int{3, 5, 2, 2}))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("PRECIOS ATÍPICOS (IQR)"))
	if len(r.Outliers) == 0 {
		m.AddRows(emptyRow("No se detectaron precios atípicos."))
	} else {
		m.AddRows(tableHeader([]string{"SKU", "Producto", "Precio", "Tipo", "Límites"}, []int{2, 4, 2, 1, 3}))
		for _, o := range r.Outliers {
			m.AddRows(tableRow([]string{
				o.Product.SKU, o.Product.Name, g.money(o.ObservedPrice), o.Direction,
				g.money(o.LowerBound) + " – " + g.money(o.UpperBound),
			}, []int{2, 4, 2, 1, 3}))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(r *dto.InventoryReportDTO) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(r.Title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 4, Color: colorGray,
		})),
	)
}

func (g *MarotoReportGenerator) kpiRow(k dto.KPIsResponse) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 6}),
		)
	}
	alertColor := colorPrimary
	if k.LowStockAlerts > 0 {
		alertColor = colorAlert
	}
	return row.New(16).Add(
		cell("Productos", g.printer.Sprintf("%d", k.TotalItems), colorPrimary),
		cell("Valor del inventario", g.money(k.TotalValue), colorPrimary),
		cell("Alertas de stock bajo", g.printer.Sprintf("%d", k.LowStockAlerts), alertColor),
	)
}

func (g *MarotoReportGenerator) priceRow(label string, s dto.PriceSummaryDTO) core.Row {
	return tableRow([]string{
		label, g.money(s.Mean), g.money(s.Median), g.money(s.Std), g.money(s.P25), g.money(s.P75),
	}, []int{2, 2, 2, 2, 2, 2})
}

// money formatea con separador de miles según el locale y dos decimales.
func (g *MarotoReportGenerator) money(v float64) string {
	return g.printer.Sprintf("$%.2f", v)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
	})))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1})))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{Size: 8, Top: 1, Left: 1})))
	}
	return row.New(6).Add(cols...)
}
