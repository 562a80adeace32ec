// Package pdf implementa la generación del certificado Paz y Salvo de
// devolución de activos fijos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° de proceso y fecha                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Nombre + identificador                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Activo | Serial | Disposición                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONSTANCIA: leyenda de paz y salvo + fecha de emisión       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/certificate"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que MarotoPDFGenerator implementa Generator.
var _ certificate.Generator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa certificate.Generator usando Maroto v2.
type MarotoPDFGenerator struct {
	companyName string
}

// NewMarotoPDFGenerator construye el generador. companyName aparece como
// emisor del certificado.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{companyName: companyName}
}

// GeneratePazYSalvo genera el PDF del certificado y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePazYSalvo(
	_ context.Context,
	proc *entity.DevolutionProcess,
	assets []*entity.Asset,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Certificado Paz y Salvo", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, proc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(proc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de activos devueltos
	m.AddRows(tableHeaderRow())
	for _, r := range tableAssetRows(assets) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range constanciaRows(proc) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y N° de proceso + fecha (der).
func headerRow(companyName string, proc *entity.DevolutionProcess) core.Row {
	fecha := proc.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Gestión de Activos Fijos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CERTIFICADO PAZ Y SALVO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Proceso "+proc.ID, props.Text{
				Size: 8, Align: align.Right, Top: 8,
			}),
			text.New("Fecha de inicio: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// employeeRow: datos del empleado que devuelve.
func employeeRow(proc *entity.DevolutionProcess) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(proc.EmployeeName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Identificador: "+proc.EmployeeID, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de activos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Activo", 6, align.Left),
		h("Serial", 3, align.Left),
		h("Disposición", 3, align.Left),
	)
}

// tableAssetRows: una fila por activo devuelto.
func tableAssetRows(assets []*entity.Asset) []core.Row {
	result := make([]core.Row, 0, len(assets))
	for _, a := range assets {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				a.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(a.Serial, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				disposicion(a),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// constanciaRows: leyenda de paz y salvo + fecha de emisión.
func constanciaRows(proc *entity.DevolutionProcess) []core.Row {
	emitido := time.Now().Format("02/01/2006 15:04")
	return []core.Row{
		row.New(4),
		row.New(16).Add(col.New(12).Add(
			text.New(fmt.Sprintf(
				"Se deja constancia de que %s devolvió la totalidad de los activos fijos "+
					"que tenía asignados y se encuentra a PAZ Y SALVO con la compañía por "+
					"este concepto.", proc.EmployeeName),
				props.Text{Size: 9, Top: 2},
			),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New("Emitido el "+emitido, props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// disposicion describe el destino final del activo tras la verificación.
func disposicion(a *entity.Asset) string {
	if a.Status == entity.AssetBaja {
		return "dado de baja"
	}
	return "reintegrado a stock"
}
