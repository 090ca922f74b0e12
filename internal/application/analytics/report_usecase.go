package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
)

// ReportGenerator puerto de salida para renderizar el reporte de movimientos.
type ReportGenerator interface {
	GenerateMovementReport(ctx context.Context, title string, stats *dto.MovementStatsResponse) ([]byte, error)
}

// ReportUseCase genera el PDF de estadísticas de movimientos.
type ReportUseCase struct {
	stats     *StatsUseCase
	generator ReportGenerator
	title     string
}

// NewReportUseCase construye el caso de uso. title aparece en la cabecera del documento.
func NewReportUseCase(stats *StatsUseCase, generator ReportGenerator, title string) *ReportUseCase {
	return &ReportUseCase{stats: stats, generator: generator, title: title}
}

// MovementReport devuelve el PDF y un nombre de archivo sugerido.
func (uc *ReportUseCase) MovementReport(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	stats, err := uc.stats.Movements(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateMovementReport(ctx, uc.title, stats)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	filename := fmt.Sprintf("mouvements_%s_%s.pdf", dto.FormatDay(from), dto.FormatDay(to))
	return pdf, filename, nil
}
