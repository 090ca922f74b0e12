// Package analytics contiene los casos de uso de reportes sobre el libro de movimientos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

// StatsUseCase estadísticas de movimientos por tipo y por día.
//
// Fuente de datos: StatsRepository (consultas read-only). Las lecturas no se coordinan
// con las escrituras del libro; se acepta una instantánea eventualmente consistente.
type StatsUseCase struct {
	statsRepo  repository.StatsRepository
	windowDays int
	now        func() time.Time
}

// NewStatsUseCase construye el caso de uso. windowDays es la ventana por defecto (30).
func NewStatsUseCase(statsRepo repository.StatsRepository, windowDays int) *StatsUseCase {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &StatsUseCase{
		statsRepo:  statsRepo,
		windowDays: windowDays,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Period resuelve la ventana [from, to] a partir de los parámetros dateDebut / dateFin.
// Sin dateFin se usa ahora; sin dateDebut, dateFin menos la ventana por defecto.
func (uc *StatsUseCase) Period(fromParam, toParam string) (time.Time, time.Time, error) {
	from, err := dto.ParseDate(fromParam, false)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Invalid("dateDebut", err.Error())
	}
	to, err := dto.ParseDate(toParam, true)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Invalid("dateFin", err.Error())
	}
	end := uc.now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -uc.windowDays)
	if from != nil {
		start = *from
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.Invalid("dateDebut", "postérieure à dateFin")
	}
	return start, end, nil
}

// Movements calcula statsByType y dailyStats en paralelo para el rango [from, to].
func (uc *StatsUseCase) Movements(ctx context.Context, from, to time.Time) (*dto.MovementStatsResponse, error) {
	if from.After(to) {
		return nil, domain.Invalid("dateDebut", "postérieure à dateFin")
	}

	var (
		byType []repository.MovementTypeStat
		daily  []repository.DailyMovementStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := uc.statsRepo.MovementsByType(gctx, from, to)
		if err != nil {
			return fmt.Errorf("stats: por tipo: %w", err)
		}
		byType = res
		return nil
	})
	g.Go(func() error {
		res, err := uc.statsRepo.DailyMovements(gctx, from, to)
		if err != nil {
			return fmt.Errorf("stats: diarias: %w", err)
		}
		daily = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.MovementStatsResponse{
		MovementStats: make([]dto.MovementTypeStatDTO, 0, len(byType)),
		DailyStats:    make([]dto.DailyStatDTO, 0, len(daily)),
		Period:        dto.PeriodDTO{StartDate: from, EndDate: to},
	}
	for _, s := range byType {
		out.MovementStats = append(out.MovementStats, dto.MovementTypeStatDTO{
			Type:          string(s.Type),
			Count:         s.Count,
			TotalQuantity: s.TotalQuantity,
		})
	}
	for _, s := range daily {
		out.DailyStats = append(out.DailyStats, dto.DailyStatDTO{
			Date:     dto.FormatDay(s.Date),
			Count:    s.Count,
			Inbound:  s.Inbound,
			Outbound: s.Outbound,
		})
	}
	return out, nil
}
