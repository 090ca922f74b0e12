package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
	"github.com/jhoicas/gestion-stock-api/pkg/logger"
)

// ImportReason motivo de los movimientos generados por la importación.
const ImportReason = "Import catalogue"

// ImportLineError línea rechazada (rechazo de negocio; no aborta la importación).
type ImportLineError struct {
	Line int
	SKU  string
	Err  error
}

// ImportReport resultado de una importación.
type ImportReport struct {
	Created   int
	Adjusted  int
	Unchanged int
	Rejected  []ImportLineError
}

// CatalogImportUseCase carga productos desde un CSV (UTF-8 o ISO-8859-1).
// Productos nuevos pasan por ProductUseCase.Create; los existentes se ajustan vía el libro.
type CatalogImportUseCase struct {
	products *ProductUseCase
	repo     repository.ProductRepository
	ledger   *inventory.LedgerUseCase
	log      *logger.Logger
}

// NewCatalogImportUseCase construye el caso de uso.
func NewCatalogImportUseCase(products *ProductUseCase, repo repository.ProductRepository, ledger *inventory.LedgerUseCase, log *logger.Logger) *CatalogImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogImportUseCase{products: products, repo: repo, ledger: ledger, log: log}
}

var importColumns = []string{"sku", "nom", "description", "prix", "quantite", "categorie", "seuilminimum"}

// Import procesa el CSV. Cabecera obligatoria; separador ';' o ','.
// Con ';' se admite coma decimal (12,50).
func (uc *CatalogImportUseCase) Import(ctx context.Context, actorID string, r io.Reader) (*ImportReport, error) {
	if _, err := uc.ledger.ResolveActor(ctx, actorID, entity.WriterRoles...); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("import: leer: %w", err)
	}
	text, err := decodeCatalog(raw)
	if err != nil {
		return nil, err
	}

	sep := ','
	if first, _, _ := strings.Cut(text, "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		sep = ';'
	}
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, domain.Invalid("csv", "en-tête manquant")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"sku", "nom"} {
		if _, ok := cols[required]; !ok {
			return nil, domain.Invalid("csv", "colonne "+required+" manquante")
		}
	}

	report := &ImportReport{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("import: línea %d: %w", line, err)
		}
		field := func(name string) string {
			if i, ok := cols[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		req, err := importRequest(field, sep == ';')
		if err == nil {
			err = uc.importOne(ctx, actorID, req, report)
		}
		if err != nil {
			if !inventory.IsBusinessError(err) && !errors.Is(err, domain.ErrDuplicateSKU) {
				return nil, fmt.Errorf("import: línea %d: %w", line, err)
			}
			report.Rejected = append(report.Rejected, ImportLineError{Line: line, SKU: field("sku"), Err: err})
		}
	}

	uc.log.Info().
		Int("created", report.Created).
		Int("adjusted", report.Adjusted).
		Int("unchanged", report.Unchanged).
		Int("rejected", len(report.Rejected)).
		Msg("importación de catálogo terminada")
	return report, nil
}

func (uc *CatalogImportUseCase) importOne(ctx context.Context, actorID string, req dto.CreateProductRequest, report *ImportReport) error {
	existing, err := uc.repo.GetBySKU(ctx, entity.NormalizeSKU(req.SKU))
	if err != nil {
		return err
	}
	if existing == nil {
		if _, err := uc.products.Create(ctx, actorID, req); err != nil {
			return err
		}
		report.Created++
		return nil
	}
	if !existing.Active {
		return domain.ErrDuplicateSKU
	}
	if existing.Quantity.Equal(req.Quantity) {
		report.Unchanged++
		return nil
	}

	// ajustement no admite cantidad cero: vaciar el stock es una sortie del total.
	in := inventory.RecordMovementInput{
		ProductID: existing.ID,
		UserID:    actorID,
		Type:      string(entity.MovementTypeAdjust),
		Quantity:  req.Quantity,
		Reason:    ImportReason,
	}
	if req.Quantity.IsZero() {
		in.Type = string(entity.MovementTypeOut)
		in.Quantity = existing.Quantity
	}
	if _, err := uc.ledger.Record(ctx, in); err != nil {
		return err
	}
	report.Adjusted++
	return nil
}

func importRequest(field func(string) string, commaDecimal bool) (dto.CreateProductRequest, error) {
	req := dto.CreateProductRequest{
		SKU:         field("sku"),
		Name:        field("nom"),
		Description: field("description"),
		Category:    field("categorie"),
	}
	var err error
	if req.Price, err = parseImportDecimal(field("prix"), commaDecimal); err != nil {
		return req, domain.Invalid("prix", "nombre invalide")
	}
	if req.Quantity, err = parseImportDecimal(field("quantite"), commaDecimal); err != nil {
		return req, domain.Invalid("quantite", "nombre invalide")
	}
	if req.Quantity.IsNegative() {
		return req, domain.Invalid("quantite", "ne peut pas être négative")
	}
	if s := field("seuilminimum"); s != "" {
		threshold, err := parseImportDecimal(s, commaDecimal)
		if err != nil {
			return req, domain.Invalid("seuilMinimum", "nombre invalide")
		}
		req.MinThreshold = &threshold
	}
	return req, nil
}

func parseImportDecimal(s string, commaDecimal bool) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	if commaDecimal {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// decodeCatalog devuelve el texto en UTF-8; lo que no es UTF-8 válido se lee como ISO-8859-1.
func decodeCatalog(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("import: decodificar ISO-8859-1: %w", err)
	}
	return string(out), nil
}
