package service

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/api/dto"
	"github.com/roamfare/roamfare/internal/domain/override"
	"github.com/roamfare/roamfare/internal/domain/plan"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
	"github.com/roamfare/roamfare/internal/types"
)

// maxErrorSamples caps how many row errors travel back in the import result
const maxErrorSamples = 5

var (
	// sentinelRegex matches spreadsheet error values that agents paste in
	// instead of real data. Rows carrying these are skipped, not rejected.
	sentinelRegex = regexp.MustCompile(`(?i)#N/A|#REF!|#VALUE!|#DIV/0!|#NAME\?|#NULL!|#NUM!`)

	// uuidRegex extracts a plan id from a cell that may carry extra text
	// around it, e.g. a hyperlink formula remnant
	uuidRegex = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	// priceCleanRegex strips currency symbols, spaces and thousands
	// separators, leaving digits, one decimal point and a sign
	priceCleanRegex = regexp.MustCompile(`[^0-9.\-]`)
)

type BulkImportService interface {
	// ImportOverrides replaces the agent's entire override set with the rows
	// of the uploaded CSV. When dryRun is set the file is validated and the
	// result computed, but nothing is written.
	ImportOverrides(ctx context.Context, agentID string, fileContent []byte, dryRun bool) (*dto.ImportResult, error)
}

type bulkImportService struct {
	db           postgres.IClient
	overrideRepo override.Repository
	planRepo     plan.Repository
	csvProcessor *CSVProcessor
	logger       *logger.Logger
}

func NewBulkImportService(
	db postgres.IClient,
	overrideRepo override.Repository,
	planRepo plan.Repository,
	csvProcessor *CSVProcessor,
	logger *logger.Logger,
) BulkImportService {
	return &bulkImportService{
		db:           db,
		overrideRepo: overrideRepo,
		planRepo:     planRepo,
		csvProcessor: csvProcessor,
		logger:       logger,
	}
}

// importRow is one parsed and validated CSV row
type importRow struct {
	line        int
	planID      string
	retailPrice decimal.Decimal
}

func (s *bulkImportService) ImportOverrides(ctx context.Context, agentID string, fileContent []byte, dryRun bool) (*dto.ImportResult, error) {
	if len(fileContent) == 0 {
		return nil, ierr.NewError("empty file").
			WithHint("The uploaded file has no content").
			Mark(ierr.ErrValidation)
	}

	result := &dto.ImportResult{
		ImportID: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_IMPORT),
		AgentID:  agentID,
		DryRun:   dryRun,
	}

	rows, err := s.parseRows(ctx, fileContent, result)
	if err != nil {
		return nil, err
	}

	// Last occurrence wins when the same plan appears twice; agents often
	// append corrections at the bottom of the sheet instead of editing rows.
	deduped := make(map[string]importRow, len(rows))
	for _, row := range rows {
		if _, seen := deduped[row.planID]; seen {
			result.Duplicates++
		}
		deduped[row.planID] = row
	}

	records := make([]*override.AgentPricingOverride, 0, len(deduped))
	for _, row := range deduped {
		records = append(records, &override.AgentPricingOverride{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_OVERRIDE),
			AgentID:     agentID,
			PlanID:      row.planID,
			RetailPrice: row.retailPrice,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		})
	}
	result.Imported = len(records)

	if dryRun {
		return result, nil
	}

	// Replace-all inside one transaction so a failed insert never leaves the
	// agent with a half-deleted override set.
	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.overrideRepo.DeleteByAgent(txCtx, agentID); err != nil {
			return err
		}
		return s.overrideRepo.InsertBatch(txCtx, records)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("override import completed",
		"import_id", result.ImportID,
		"agent_id", agentID,
		"total_rows", result.TotalRows,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"duplicates", result.Duplicates,
		"errors", result.ErrorCount,
	)

	return result, nil
}

// parseRows walks the CSV, validates each row and accumulates counters on the
// result. Row-level problems never abort the import; only an unreadable file
// does.
func (s *bulkImportService) parseRows(ctx context.Context, fileContent []byte, result *dto.ImportResult) ([]importRow, error) {
	reader, err := s.csvProcessor.PrepareCSVReader(fileContent)
	if err != nil {
		return nil, err
	}

	var rows []importRow
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("The file could not be parsed as CSV").
				Mark(ierr.ErrValidation)
		}

		line++
		if line == 1 {
			// header row
			continue
		}
		result.TotalRows++

		if isEmptyRow(record) {
			result.Skipped++
			continue
		}
		if sentinelRegex.MatchString(strings.Join(record, ",")) {
			result.Skipped++
			continue
		}

		if len(record) < 2 {
			s.addRowError(result, line, "", "row must have a plan id and a retail price")
			continue
		}

		planID := extractPlanID(record[0])
		if planID == "" {
			s.addRowError(result, line, record[0], "no plan id found in first column")
			continue
		}

		price, err := parsePrice(record[1])
		if err != nil {
			s.addRowError(result, line, planID, "retail price is not a number")
			continue
		}
		if !price.IsPositive() {
			s.addRowError(result, line, planID, "retail price must be positive")
			continue
		}

		p, err := s.planRepo.Get(ctx, planID)
		if err != nil {
			if ierr.IsNotFound(err) {
				s.addRowError(result, line, planID, "plan does not exist")
				continue
			}
			return nil, err
		}

		if err := validateMargin(price, p.WholesalePrice); err != nil {
			s.addRowError(result, line, planID, "retail price below minimum margin")
			continue
		}

		rows = append(rows, importRow{line: line, planID: planID, retailPrice: price})
	}

	return rows, nil
}

func (s *bulkImportService) addRowError(result *dto.ImportResult, line int, planID, reason string) {
	result.ErrorCount++
	if len(result.Errors) < maxErrorSamples {
		result.Errors = append(result.Errors, dto.ImportRowError{
			Line:   line,
			PlanID: planID,
			Reason: reason,
		})
	}
}

// isEmptyRow reports whether every field is blank. The csv reader already
// drops fully empty lines; this catches rows that only carry separators.
func isEmptyRow(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// extractPlanID pulls a plan id out of the cell. A UUID embedded anywhere in
// the cell wins, tolerating surrounding text; matching is done on the
// lowercased cell since Excel loves uppercasing ids. Otherwise the trimmed
// cell itself is the id, with a stray leading '#' stripped. Whether the id
// actually exists is the catalog lookup's call, not the parser's.
func extractPlanID(cell string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(cell), "#")
	if id := uuidRegex.FindString(strings.ToLower(trimmed)); id != "" {
		return id
	}
	return strings.TrimSpace(trimmed)
}

// parsePrice strips currency symbols and thousands separators before parsing.
// "$1,234.50" and "1234.50 USD" both come out as 1234.50.
func parsePrice(cell string) (decimal.Decimal, error) {
	cleaned := priceCleanRegex.ReplaceAllString(cell, "")
	// a trailing thousands-separated number like 1.234.50 is still invalid
	// and falls through to the decimal parser's error
	return decimal.NewFromString(cleaned)
}
