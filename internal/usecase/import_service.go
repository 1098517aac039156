package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/keeper"
	"github.com/draftroom/keeper-league/internal/platform/id"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

// ExternalTransaction is one roster move as reported by the stats provider.
type ExternalTransaction struct {
	ExternalRef string
	PlayerID    string
	SlotID      string
	SeasonYear  int
	Type        string
	Round       *int
	Pick        *int
	FromSlotID  *string
	OccurredAt  time.Time
	DroppedAt   *time.Time
}

// TransactionSource pulls a season's transaction log from the provider.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, seasonYear int) ([]ExternalTransaction, error)
}

// ImportRowError records one provider row that could not be imported.
type ImportRowError struct {
	ExternalRef string `json:"externalRef,omitempty"`
	PlayerID    string `json:"playerId,omitempty"`
	Reason      string `json:"reason"`
}

type ImportResult struct {
	SeasonYear int              `json:"seasonYear"`
	Fetched    int              `json:"fetched"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportService loads acquisition history from the external stats feed. One
// bad row never aborts the season: it lands in the result's error list and
// the rest import.
type ImportService struct {
	source  TransactionSource
	acqRepo acquisition.Repository
	idGen   id.Generator
	logger  *logging.Logger
}

func NewImportService(source TransactionSource, acqRepo acquisition.Repository, idGen id.Generator, logger *logging.Logger) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		source:  source,
		acqRepo: acqRepo,
		idGen:   idGen,
		logger:  logger,
	}
}

func (s *ImportService) ImportSeason(ctx context.Context, seasonYear int) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportSeason")
	defer span.End()

	if s.source == nil {
		return ImportResult{}, fmt.Errorf("%w: no stats feed is configured", ErrDependencyUnavailable)
	}
	if seasonYear <= 0 {
		return ImportResult{}, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}

	rows, err := s.source.FetchTransactions(ctx, seasonYear)
	if err != nil {
		return ImportResult{}, fmt.Errorf("fetch transactions for %d: %w", seasonYear, err)
	}

	result := ImportResult{SeasonYear: seasonYear, Fetched: len(rows)}
	valid := make([]acquisition.Acquisition, 0, len(rows))

	for _, row := range rows {
		acq, err := s.mapRow(row, seasonYear)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{
				ExternalRef: row.ExternalRef,
				PlayerID:    row.PlayerID,
				Reason:      err.Error(),
			})
			continue
		}
		valid = append(valid, acq)
	}

	if len(valid) > 0 {
		if err := s.acqRepo.CreateBatch(ctx, valid); err != nil {
			// The batch write hit a constraint; retry row by row so one
			// conflict does not discard the rest.
			s.logger.WarnContext(ctx, "batch import fell back to row-by-row writes",
				"season", seasonYear,
				"error", err.Error(),
			)
			imported := 0
			for _, acq := range valid {
				if createErr := s.acqRepo.Create(ctx, acq); createErr != nil {
					result.Failed++
					result.Errors = append(result.Errors, ImportRowError{
						PlayerID: acq.PlayerID,
						Reason:   createErr.Error(),
					})
					continue
				}
				imported++
			}
			result.Imported = imported
		} else {
			result.Imported = len(valid)
		}
	}

	s.logger.InfoContext(ctx, "season import finished",
		"season", seasonYear,
		"fetched", result.Fetched,
		"imported", result.Imported,
		"failed", result.Failed,
	)

	return result, nil
}

func (s *ImportService) mapRow(row ExternalTransaction, seasonYear int) (acquisition.Acquisition, error) {
	acqID := strings.TrimSpace(row.ExternalRef)
	if acqID == "" {
		generated, err := s.idGen.NewID()
		if err != nil {
			return acquisition.Acquisition{}, fmt.Errorf("generate acquisition id: %w", err)
		}
		acqID = generated
	}

	acqType, err := mapTransactionType(row.Type)
	if err != nil {
		return acquisition.Acquisition{}, err
	}

	year := row.SeasonYear
	if year == 0 {
		year = seasonYear
	}
	if year != seasonYear {
		return acquisition.Acquisition{}, fmt.Errorf("row season %d does not match import season %d", year, seasonYear)
	}

	occurredAt := row.OccurredAt
	if occurredAt.IsZero() {
		return acquisition.Acquisition{}, fmt.Errorf("transaction timestamp is missing")
	}

	acq := acquisition.Acquisition{
		ID:               acqID,
		PlayerID:         strings.TrimSpace(row.PlayerID),
		SlotID:           strings.TrimSpace(row.SlotID),
		SeasonYear:       year,
		Type:             acqType,
		DraftRound:       row.Round,
		PickNumber:       row.Pick,
		AcquiredAt:       occurredAt.UTC(),
		DroppedAt:        row.DroppedAt,
		TradedFromSlotID: row.FromSlotID,
		CreatedAt:        occurredAt.UTC(),
	}
	if acq.PlayerID == "" || acq.SlotID == "" {
		return acquisition.Acquisition{}, fmt.Errorf("player id and slot id are required")
	}
	if err := acq.Validate(); err != nil {
		return acquisition.Acquisition{}, err
	}

	return acq, nil
}

func mapTransactionType(raw string) (keeper.AcquisitionType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DRAFT", "DRAFTED":
		return keeper.TypeDraft, nil
	case "FREE_AGENT", "WAIVER", "PICKUP":
		return keeper.TypeFreeAgent, nil
	case "TRADE", "TRADED":
		return keeper.TypeTrade, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", raw)
	}
}
