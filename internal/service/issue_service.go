package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/observability"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
	"github.com/noah-isme/storeroom-go-api/pkg/signature"
)

// ProcessIssueInput carries one issuance request. Lines maps item ids to
// requested quantities exactly as received from the client: keys and values
// are untrusted and may be strings or numbers.
type ProcessIssueInput struct {
	ActorID     uint
	TeacherID   uint
	Lines       map[string]json.RawMessage
	Signature   string
	PairingCode string
}

// IssueService validates multi-line issuance requests against the stock
// ledger and commits them all-or-nothing.
type IssueService interface {
	ProcessIssue(ctx context.Context, input ProcessIssueInput) (dto.IssueResponse, error)
	Get(ctx context.Context, id uint) (dto.IssueResponse, error)
	List(ctx context.Context, page, pageSize int) (dto.IssueListResponse, error)
}

type issueService struct {
	txRunner   repository.TxRunner
	teachers   repository.TeacherRepository
	issues     repository.IssueRepository
	ledger     *Ledger
	signatures signature.Store
	alerter    StockNotifier
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewIssueService constructs the issuance workflow.
func NewIssueService(
	txRunner repository.TxRunner,
	teachers repository.TeacherRepository,
	issues repository.IssueRepository,
	ledger *Ledger,
	signatures signature.Store,
	alerter StockNotifier,
	logger zerolog.Logger,
) IssueService {
	return &issueService{
		txRunner:   txRunner,
		teachers:   teachers,
		issues:     issues,
		ledger:     ledger,
		signatures: signatures,
		alerter:    alerter,
		logger:     logger.With().Str("component", "issue_service").Logger(),
		tracer:     otel.Tracer("github.com/noah-isme/storeroom-go-api/internal/service/issue"),
	}
}

type requestedLine struct {
	key    string
	itemID uint
	qty    int
}

// ProcessIssue runs the issuance workflow:
//
//  1. reject empty carts and missing signatures,
//  2. persist the signature before any stock mutation,
//  3. create the issue header so lines and log entries can reference it,
//  4. set the teacher's reference signature if none is on file yet,
//  5. per line: skip non-positive quantities, skip-and-report unresolved
//     items, abort on insufficient stock, otherwise stage an issue line and a
//     ledger adjustment of -qty,
//  6. commit everything in one transaction.
//
// Any error rolls the whole attempt back: no issue, no lines, no log entries
// and no stock change survive a failed call.
func (s *issueService) ProcessIssue(ctx context.Context, input ProcessIssueInput) (dto.IssueResponse, error) {
	start := time.Now()
	defer func() {
		observability.IssueLatency().Observe(time.Since(start).Seconds())
	}()

	if len(input.Lines) == 0 {
		observability.IssuesProcessed().WithLabelValues("invalid_request").Inc()
		return dto.IssueResponse{}, ErrCartEmpty
	}
	if strings.TrimSpace(input.Signature) == "" {
		observability.IssuesProcessed().WithLabelValues("invalid_request").Inc()
		return dto.IssueResponse{}, ErrSignatureRequired
	}

	lines, skipped, err := parseRequestedLines(input.Lines)
	if err != nil {
		observability.IssuesProcessed().WithLabelValues("invalid_request").Inc()
		return dto.IssueResponse{}, err
	}

	if _, err := s.teachers.Get(ctx, input.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.IssuesProcessed().WithLabelValues("not_found").Inc()
			return dto.IssueResponse{}, ErrTeacherNotFound
		}
		return dto.IssueResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "issue.process", trace.WithAttributes(
		attribute.Int("issue.teacher_id", int(input.TeacherID)),
		attribute.Int("issue.requested_lines", len(input.Lines)),
	))
	defer span.End()

	// The signature is persisted before any stock mutation so the issue
	// header always references a stored asset.
	sigPath, err := s.signatures.Save(spanCtx, input.Signature, fmt.Sprintf("issue_t%d", input.TeacherID))
	if err != nil {
		observability.SignatureFailures().Inc()
		observability.IssuesProcessed().WithLabelValues("signature_error").Inc()
		span.RecordError(err)
		if errors.Is(err, signature.ErrEmptyPayload) {
			return dto.IssueResponse{}, ErrSignatureRequired
		}
		return dto.IssueResponse{}, fmt.Errorf("%w: %s", ErrSignatureInvalid, err)
	}

	var metadata datatypes.JSONMap
	if input.PairingCode != "" {
		metadata = datatypes.JSONMap{"pairing_code": input.PairingCode}
	}

	var (
		issue     models.Issue
		lowStock  []models.Item
		committed int
	)

	err = s.txRunner.Run(spanCtx, func(repos repository.TxRepos) error {
		issue = models.Issue{
			TeacherID:     input.TeacherID,
			UserID:        input.ActorID,
			SignaturePath: sigPath,
			Metadata:      metadata,
		}
		if err := repos.Issues.Create(spanCtx, &issue); err != nil {
			return err
		}

		// First write wins: the repository only updates an empty path.
		if err := repos.Teachers.SetReferenceSignature(spanCtx, input.TeacherID, sigPath); err != nil {
			return err
		}

		for _, line := range lines {
			item, err := repos.Items.Get(spanCtx, line.itemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					skipped = append(skipped, line.key)
					observability.IssueLinesSkipped().WithLabelValues("unresolved_item").Inc()
					s.logger.Warn().Str("item_key", line.key).Msg("issuance line references unknown item, skipping")
					continue
				}
				return err
			}

			if item.StockOnHand < line.qty {
				observability.StockRejections().Inc()
				return fmt.Errorf("%w for %s: have %d, need %d", ErrInsufficientStock, item.Name, item.StockOnHand, line.qty)
			}

			if err := repos.Issues.CreateLine(spanCtx, &models.IssueLine{
				IssueID: issue.ID,
				ItemID:  item.ID,
				Qty:     line.qty,
			}); err != nil {
				return err
			}

			updated, err := s.ledger.Adjust(spanCtx, repos, AdjustmentInput{
				ItemID:  item.ID,
				Delta:   -line.qty,
				Event:   models.EventIssue,
				RefType: "issue",
				RefID:   &issue.ID,
				ActorID: &input.ActorID,
			})
			if err != nil {
				return err
			}

			committed++
			if updated.BelowReorderLevel() {
				lowStock = append(lowStock, updated)
			}
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrInsufficientStock) {
			observability.IssuesProcessed().WithLabelValues("insufficient_stock").Inc()
		} else {
			observability.IssuesProcessed().WithLabelValues("error").Inc()
		}
		return dto.IssueResponse{}, err
	}

	observability.IssuesProcessed().WithLabelValues("success").Inc()
	observability.LedgerAdjustments().WithLabelValues(models.EventIssue).Add(float64(committed))

	for _, item := range lowStock {
		s.alerter.Notify(item)
	}

	s.logger.Info().
		Uint("issue_id", issue.ID).
		Uint("teacher_id", input.TeacherID).
		Int("lines", committed).
		Int("skipped", len(skipped)).
		Msg("issue processed")

	persisted, err := s.issues.Get(ctx, issue.ID)
	if err != nil {
		return dto.IssueResponse{}, err
	}

	return dto.NewIssueResponse(persisted, skipped), nil
}

func (s *issueService) Get(ctx context.Context, id uint) (dto.IssueResponse, error) {
	issue, err := s.issues.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.IssueResponse{}, ErrIssueNotFound
		}
		return dto.IssueResponse{}, err
	}
	return dto.NewIssueResponse(issue, nil), nil
}

func (s *issueService) List(ctx context.Context, page, pageSize int) (dto.IssueListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	issues, total, err := s.issues.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return dto.IssueListResponse{}, err
	}

	return dto.IssueListResponse{
		Issues:   dto.NewIssueResponseSlice(issues),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// parseRequestedLines normalizes the untrusted request map. Keys that are not
// numeric ids are reported as skipped; quantities must parse as integers
// (strings or numbers) and non-positive quantities drop the line silently.
// Lines come back sorted by item id so processing order is deterministic.
func parseRequestedLines(raw map[string]json.RawMessage) ([]requestedLine, []string, error) {
	lines := make([]requestedLine, 0, len(raw))
	var skipped []string

	for key, value := range raw {
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 32)
		if err != nil {
			skipped = append(skipped, key)
			observability.IssueLinesSkipped().WithLabelValues("unresolved_item").Inc()
			continue
		}

		qty, err := parseQuantity(value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: item %s", ErrInvalidQuantity, key)
		}
		if qty <= 0 {
			observability.IssueLinesSkipped().WithLabelValues("non_positive_qty").Inc()
			continue
		}

		lines = append(lines, requestedLine{key: key, itemID: uint(id), qty: qty})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].itemID < lines[j].itemID })
	sort.Strings(skipped)

	return lines, skipped, nil
}

func parseQuantity(raw json.RawMessage) (int, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("quantity %v is not an integer", v)
		}
		return int(v), nil
	case string:
		qty, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, err
		}
		return qty, nil
	default:
		return 0, fmt.Errorf("unsupported quantity type %T", value)
	}
}
