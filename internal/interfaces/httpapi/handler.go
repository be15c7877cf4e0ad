package httpapi

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services groups the read models the handlers serve. Health may be nil.
type Services struct {
	Standings *usecase.LeagueStandingService
	Transfers *usecase.TransferService
	Live      *usecase.LiveScoreService
	Teams     *usecase.TeamService
	Health    HealthChecker
}

type Handler struct {
	leagueStandingService *usecase.LeagueStandingService
	transferService       *usecase.TransferService
	liveScoreService      *usecase.LiveScoreService
	teamService           *usecase.TeamService
	health                HealthChecker
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(svc Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueStandingService: svc.Standings,
		transferService:       svc.Transfers,
		liveScoreService:      svc.Live,
		teamService:           svc.Teams,
		health:                svc.Health,
		logger:                logger.Named("httpapi"),
		validator:             newValidator(),
	}
}

// newValidator reports fields by their JSON names so messages match the request body.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateRequest wraps validation failures in ErrInvalidInput, listing each
// failing field as "name: rule".
func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fe.Field()+": "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, strings.Join(problems, ", "))
}
