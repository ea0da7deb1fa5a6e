package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/produce-api/internal/errs"
	"github.com/deppfellow/produce-api/internal/model"
	"github.com/deppfellow/produce-api/internal/repository"
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/rs/zerolog"
)

type ProduceService struct {
	server *server.Server
	repo   *repository.ProduceRepository
}

func NewProduceService(s *server.Server, repo *repository.ProduceRepository) *ProduceService {
	return &ProduceService{
		server: s,
		repo:   repo,
	}
}

// logger prefers the request-scoped logger stored on ctx.
func (s *ProduceService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.server.Logger
}

func newProduceNotFound() *errs.HTTPError {
	code := "PRODUCE_NOT_FOUND"
	return errs.NewNotFoundError("Not found", false, &code)
}

func invalidType(t model.Type) *errs.HTTPError {
	allowed := make([]string, 0, len(model.Types))
	for _, v := range model.Types {
		allowed = append(allowed, string(v))
	}

	return errs.NewBadRequestError("Invalid type", true, nil, []errs.FieldError{
		{
			Field: "type",
			Error: fmt.Sprintf("%q must be one of: %s", t, strings.Join(allowed, " ")),
		},
	}, nil)
}

func (s *ProduceService) Create(ctx context.Context, in model.CreateProduce) (*model.Produce, error) {
	if !in.Type.IsValid() {
		return nil, invalidType(in.Type)
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger(ctx).Info().
		Int64("produce_id", created.ID).
		Str("type", string(created.Type)).
		Msg("produce created")

	return created, nil
}

func (s *ProduceService) Get(ctx context.Context, id int64) (*model.Produce, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, newProduceNotFound()
	}
	return p, nil
}

func (s *ProduceService) List(ctx context.Context) ([]model.Produce, error) {
	return s.repo.List(ctx)
}

// Update validates the supplied category before writing, so a patch can
// never store a value that create would reject.
func (s *ProduceService) Update(ctx context.Context, id int64, patch model.ProducePatch) (*model.Produce, error) {
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, invalidType(*patch.Type)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, newProduceNotFound()
	}
	return updated, nil
}

func (s *ProduceService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return newProduceNotFound()
	}

	s.logger(ctx).Info().Int64("produce_id", id).Msg("produce deleted")
	return nil
}

// Reset empties the store and restarts ids. Only reachable outside
// production.
func (s *ProduceService) Reset(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return err
	}

	s.logger(ctx).Warn().Msg("produce table reset")
	return nil
}
