package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/produce-api/internal/config"
	"github.com/deppfellow/produce-api/internal/errs"
	"github.com/deppfellow/produce-api/internal/model"
	"github.com/deppfellow/produce-api/internal/repository"
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *ProduceService {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.Path = config.MemoryPath
	logger := zerolog.Nop()

	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DB.Close() })

	services, err := NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)
	return services.Produce
}

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestProduceServiceCreateRejectsUnknownType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), model.CreateProduce{Name: "Rock", Type: "mineral", PricePerKg: 1})
	httpErr := requireStatus(t, err, http.StatusBadRequest)
	require.Equal(t, "Invalid type", httpErr.Message)
	require.Equal(t, "type", httpErr.Errors[0].Field)
}

func TestProduceServiceNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	httpErr := requireStatus(t, err, http.StatusNotFound)
	require.Equal(t, "PRODUCE_NOT_FOUND", httpErr.Code)

	name := "Ghost"
	_, err = svc.Update(ctx, 1, model.ProducePatch{Name: &name})
	requireStatus(t, err, http.StatusNotFound)

	requireStatus(t, svc.Delete(ctx, 1), http.StatusNotFound)
}

func TestProduceServiceUpdateValidatesType(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateProduce{Name: "Apple", Type: model.TypeFruit, PricePerKg: 2.5})
	require.NoError(t, err)

	bad := model.Type("mineral")
	_, err = svc.Update(ctx, created.ID, model.ProducePatch{Type: &bad})
	requireStatus(t, err, http.StatusBadRequest)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, model.TypeFruit, got.Type)
}

func TestProduceServiceLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateProduce{Name: "Apple", Type: model.TypeFruit, PricePerKg: 2.5})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	price := 3.0
	updated, err := svc.Update(ctx, created.ID, model.ProducePatch{PricePerKg: &price})
	require.NoError(t, err)
	require.Equal(t, 3.0, updated.PricePerKg)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Produce{*updated}, list)

	require.NoError(t, svc.Delete(ctx, created.ID))

	require.NoError(t, svc.Reset(ctx))
	again, err := svc.Create(ctx, model.CreateProduce{Name: "Apple", Type: model.TypeFruit, PricePerKg: 2.5})
	require.NoError(t, err)
	require.Equal(t, int64(1), again.ID)
}
