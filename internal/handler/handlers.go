package handler

import (
	"github.com/deppfellow/produce-api/internal/server"
	"github.com/deppfellow/produce-api/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Produce *ProduceHandler
	Testing *TestingHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Produce: NewProduceHandler(s, services.Produce),
		Testing: NewTestingHandler(s, services.Produce),
	}
}
