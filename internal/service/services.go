package service

import (
	"github.com/deppfellow/produce-api/internal/repository"
	"github.com/deppfellow/produce-api/internal/server"
)

type Services struct {
	Produce *ProduceService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Produce: NewProduceService(s, repos.Produce),
	}, nil
}
