package repository

import (
	"github.com/deppfellow/produce-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Produce *ProduceRepository
}

// NewRepositories builds every repository on top of the server's storage
// handle.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Produce: NewProduceRepository(s.DB),
	}
}
