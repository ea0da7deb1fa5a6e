package handler

import (
	"strconv"

	"github.com/deppfellow/produce-api/internal/model"
	"github.com/deppfellow/produce-api/internal/validation"
)

// ProduceIDRequest carries the :id path parameter. The raw value is bound as
// a string so a malformed id surfaces as a validation error.
type ProduceIDRequest struct {
	RawID string `param:"id" json:"-"`
	ID    int64  `json:"-"`
}

func (r *ProduceIDRequest) Validate() error {
	id, err := strconv.ParseInt(r.RawID, 10, 64)
	if err != nil {
		return validation.CustomValidationErrors{
			{Field: "id", Message: "Invalid id"},
		}
	}

	r.ID = id
	return nil
}

type CreateProduceRequest struct {
	Name       string   `json:"name" validate:"required"`
	Type       string   `json:"type" validate:"required,oneof=fruit vegetable"`
	PricePerKg *float64 `json:"pricePerKg" validate:"required,gte=0"`
}

func (r *CreateProduceRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateProduceRequest) toModel() model.CreateProduce {
	return model.CreateProduce{
		Name:       r.Name,
		Type:       model.Type(r.Type),
		PricePerKg: *r.PricePerKg,
	}
}

// UpdateProduceRequest is a partial update: absent fields stay untouched,
// present ones follow the create rules.
type UpdateProduceRequest struct {
	ProduceIDRequest

	Name       *string  `json:"name" validate:"omitnil,min=1"`
	Type       *string  `json:"type" validate:"omitnil,oneof=fruit vegetable"`
	PricePerKg *float64 `json:"pricePerKg" validate:"omitnil,gte=0"`
}

func (r *UpdateProduceRequest) Validate() error {
	if err := r.ProduceIDRequest.Validate(); err != nil {
		return err
	}
	return validation.Struct(r)
}

func (r *UpdateProduceRequest) toPatch() model.ProducePatch {
	patch := model.ProducePatch{
		Name:       r.Name,
		PricePerKg: r.PricePerKg,
	}
	if r.Type != nil {
		t := model.Type(*r.Type)
		patch.Type = &t
	}
	return patch
}

// EmptyRequest is used by routes that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
