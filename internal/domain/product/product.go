package product

import "errors"

// Product is a catalog entry. ID is assigned by the store and never changes.
type Product struct {
	ID          int64   `json:"id"`
	Description string  `json:"descricao"`
	Price       float64 `json:"valor"`
	Brand       string  `json:"marca"`
}

var ErrNotFound = errors.New("product not found")

// Input is the create/update payload. Any id sent by the client is ignored.
type Input struct {
	Description string  `json:"descricao" validate:"required"`
	Price       float64 `json:"valor" validate:"required,gt=0"`
	Brand       string  `json:"marca" validate:"required"`
}

func (in Input) Apply(id int64) Product {
	return Product{
		ID:          id,
		Description: in.Description,
		Price:       in.Price,
		Brand:       in.Brand,
	}
}
