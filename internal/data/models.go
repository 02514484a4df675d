package data

import (
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownTable   = errors.New("unknown table")
)

type Models struct {
	Movies    MovieModel
	Customers CustomerModel
}

func NewModels(store *Store) Models {
	return Models{
		Movies:    MovieModel{Store: store},
		Customers: CustomerModel{Store: store},
	}
}
