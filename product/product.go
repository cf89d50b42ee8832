/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package product defines the Product record exchanged with the catalog
// service, together with its JSON wire contract.
//
// Product declares itself to the global inspector in init, so it can be
// created with inspect.CreateInstance and its identifier field found by
// the "id" marker.
package product

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"

	"dirpx.dev/inspect"
	"dirpx.dev/inspect/descriptor"
)

const (
	// ProductionLayout is the wire layout of DateOfProduction.
	ProductionLayout = "2006-01-02@15:04:05"
	// ExpiryLayout is the wire layout of DateOfExpiry.
	ExpiryLayout = "2006-01-02"
)

// MarkerID marks the identifier field.
const MarkerID descriptor.Marker = "id"

// Product is a catalog record. Nil fields are absent.
type Product struct {
	ID             *int64 `mark:"id"`
	Name           string
	Price          *decimal.Decimal
	ProductionDate *time.Time
	ExpiryDate     *time.Time
}

func init() {
	inspect.MustDeclare(Declaration)
}

// Declaration is the inspector declaration of Product.
var Declaration = descriptor.Declare[Product]().
	Constructor(New).
	RestrictedConstructor(newProduct).
	Implements(
		reflect.TypeFor[json.Marshaler](),
		reflect.TypeFor[json.Unmarshaler](),
		reflect.TypeFor[fmt.Stringer](),
	)

// New returns an empty Product.
func New() *Product {
	return &Product{}
}

func newProduct(id int64, name string, price decimal.Decimal) *Product {
	return &Product{ID: &id, Name: name, Price: &price}
}

// outgoing fixes the field order and tag names of the encoded form.
type outgoing struct {
	ProductID        *int64      `json:"ProductID,omitempty"`
	ProductName      string      `json:"ProductName,omitempty"`
	ProductPrice     json.Number `json:"ProductPrice,omitempty"`
	DateOfProduction string      `json:"DateOfProduction,omitempty"`
	DateOfExpiry     string      `json:"DateOfExpiry,omitempty"`
}

type incoming struct {
	ProductID        *int64           `json:"ProductID"`
	ProductName      string           `json:"ProductName"`
	ProductPrice     *decimal.Decimal `json:"ProductPrice"`
	DateOfProduction string           `json:"DateOfProduction"`
	DateOfExpiry     string           `json:"DateOfExpiry"`
}

// MarshalJSON implements json.Marshaler. Dates are written in UTC.
func (p Product) MarshalJSON() ([]byte, error) {
	w := outgoing{ProductID: p.ID, ProductName: p.Name}
	if p.Price != nil {
		w.ProductPrice = json.Number(p.Price.String())
	}
	if p.ProductionDate != nil {
		w.DateOfProduction = p.ProductionDate.UTC().Format(ProductionLayout)
	}
	if p.ExpiryDate != nil {
		w.DateOfExpiry = p.ExpiryDate.UTC().Format(ExpiryLayout)
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown fields are ignored and
// dates are read as UTC.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w incoming
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("product: decode: %w", err)
	}
	out := Product{ID: w.ProductID, Name: w.ProductName, Price: w.ProductPrice}
	if w.DateOfProduction != "" {
		t, err := time.ParseInLocation(ProductionLayout, w.DateOfProduction, time.UTC)
		if err != nil {
			return fmt.Errorf("product: DateOfProduction: %w", err)
		}
		out.ProductionDate = &t
	}
	if w.DateOfExpiry != "" {
		t, err := time.ParseInLocation(ExpiryLayout, w.DateOfExpiry, time.UTC)
		if err != nil {
			return fmt.Errorf("product: DateOfExpiry: %w", err)
		}
		out.ExpiryDate = &t
	}
	*p = out
	return nil
}

// String implements fmt.Stringer.
func (p Product) String() string {
	return fmt.Sprintf("Product{id=%s, name=%q, price=%s, productionDate=%s, expiryDate=%s}",
		orNil(p.ID), p.Name, orNil(p.Price), orNil(p.ProductionDate), orNil(p.ExpiryDate))
}

func orNil[T any](v *T) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprint(*v)
}
