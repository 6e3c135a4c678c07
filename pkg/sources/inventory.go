package sources

import (
	"context"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

// Field resolution order for material records:
//
//	id:      id, material_id, sku
//	name:    name, material_name, title
//	unit:    unit, unit_of_measure, uom
//	stock:   current_stock, stock, quantity, qty_on_hand
//	minimum: minimum_stock_level, minimum_stock, min_stock, reorder_level
//	price:   unit_price, price, cost_per_unit
var (
	materialIDFields      = []string{"id", "material_id", "sku"}
	materialNameFields    = []string{"name", "material_name", "title"}
	materialUnitFields    = []string{"unit", "unit_of_measure", "uom"}
	materialStockFields   = []string{"current_stock", "stock", "quantity", "qty_on_hand"}
	materialMinimumFields = []string{"minimum_stock_level", "minimum_stock", "min_stock", "reorder_level"}
	materialPriceFields   = []string{"unit_price", "price", "cost_per_unit"}
)

type materialsAdapter struct {
	store client.RecordLister
	path  string
}

func NewMaterialsAdapter(store client.RecordLister) Adapter {
	return &materialsAdapter{store: store, path: "/api/materials"}
}

func (a *materialsAdapter) Domain() domain.Name { return domain.DomainMaterials }

func (a *materialsAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.Material, 0, len(rows))
	for _, row := range rows {
		id, ok := pickString(row, materialIDFields...)
		if !ok {
			continue
		}
		name, _ := pickString(row, materialNameFields...)
		unit, _ := pickString(row, materialUnitFields...)
		stock, _ := pickFloat(row, materialStockFields...)
		minimum, _ := pickFloat(row, materialMinimumFields...)
		price, _ := pickFloat(row, materialPriceFields...)

		items = append(items, domain.Material{
			ID:           id,
			Name:         name,
			Unit:         unit,
			CurrentStock: stock,
			MinimumStock: minimum,
			UnitPrice:    price,
		})
	}

	snap.Materials = domain.Collected(items)
	return nil
}

// Field resolution order for supplier/material order records:
//
//	id:       id, order_id
//	supplier: supplier_name, supplier, vendor
//	material: material_id, material, sku
//	quantity: quantity, qty, amount_ordered
//	cost:     cost, total_cost, total_amount, total
//	status:   status, order_status
//	ordered:  ordered_at, order_date, created_at, date
var (
	materialOrderIDFields       = []string{"id", "order_id"}
	materialOrderSupplierFields = []string{"supplier_name", "supplier", "vendor"}
	materialOrderMaterialFields = []string{"material_id", "material", "sku"}
	materialOrderQuantityFields = []string{"quantity", "qty", "amount_ordered"}
	materialOrderCostFields     = []string{"cost", "total_cost", "total_amount", "total"}
	materialOrderStatusFields   = []string{"status", "order_status"}
	materialOrderOrderedFields  = []string{"ordered_at", "order_date", "created_at", "date"}
)

type materialOrdersAdapter struct {
	store client.RecordLister
	path  string
}

func NewMaterialOrdersAdapter(store client.RecordLister) Adapter {
	return &materialOrdersAdapter{store: store, path: "/api/material-orders"}
}

func (a *materialOrdersAdapter) Domain() domain.Name { return domain.DomainMaterialOrders }

func (a *materialOrdersAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.MaterialOrder, 0, len(rows))
	for _, row := range rows {
		id, ok := pickString(row, materialOrderIDFields...)
		if !ok {
			continue
		}
		supplier, _ := pickString(row, materialOrderSupplierFields...)
		materialID, _ := pickString(row, materialOrderMaterialFields...)
		quantity, _ := pickFloat(row, materialOrderQuantityFields...)
		cost, _ := pickFloat(row, materialOrderCostFields...)
		status, _ := pickString(row, materialOrderStatusFields...)
		orderedAt, _ := pickTime(row, materialOrderOrderedFields...)

		items = append(items, domain.MaterialOrder{
			ID:         id,
			Supplier:   supplier,
			MaterialID: materialID,
			Quantity:   quantity,
			Cost:       cost,
			Status:     status,
			OrderedAt:  orderedAt,
		})
	}

	snap.MaterialOrders = domain.Collected(items)
	return nil
}
