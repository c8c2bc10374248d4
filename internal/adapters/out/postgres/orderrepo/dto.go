// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate spans several tables: the orders row
// itself plus its line items, payments, shipments, inventory units,
// adjustments, return authorizations and the state event log.
package orderrepo

import (
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Child collections map to their own tables keyed by order_id; deleting an
// order cascades through the whole graph.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"uniqueIndex"`
	Email  string

	State         int `gorm:"index"`
	PaymentState  int
	ShipmentState int

	ItemTotal       decimal.Decimal `gorm:"type:numeric"`
	AdjustmentTotal decimal.Decimal `gorm:"type:numeric"`
	PaymentTotal    decimal.Decimal `gorm:"type:numeric"`
	Total           decimal.Decimal `gorm:"type:numeric"`

	BillAddress AddressDTO `gorm:"embedded;embeddedPrefix:bill_"`
	ShipAddress AddressDTO `gorm:"embedded;embeddedPrefix:ship_"`

	CompletedAt *time.Time
	Version     int

	CreatedAt time.Time
	UpdatedAt time.Time

	LineItems            []LineItemDTO            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments             []PaymentDTO             `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipments            []ShipmentDTO            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	InventoryUnits       []InventoryUnitDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Adjustments          []AdjustmentDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ReturnAuthorizations []ReturnAuthorizationDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StateEvents          []StateEventDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded postal address within the order table.
// An empty street means the address was never collected.
type AddressDTO struct {
	FirstName  string
	LastName   string
	Street     string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// LineItemDTO represents one purchased variant within an order.
type LineItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	VariantID uuid.UUID `gorm:"type:uuid"`

	Price    decimal.Decimal `gorm:"type:numeric"`
	Quantity int
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// PaymentDTO represents a payment promised against an order.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	Amount decimal.Decimal `gorm:"type:numeric"`
	Source string
	Status int
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

// ShipmentDTO represents one shipment of an order.
type ShipmentDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	MethodID uuid.UUID `gorm:"type:uuid"`

	Status    int
	CreatedAt time.Time
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// InventoryUnitDTO represents one physical unit allocated to an order.
type InventoryUnitDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	VariantID  uuid.UUID  `gorm:"type:uuid"`
	ShipmentID *uuid.UUID `gorm:"type:uuid;index"`

	Status int
}

// TableName specifies the database table name for inventory units.
func (InventoryUnitDTO) TableName() string {
	return "inventory_units"
}

// AdjustmentDTO represents a charge or credit applied to an order. The
// originator columns record which tax rate or shipping method produced it;
// both are null for ad hoc adjustments.
type AdjustmentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	Label          string
	Amount         decimal.Decimal `gorm:"type:numeric"`
	Mandatory      bool
	OriginatorID   *uuid.UUID `gorm:"type:uuid"`
	OriginatorType string
}

// TableName specifies the database table name for adjustments.
func (AdjustmentDTO) TableName() string {
	return "adjustments"
}

// ReturnAuthorizationDTO represents an approved return for an order.
type ReturnAuthorizationDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	Number    string `gorm:"uniqueIndex"`
	Status    int
	CreatedAt time.Time

	Units []ReturnAuthorizationUnitDTO `gorm:"foreignKey:ReturnAuthorizationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return authorizations.
func (ReturnAuthorizationDTO) TableName() string {
	return "return_authorizations"
}

// ReturnAuthorizationUnitDTO links a return authorization to one of the
// order's inventory units.
type ReturnAuthorizationUnitDTO struct {
	ReturnAuthorizationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	InventoryUnitID       uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for authorization unit links.
func (ReturnAuthorizationUnitDTO) TableName() string {
	return "return_authorization_units"
}

// StateEventDTO represents one entry of the order's lifecycle audit log.
// The autoincrement ID preserves the append order.
type StateEventDTO struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	Name          int
	PreviousState int
	At            time.Time
}

// TableName specifies the database table name for state events.
func (StateEventDTO) TableName() string {
	return "state_events"
}

// fromDomain converts an order domain aggregate to its database
// representation, including the full child graph.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	dto := OrderDTO{
		ID:              orderID,
		Number:          aggregate.Number().String(),
		Email:           aggregate.Email(),
		State:           int(aggregate.State()),
		PaymentState:    int(aggregate.PaymentState()),
		ShipmentState:   int(aggregate.ShipmentState()),
		ItemTotal:       aggregate.ItemTotal().Decimal(),
		AdjustmentTotal: aggregate.AdjustmentTotal().Decimal(),
		PaymentTotal:    aggregate.PaymentTotal().Decimal(),
		Total:           aggregate.Total().Decimal(),
		CompletedAt:     aggregate.CompletedAt(),
		Version:         aggregate.Version(),
	}

	if addr := aggregate.BillAddress(); addr != nil {
		dto.BillAddress = addressFromDomain(*addr)
	}
	if addr := aggregate.ShipAddress(); addr != nil {
		dto.ShipAddress = addressFromDomain(*addr)
	}

	for _, li := range aggregate.LineItems() {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:        li.ID().Bytes(),
			OrderID:   orderID,
			VariantID: li.VariantID().Bytes(),
			Price:     li.Price().Decimal(),
			Quantity:  li.Quantity(),
		})
	}

	for _, p := range aggregate.Payments() {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:      p.ID().Bytes(),
			OrderID: orderID,
			Amount:  p.Amount().Decimal(),
			Source:  p.Source(),
			Status:  int(p.Status()),
		})
	}

	for _, s := range aggregate.Shipments() {
		dto.Shipments = append(dto.Shipments, ShipmentDTO{
			ID:        s.ID().Bytes(),
			OrderID:   orderID,
			MethodID:  s.MethodID().Bytes(),
			Status:    int(s.Status()),
			CreatedAt: s.CreatedAt(),
		})
	}

	for _, iu := range aggregate.InventoryUnits() {
		var shipmentID *uuid.UUID
		if id := iu.ShipmentID(); id != nil {
			raw := id.Bytes()
			shipmentID = &raw
		}
		dto.InventoryUnits = append(dto.InventoryUnits, InventoryUnitDTO{
			ID:         iu.ID().Bytes(),
			OrderID:    orderID,
			VariantID:  iu.VariantID().Bytes(),
			ShipmentID: shipmentID,
			Status:     int(iu.Status()),
		})
	}

	for _, a := range aggregate.Adjustments() {
		var originatorID *uuid.UUID
		if id := a.OriginatorID(); id != nil {
			raw := id.Bytes()
			originatorID = &raw
		}
		dto.Adjustments = append(dto.Adjustments, AdjustmentDTO{
			ID:             a.ID().Bytes(),
			OrderID:        orderID,
			Label:          a.Label(),
			Amount:         a.Amount().Decimal(),
			Mandatory:      a.Mandatory(),
			OriginatorID:   originatorID,
			OriginatorType: a.OriginatorType(),
		})
	}

	for _, ra := range aggregate.ReturnAuthorizations() {
		raDTO := ReturnAuthorizationDTO{
			ID:        ra.ID().Bytes(),
			OrderID:   orderID,
			Number:    ra.Number(),
			Status:    int(ra.Status()),
			CreatedAt: ra.CreatedAt(),
		}
		for _, unitID := range ra.UnitIDs() {
			raDTO.Units = append(raDTO.Units, ReturnAuthorizationUnitDTO{
				ReturnAuthorizationID: raDTO.ID,
				InventoryUnitID:       unitID.Bytes(),
			})
		}
		dto.ReturnAuthorizations = append(dto.ReturnAuthorizations, raDTO)
	}

	for _, e := range aggregate.StateEvents() {
		dto.StateEvents = append(dto.StateEvents, StateEventDTO{
			OrderID:       orderID,
			Name:          int(e.Name()),
			PreviousState: int(e.PreviousState()),
			At:            e.At(),
		})
	}

	return dto
}

func addressFromDomain(addr kernel.Address) AddressDTO {
	return AddressDTO{
		FirstName:  addr.FirstName(),
		LastName:   addr.LastName(),
		Street:     addr.Street(),
		City:       addr.City(),
		Region:     addr.Region(),
		PostalCode: addr.PostalCode(),
		Country:    addr.Country(),
	}
}

func addressToDomain(dto AddressDTO) (*kernel.Address, error) {
	if dto.Street == "" {
		return nil, nil
	}
	addr, err := kernel.NewAddress(
		dto.FirstName, dto.LastName, dto.Street,
		dto.City, dto.Region, dto.PostalCode, dto.Country,
	)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// toDomain converts a loaded DTO graph back into an order aggregate.
// Adjustment originators come back unbound: until the checkout re-binds
// them to a live tax rate or shipping method, they keep their stored
// amounts.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	billAddress, err := addressToDomain(dto.BillAddress)
	if err != nil {
		return nil, err
	}
	shipAddress, err := addressToDomain(dto.ShipAddress)
	if err != nil {
		return nil, err
	}

	params := order.RestoreOrderParams{
		ID:              id,
		Number:          number,
		Email:           dto.Email,
		State:           order.State(dto.State),
		PaymentState:    order.PaymentState(dto.PaymentState),
		ShipmentState:   order.ShipmentState(dto.ShipmentState),
		ItemTotal:       kernel.NewMoneyFromDecimal(dto.ItemTotal),
		AdjustmentTotal: kernel.NewMoneyFromDecimal(dto.AdjustmentTotal),
		PaymentTotal:    kernel.NewMoneyFromDecimal(dto.PaymentTotal),
		Total:           kernel.NewMoneyFromDecimal(dto.Total),
		BillAddress:     billAddress,
		ShipAddress:     shipAddress,
		CompletedAt:     dto.CompletedAt,
		Version:         dto.Version,
	}

	for _, liDTO := range dto.LineItems {
		liID, liErr := kernel.UUIDFromBytes(liDTO.ID[:])
		if liErr != nil {
			return nil, liErr
		}
		variantID, liErr := kernel.UUIDFromBytes(liDTO.VariantID[:])
		if liErr != nil {
			return nil, liErr
		}
		li, liErr := order.RestoreLineItem(liID, variantID, kernel.NewMoneyFromDecimal(liDTO.Price), liDTO.Quantity)
		if liErr != nil {
			return nil, liErr
		}
		params.LineItems = append(params.LineItems, li)
	}

	for _, pDTO := range dto.Payments {
		pID, pErr := kernel.UUIDFromBytes(pDTO.ID[:])
		if pErr != nil {
			return nil, pErr
		}
		p, pErr := order.RestorePayment(pID, kernel.NewMoneyFromDecimal(pDTO.Amount), pDTO.Source, order.PaymentStatus(pDTO.Status))
		if pErr != nil {
			return nil, pErr
		}
		params.Payments = append(params.Payments, p)
	}

	units, unitsByShipment, err := inventoryUnitsToDomain(dto.InventoryUnits)
	if err != nil {
		return nil, err
	}
	params.InventoryUnits = units

	for _, sDTO := range dto.Shipments {
		sID, sErr := kernel.UUIDFromBytes(sDTO.ID[:])
		if sErr != nil {
			return nil, sErr
		}
		methodID, sErr := kernel.UUIDFromBytes(sDTO.MethodID[:])
		if sErr != nil {
			return nil, sErr
		}
		s, sErr := order.RestoreShipment(sID, methodID, order.ShipmentStatus(sDTO.Status), unitsByShipment[sDTO.ID], sDTO.CreatedAt)
		if sErr != nil {
			return nil, sErr
		}
		params.Shipments = append(params.Shipments, s)
	}

	for _, aDTO := range dto.Adjustments {
		aID, aErr := kernel.UUIDFromBytes(aDTO.ID[:])
		if aErr != nil {
			return nil, aErr
		}
		var originatorID *kernel.UUID
		if aDTO.OriginatorID != nil {
			oID, oErr := kernel.UUIDFromBytes((*aDTO.OriginatorID)[:])
			if oErr != nil {
				return nil, oErr
			}
			originatorID = &oID
		}
		a, aErr := order.RestoreAdjustment(
			aID, aDTO.Label, kernel.NewMoneyFromDecimal(aDTO.Amount),
			aDTO.Mandatory, originatorID, aDTO.OriginatorType,
		)
		if aErr != nil {
			return nil, aErr
		}
		params.Adjustments = append(params.Adjustments, a)
	}

	for _, raDTO := range dto.ReturnAuthorizations {
		raID, raErr := kernel.UUIDFromBytes(raDTO.ID[:])
		if raErr != nil {
			return nil, raErr
		}
		unitIDs := make([]kernel.UUID, 0, len(raDTO.Units))
		for _, link := range raDTO.Units {
			unitID, linkErr := kernel.UUIDFromBytes(link.InventoryUnitID[:])
			if linkErr != nil {
				return nil, linkErr
			}
			unitIDs = append(unitIDs, unitID)
		}
		ra, raErr := order.RestoreReturnAuthorization(
			raID, raDTO.Number, order.ReturnAuthorizationStatus(raDTO.Status), unitIDs, raDTO.CreatedAt,
		)
		if raErr != nil {
			return nil, raErr
		}
		params.ReturnAuthorizations = append(params.ReturnAuthorizations, ra)
	}

	for _, eDTO := range dto.StateEvents {
		params.StateEvents = append(params.StateEvents, order.RestoreStateEvent(
			order.Event(eDTO.Name), order.State(eDTO.PreviousState), eDTO.At,
		))
	}

	return order.RestoreOrder(params)
}

func inventoryUnitsToDomain(dtos []InventoryUnitDTO) ([]*order.InventoryUnit, map[uuid.UUID][]*order.InventoryUnit, error) {
	units := make([]*order.InventoryUnit, 0, len(dtos))
	byShipment := make(map[uuid.UUID][]*order.InventoryUnit)

	for _, iuDTO := range dtos {
		iuID, err := kernel.UUIDFromBytes(iuDTO.ID[:])
		if err != nil {
			return nil, nil, err
		}
		variantID, err := kernel.UUIDFromBytes(iuDTO.VariantID[:])
		if err != nil {
			return nil, nil, err
		}
		var shipmentID *kernel.UUID
		if iuDTO.ShipmentID != nil {
			sID, sErr := kernel.UUIDFromBytes((*iuDTO.ShipmentID)[:])
			if sErr != nil {
				return nil, nil, sErr
			}
			shipmentID = &sID
		}
		iu, err := order.RestoreInventoryUnit(iuID, variantID, order.InventoryUnitStatus(iuDTO.Status), shipmentID)
		if err != nil {
			return nil, nil, err
		}
		units = append(units, iu)
		if iuDTO.ShipmentID != nil {
			byShipment[*iuDTO.ShipmentID] = append(byShipment[*iuDTO.ShipmentID], iu)
		}
	}

	return units, byShipment, nil
}
