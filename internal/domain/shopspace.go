package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ShopSpace is a named rectangular room owned by a username, holding an
// ordered list of equipment placements embedded in a single jsonb
// column. Username references the identity store without a foreign key.
type ShopSpace struct {
	ShopID            string        `json:"shop_id" gorm:"primaryKey"`
	Username          string        `json:"username" gorm:"index;not null"`
	ShopName          string        `json:"shop_name" gorm:"not null"`
	CreationTimestamp time.Time     `json:"creation_timestamp" gorm:"index;not null"`
	Length            float64       `json:"length" gorm:"not null"`
	Width             float64       `json:"width" gorm:"not null"`
	Height            float64       `json:"height" gorm:"not null"`
	Equipment         PlacementList `json:"equipment" gorm:"type:jsonb;not null;default:'[]'"`
}

// Placement is one equipment instance's position inside a shop space.
// Coordinates are unconstrained; bounds-checking against the room is
// the caller's concern. EquipmentID references the equipment store.
type Placement struct {
	EquipmentID uint      `json:"equipment_id"`
	DateAdded   time.Time `json:"date_added"`
	X           float64   `json:"x_coordinate"`
	Y           float64   `json:"y_coordinate"`
	Z           float64   `json:"z_coordinate"`
	RotationDeg float64   `json:"rotation_deg"`
}

// PlacementList is the ordered placement container stored in the
// equipment column. The in-memory representation is a plain slice;
// serialization happens only at the store boundary via Valuer/Scanner.
// An empty list, never null, represents "no equipment".
type PlacementList []Placement

func (l PlacementList) Value() (driver.Value, error) {
	if l == nil {
		l = PlacementList{}
	}
	return json.Marshal([]Placement(l))
}

func (l *PlacementList) Scan(value interface{}) error {
	if value == nil {
		*l = PlacementList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for placement list: %T", value)
	}
	if len(data) == 0 {
		*l = PlacementList{}
		return nil
	}
	out := PlacementList{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

func (l PlacementList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Placement(l))
}

// WithoutEquipment returns a copy with every entry matching the
// equipment id dropped. Duplicated placements are all removed.
func (l PlacementList) WithoutEquipment(equipmentID uint) PlacementList {
	out := make(PlacementList, 0, len(l))
	for _, p := range l {
		if p.EquipmentID != equipmentID {
			out = append(out, p)
		}
	}
	return out
}

// IndexOf returns the index of the first entry matching the equipment
// id, or -1. With duplicated placements only the first is addressable.
func (l PlacementList) IndexOf(equipmentID uint) int {
	for i, p := range l {
		if p.EquipmentID == equipmentID {
			return i
		}
	}
	return -1
}
