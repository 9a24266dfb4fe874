// Package trace provides day-by-day records of a batch's inspected run.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// OrderRecord captures the order pending at the end of a day.
type OrderRecord struct {
	Size             int `json:"size"`
	LeadTime         int `json:"lead_time"`
	DaysTillDelivery int `json:"days_till_delivery"`
}

// DayRecord captures one simulated day. Order is nil when no order is pending;
// that is the only representation of "no order".
type DayRecord struct {
	Day             int          `json:"day"`
	Demand          int          `json:"demand"`
	RoomsOccupied   int          `json:"rooms_occupied"`
	Consumed        int          `json:"consumed"`
	Shortage        int          `json:"shortage"`
	FirstFloorStart int          `json:"first_floor_start"`
	BasementStart   int          `json:"basement_start"`
	DidTransfer     bool         `json:"did_transfer"`
	Transferred     int          `json:"transferred"`
	FirstFloorEnd   int          `json:"first_floor_end"`
	BasementEnd     int          `json:"basement_end"`
	DaysTillReview  int          `json:"days_till_review"`
	Reviewed        bool         `json:"reviewed"`
	Order           *OrderRecord `json:"order"`
}

// DeliveryRecord captures an order landing in the basement.
type DeliveryRecord struct {
	Day       int `json:"day"`
	OrderSize int `json:"order_size"`
	Received  int `json:"received"`
}
