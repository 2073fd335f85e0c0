package domain

import "time"

// Quote is a persisted calculation: the input that produced it, summary
// columns for listing, and the full result frozen as JSON. Persistence is a
// caller concern; the calculation engine itself never touches storage.
type Quote struct {
	ID                 string         `json:"id" bson:"_id,omitempty"`
	BuyerID            string         `json:"buyer_id" bson:"buyer_id"`
	ProductName        string         `json:"product_name" bson:"product_name"`
	HSCode             string         `json:"hs_code" bson:"hs_code"`
	OriginCountry      string         `json:"origin_country" bson:"origin_country"`
	DestinationCountry string         `json:"destination_country" bson:"destination_country"`
	ShippingMethod     ShippingMethod `json:"shipping_method" bson:"shipping_method"`
	Incoterm           Incoterm       `json:"incoterm" bson:"incoterm"`
	Quantity           int            `json:"quantity" bson:"quantity"`
	Currency           string         `json:"currency" bson:"currency"`
	TotalLandedCost    float64        `json:"total_landed_cost" bson:"total_landed_cost"`
	CostPerUnit        float64        `json:"cost_per_unit" bson:"cost_per_unit"`
	CalculationVersion string         `json:"calculation_version" bson:"calculation_version"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`

	// Input and Result are the request and the full LandedCostResult frozen
	// as JSON at calculation time, so replays render exactly what the buyer saw
	// even after rate tables or the calculation version change.
	Input  []byte `json:"-" bson:"input"`
	Result []byte `json:"-" bson:"result"`
}
