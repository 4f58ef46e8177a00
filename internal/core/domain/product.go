package domain

// Product is a catalog item. Visits is maintained by the system and only
// grows through anonymous single-item reads.
type Product struct {
	ID     int64   `json:"id" bson:"_id"`
	SKU    string  `json:"sku" bson:"sku"`
	Name   string  `json:"name" bson:"name"`
	Price  float64 `json:"price" bson:"price"`
	Brand  string  `json:"brand" bson:"brand"`
	Visits int64   `json:"visits" bson:"visits"`
}

// ProductFields is the client-writable subset of a Product. Visits is
// deliberately absent: a caller supplying it is ignored.
type ProductFields struct {
	SKU   *string  `json:"sku"`
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Brand *string  `json:"brand"`
}

func (f ProductFields) IsEmpty() bool {
	return f.SKU == nil && f.Name == nil && f.Price == nil && f.Brand == nil
}
