package domain

// Brand groups products under a unique name.
type Brand struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
}

// BrandFields is the client-writable subset of a Brand.
type BrandFields struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

func (f BrandFields) IsEmpty() bool {
	return f.Name == nil && f.Category == nil
}
