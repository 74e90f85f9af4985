package core

type (
	// Product is a single catalog entry. Products are immutable after the
	// catalog is constructed; Stock is a ceiling for cart validation, not a
	// live inventory count.
	Product struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Price       int    `json:"price"` // minor currency units
		Image       string `json:"image"`
		Description string `json:"description"`
		Stock       int    `json:"stock"`
	}
)
