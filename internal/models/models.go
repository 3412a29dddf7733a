package models

import "time"

type Flavour struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	PricePerServing float64 `json:"price_per_serving"`
}

type Customer struct {
	ID            int    `json:"id"`
	Name          string `json:"name" validate:"required,min=2,max=150"`
	Email         string `json:"email" validate:"required,email"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

type Order struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	FlavourID  int       `json:"flavour_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	OrderDate  time.Time `json:"order_date"`
}

// CustomerOrder is the join projection for a customer's order history:
// the flavour name replaces the raw flavour id.
type CustomerOrder struct {
	OrderID    int     `json:"order_id"`
	Flavour    string  `json:"flavour"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

type FlavourStats struct {
	TotalFlavours      int            `json:"total_flavours"`
	AveragePrice       float64        `json:"average_price"`
	CheapestPrice      float64        `json:"cheapest_price"`
	MostExpensivePrice float64        `json:"most_expensive_price"`
	TypesCount         map[string]int `json:"types_count"`
}
