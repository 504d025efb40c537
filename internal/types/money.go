// README: Common value objects shared across modules.
package types

// Currency is the single settlement currency for fares.
const Currency = "INR"

type ID string

type Money struct {
	Amount   int64
	Currency string
}

func INR(amount int64) Money {
	return Money{Amount: amount, Currency: Currency}
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
