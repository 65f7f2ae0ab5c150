package score

import "errors"

// ErrInsufficientFunds is returned when the sender holds fewer coins than the amount
var ErrInsufficientFunds = errors.New("insufficient funds")
