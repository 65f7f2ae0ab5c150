package ledger

// LedgerError is a custom error type for score ledger errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInsufficientFunds LedgerError = "insufficient funds"
	ErrInvalidAmount     LedgerError = "amount must be positive"
	ErrNegativeDelta     LedgerError = "score deltas cannot be negative"
	ErrSelfTransfer      LedgerError = "cannot transfer to yourself"
	ErrInvalidInput      LedgerError = "chat and user are required"
	ErrNilConfig         LedgerError = "config cannot be nil"
	ErrNilScoreRepo      LedgerError = "score repository cannot be nil"
)
