package words

// WordError is a custom error type for word pool errors
type WordError string

// Error implements the error interface
func (e WordError) Error() string {
	return string(e)
}

const (
	ErrWordListMissing WordError = "word list missing"
	ErrEmptyWordList   WordError = "word list is empty"
)
