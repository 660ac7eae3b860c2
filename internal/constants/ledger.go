package constants

const (
	AccountNumberDigits = 10
	MinNameLen          = 2
	MaxNameLen          = 100
)

const (
	// Fee policy defaults, overridable via config.
	DefaultFeeRate     = "0.01"
	DefaultMinFee      = "1.00"
	DefaultMinTransfer = "10.00"
)

const (
	// Date Layout for journal timestamps
	DateTimeFormat = "2006-01-02 15:04:05"

	DefaultHistoryLimit = 10
)
