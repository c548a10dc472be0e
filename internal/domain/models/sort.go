package models

// SortKey names the column a transaction list is sorted by
type SortKey string

const (
	SortNone     SortKey = ""
	SortGasPrice SortKey = "gas_price"
	SortTxCost   SortKey = "tx_cost"
	SortIndex    SortKey = "index"
)

// SortDirection is the ordering direction for a custom sort
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig selects the display ordering. The zero value is the default
// ordering (block number descending, then index ascending).
type SortConfig struct {
	Key       SortKey
	Direction SortDirection
}

// Toggle returns the config after selecting key. Selecting the active key
// cycles ascending -> descending -> default ordering.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if key == SortNone {
		return SortConfig{Direction: SortAsc}
	}
	if c.Key != key {
		return SortConfig{Key: key, Direction: SortAsc}
	}
	if c.Direction == SortDesc {
		return SortConfig{Direction: SortAsc}
	}
	return SortConfig{Key: key, Direction: SortDesc}
}

// IsDefault reports whether no custom sort is active
func (c SortConfig) IsDefault() bool {
	return c.Key == SortNone
}

// ParseSortKey converts a user supplied column name into a SortKey
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortNone, SortGasPrice, SortTxCost, SortIndex:
		return SortKey(s), true
	case "none", "default":
		return SortNone, true
	}
	return SortNone, false
}
