package domain

// Domain contains the records returned by the dummy data APIs.

// Post is a single entry from the placeholder posts collection.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ExchangeRate is the pair conversion record returned by the exchange-rate API.
// Optional fields are nil when the remote omitted them.
type ExchangeRate struct {
	Result         *string `json:"result,omitempty"`
	Documentation  *string `json:"documentation,omitempty"`
	TermsOfUse     *string `json:"terms_of_use,omitempty"`
	LastUpdateUnix int64   `json:"time_last_update_unix"`
	LastUpdateUTC  *string `json:"time_last_update_utc,omitempty"`
	NextUpdateUnix int64   `json:"time_next_update_unix"`
	NextUpdateUTC  *string `json:"time_next_update_utc,omitempty"`
	BaseCode       *string `json:"base_code,omitempty"`
	TargetCode     *string `json:"target_code,omitempty"`
	ConversionRate float64 `json:"conversion_rate"`
}

// IsZero reports whether r carries no data, which is what callers receive when a lookup failed.
func (r ExchangeRate) IsZero() bool {
	return r == ExchangeRate{}
}

// StringValue dereferences an optional field, returning "" when unset.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
