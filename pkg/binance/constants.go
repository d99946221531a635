package binance

// IntervalUnit is the time unit of a candle interval.
type IntervalUnit uint8

const (
	UnitMinute IntervalUnit = iota + 1
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
)

// Interval is a candle granularity as a (unit, magnitude) pair.
// Only the combinations listed in wireTokens are accepted by Binance.
type Interval struct {
	Unit IntervalUnit
	N    uint8
}

func Minutes(n uint8) Interval { return Interval{Unit: UnitMinute, N: n} }
func Hours(n uint8) Interval   { return Interval{Unit: UnitHour, N: n} }
func Days(n uint8) Interval    { return Interval{Unit: UnitDay, N: n} }
func Weeks(n uint8) Interval   { return Interval{Unit: UnitWeek, N: n} }
func Months(n uint8) Interval  { return Interval{Unit: UnitMonth, N: n} }

// wireTokens maps each supported interval to the exact query-parameter token.
// Minute is lowercase "m", month is uppercase "M" — the tokens are literals
// defined by the exchange, not derived by case rules.
var wireTokens = map[Interval]string{
	{UnitMinute, 1}:  "1m",
	{UnitMinute, 3}:  "3m",
	{UnitMinute, 5}:  "5m",
	{UnitMinute, 15}: "15m",
	{UnitMinute, 30}: "30m",
	{UnitHour, 1}:    "1h",
	{UnitHour, 2}:    "2h",
	{UnitHour, 4}:    "4h",
	{UnitHour, 6}:    "6h",
	{UnitHour, 8}:    "8h",
	{UnitHour, 12}:   "12h",
	{UnitDay, 1}:     "1d",
	{UnitDay, 3}:     "3d",
	{UnitWeek, 1}:    "1w",
	{UnitMonth, 1}:   "1M",
}

// IsSupported reports whether the interval is in the fixed supported set.
func (iv Interval) IsSupported() bool {
	_, ok := wireTokens[iv]
	return ok
}

// WireToken returns the exact token the klines endpoint expects for this
// interval, or an IntervalNotSupported error for any pair outside the set.
func (iv Interval) WireToken() (string, error) {
	token, ok := wireTokens[iv]
	if !ok {
		return "", &Error{Kind: KindIntervalNotSupported, Op: "interval"}
	}
	return token, nil
}

// ParseInterval parses a wire token (e.g. "1m", "4h", "1M") back into an
// Interval. Used when the interval comes from configuration.
func ParseInterval(token string) (Interval, error) {
	for iv, t := range wireTokens {
		if t == token {
			return iv, nil
		}
	}
	return Interval{}, &Error{Kind: KindIntervalNotSupported, Op: "interval"}
}
