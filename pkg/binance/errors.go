package binance

import (
	"errors"
	"fmt"
)

// Kind categorizes errors returned by this package. The set is closed:
// every failure surfaced to a caller carries exactly one of these kinds.
type Kind uint8

const (
	// KindSymbolNotFound means the requested symbol is absent from the loaded catalog.
	KindSymbolNotFound Kind = iota + 1

	// KindIntervalNotSupported means the (unit, magnitude) pair is not in the
	// fixed set Binance accepts.
	KindIntervalNotSupported

	// KindRequestFailure means the HTTP round trip failed or the exchange
	// returned a non-success status.
	KindRequestFailure

	// KindDecode means a kline payload could not be converted into a CandleTable.
	KindDecode
)

// Sentinel values for errors.Is checks. Every *Error matches the sentinel
// of its kind.
var (
	ErrSymbolNotFound       = errors.New("symbol not found")
	ErrIntervalNotSupported = errors.New("interval not supported")
	ErrRequestFailure       = errors.New("request failed")
	ErrDecode               = errors.New("kline decode failed")
)

var kindSentinels = map[Kind]error{
	KindSymbolNotFound:       ErrSymbolNotFound,
	KindIntervalNotSupported: ErrIntervalNotSupported,
	KindRequestFailure:       ErrRequestFailure,
	KindDecode:               ErrDecode,
}

// Error is the error type returned by this package.
type Error struct {
	Kind   Kind
	Op     string // endpoint or operation, e.g. "ping", "klines"
	Symbol string // requested symbol, when relevant
	Err    error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := kindSentinels[e.Kind].Error()
	if e.Symbol != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Symbol)
	}
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind, so
// errors.Is(err, ErrSymbolNotFound) works on wrapped errors.
func (e *Error) Is(target error) bool {
	return target == kindSentinels[e.Kind]
}

func newSymbolNotFound(symbol string) *Error {
	return &Error{Kind: KindSymbolNotFound, Symbol: symbol}
}

func newRequestFailure(op string, err error) *Error {
	return &Error{Kind: KindRequestFailure, Op: op, Err: err}
}

func newDecodeError(err error) *Error {
	return &Error{Kind: KindDecode, Err: err}
}
