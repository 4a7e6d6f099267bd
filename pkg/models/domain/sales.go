package domain

import "github.com/shopspring/decimal"

// Channel identifies the device channel a sale was rung up on.
type Channel string

const (
	ChannelHandheld Channel = "handheld"
	ChannelPOS      Channel = "pos"
	ChannelUnknown  Channel = "unknown"
)

// RawRecord is one row as read from the source export, untouched.
type RawRecord struct {
	Staff  string // staff customer label
	Device string // free-form device orders label, e.g. "Handheld 2"
	Base   string // base amount including discounts, possibly malformed
}

// SalesRecord is a RawRecord after normalization. Amount is zero when the
// source value did not parse; Staff keeps whatever the row carried, empty
// included.
type SalesRecord struct {
	Staff   string
	Channel Channel
	Amount  decimal.Decimal
}

// HeaderMapping names the source column variants for the three fields the
// pipeline consumes. Variants are matched case-insensitively after header
// repair.
type HeaderMapping struct {
	Name   string   // profile name, e.g. "default"
	Staff  []string // staff customer column labels
	Device []string // device orders column labels
	Base   []string // base amount column labels
}
