package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AmountPlaces は金額の小数点以下の桁数です。
	AmountPlaces = 2
	// MaxCommentLength はコメントの最大文字数です。
	MaxCommentLength = 200
)

// MaxAmount は10桁・小数2桁の列に収まる最大の金額です。
var MaxAmount = decimal.RequireFromString("99999999.99")

// ParseAmount は利用者が入力した金額の文字列を解釈します。
// 負の値、小数3桁以上、MaxAmount 超過はエラーになります。
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: missing", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	if !d.Equal(d.Truncate(AmountPlaces)) {
		return decimal.Zero, fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, AmountPlaces)
	}
	if d.GreaterThan(MaxAmount) {
		return decimal.Zero, fmt.Errorf("%w: exceeds %s", ErrInvalidAmount, MaxAmount.StringFixed(AmountPlaces))
	}
	return d, nil
}

// ToCents は保存用に金額をセント単位の整数へ変換します。
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(AmountPlaces).Round(0).IntPart()
}

// FromCents は保存されたセントを金額に戻します。
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -AmountPlaces)
}

// FormatAmount は金額を小数2桁の文字列にします。
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}
