package dto

import (
	"bytes"
	"encoding/json"
)

// AmountText は金額を送信されたままの文字列で保持します。
// "10.50" のような文字列でも 10.50 のような数値でも受け付け、検証は domain.ParseAmount に任せます。
type AmountText string

// UnmarshalJSON は文字列ならその中身を、それ以外はJSONの字句をそのまま保持します。
func (a *AmountText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountText(s)
		return nil
	}
	*a = AmountText(data)
	return nil
}

func (a AmountText) String() string {
	return string(a)
}
