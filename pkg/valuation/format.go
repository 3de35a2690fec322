// 展示格式化
// 纯函数，无状态，仅用于对外展示，不提供反向解析
package valuation

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency 美元货币格式 (千位分组 + 固定小数位)
func FormatCurrency(v float64, digits int) string {
	v = Sanitize(v)
	return usPrinter.Sprintf("$%v", number.Decimal(v,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	))
}

// FormatMultiple 倍数格式，如 "8.00x"
func FormatMultiple(v float64, digits int) string {
	return fmt.Sprintf("%.*fx", digits, Sanitize(v))
}

// FormatPercent 百分比格式
// 约定输入为小数 (0.12 -> "12.00%")，而非已经乘过 100 的百分数
func FormatPercent(v float64, digits int) string {
	return fmt.Sprintf("%.*f%%", digits, Sanitize(v)*100)
}
