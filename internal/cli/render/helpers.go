package render

import (
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color styles for table format
var (
	labelStyle     = color.New(color.Bold)
	addressStyle   = color.New(color.FgWhite)
	hashStyle      = color.New(color.FgCyan)
	pendingStyle   = color.New(color.FgYellow)
	executedStyle  = color.New(color.FgGreen)
	faintStyle     = color.New(color.Faint)
	sectionHeading = color.New(color.Bold, color.FgHiWhite)
)

var titleCaser = cases.Title(language.English)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// newTable returns a borderless table writer rendering to out
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		PaddingRight:     "   ",
		MiddleHorizontal: "─",
	}
	t.Style().Format.Header = text.FormatUpper
	return t
}

// FormatUnits renders an integer amount with decimals as a decimal string,
// trimming trailing zeros: ("1500000000000000000", 18) -> "1.5"
func FormatUnits(amount string, decimals int) string {
	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return amount
	}
	if decimals <= 0 {
		return value.String()
	}

	negative := value.Sign() < 0
	value.Abs(value)

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(value, divisor, new(big.Int))

	result := whole.String()
	if frac.Sign() != 0 {
		fracStr := frac.String()
		fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
		result += "." + strings.TrimRight(fracStr, "0")
	}
	if negative {
		result = "-" + result
	}
	return result
}

// shorten abbreviates long hex strings as 0x1234…abcd
func shorten(s string) string {
	if len(s) <= 14 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}

// orDash renders empty values as a dash
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
