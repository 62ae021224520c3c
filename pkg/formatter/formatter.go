package formatter

import (
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/investorion/cli/pkg/output"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	output.PrintSuccess(format, args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	output.PrintError(format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	output.PrintInfo(format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	output.PrintWarning(format, args...)
}

// PrintTable prints data as a table
func PrintTable(headers []string, rows [][]string) {
	output.PrintList("", rows, headers)
}

// PrintObject prints an object based on output format
func PrintObject(data interface{}, name string) error {
	return output.Print(name, data)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(data map[string]interface{}) {
	output.PrintRecord("", data)
}

// FormatBRL renders a monetary amount in Brazilian reais, e.g. "R$1.234,56".
// Amounts are rounded to the cent.
func FormatBRL(amount float64) string {
	cents := int64(math.Round(amount * 100))
	return money.New(cents, money.BRL).Display()
}

// FormatQuantity renders an asset quantity without trailing zeros.
func FormatQuantity(quantity float64) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}

// FormatPercent renders a percentage with two decimal places.
func FormatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64) + "%"
}
