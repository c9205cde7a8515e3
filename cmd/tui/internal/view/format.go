package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mayarh926-blip/etesalat-app/internal/ledger"
)

const opTimeout = 3 * time.Second

// OpCtx bounds a single store operation issued from a tea.Cmd.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Amounts are whole Syrian pounds. The Arabic currency suffix keeps
// digits Latin so the output stays readable in LTR terminals.
var moneyPrinter = message.NewPrinter(language.English)

func FormatMoney(amount int64) string {
	return moneyPrinter.Sprintf("%v ل.س", number.Decimal(amount))
}

func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func kindLabel(k ledger.Kind) string {
	switch k {
	case ledger.KindBill:
		return "Bill"
	case ledger.KindCredit:
		return "Credit"
	case ledger.KindAccessories:
		return "Accessory"
	}
	return string(k)
}

func networkLabel(n ledger.Network) string {
	switch n {
	case ledger.NetworkMTN:
		return "MTN"
	case ledger.NetworkSyriatel:
		return "Syriatel"
	}
	return ""
}

func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a whole amount")
	}
	if v < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}
	return v, nil
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("amount is required")
	}
	_, err := parseAmount(s)
	return err
}

func validateOptionalAmount(s string) error {
	_, err := parseAmount(s)
	return err
}
