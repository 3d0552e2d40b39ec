// Package numbering derives human readable quote and invoice numbers.
//
// Invoices are numbered per calendar month as INV-YYMM-NNNN and reuse the
// smallest free sequence value. Quotes are numbered QT-YY-NNNNN from a
// running count of all quotes.
package numbering

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// InvoicePrefix returns the period prefix, e.g. "INV-2501-".
func InvoicePrefix(now time.Time) string {
	return fmt.Sprintf("INV-%02d%02d-", now.Year()%100, int(now.Month()))
}

// NextInvoiceNumber picks the first gap in the sequence of existing numbers
// that share the period prefix, or the next value after a contiguous run.
func NextInvoiceNumber(now time.Time, existing []string) string {
	prefix := InvoicePrefix(now)
	return fmt.Sprintf("%s%04d", prefix, NextInSequence(prefix, existing))
}

// NextInSequence parses the numeric suffix of every value carrying prefix,
// ignores the unparseable ones and returns the smallest missing value
// counting from 1.
func NextInSequence(prefix string, existing []string) int {
	numbers := suffixes(prefix, existing)
	for i, n := range numbers {
		if n != i+1 {
			return i + 1
		}
	}
	return len(numbers) + 1
}

// HighestInSequence returns the largest parseable suffix carrying prefix,
// or 0 when there is none.
func HighestInSequence(prefix string, existing []string) int {
	numbers := suffixes(prefix, existing)
	if len(numbers) == 0 {
		return 0
	}
	return numbers[len(numbers)-1]
}

func suffixes(prefix string, existing []string) []int {
	numbers := make([]int, 0, len(existing))
	for _, value := range existing {
		if !strings.HasPrefix(value, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(value, prefix))
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// QuotePrefix returns the year prefix, e.g. "QT-25-".
func QuotePrefix(now time.Time) string {
	return fmt.Sprintf("QT-%02d-", now.Year()%100)
}

// QuoteNumber formats the quote that follows count existing quotes.
func QuoteNumber(now time.Time, count int64) string {
	return fmt.Sprintf("%s%05d", QuotePrefix(now), count+1)
}

// FallbackQuoteNumber is used when existing quotes cannot be read. It takes
// the last five digits of the Unix millisecond clock, shifted by attempt so
// retries within one millisecond still move forward.
func FallbackQuoteNumber(now time.Time, attempt int) string {
	return fmt.Sprintf("%s%05d", QuotePrefix(now), (now.UnixMilli()+int64(attempt))%100000)
}
