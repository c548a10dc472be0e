package render

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// UnknownAddress is shown for a missing from/to address
	UnknownAddress = "<Unknown>"

	// SignatureWidth is the collapsed row signature length
	SignatureWidth = 40

	// HashWidth is the collapsed row hash prefix length
	HashWidth = 10

	// HexChunkWidth is the line width of wrapped log data
	HexChunkWidth = 64
)

var printer = message.NewPrinter(language.English)

// FormatGwei converts a wei amount to gwei with two decimals. Empty input
// renders as "0".
func FormatGwei(wei string) string {
	wei = strings.TrimSpace(wei)
	if wei == "" {
		return "0"
	}
	f, ok := new(big.Float).SetString(wei)
	if !ok {
		return "0"
	}
	return f.Quo(f, big.NewFloat(params.GWei)).Text('f', 2)
}

// ChunkHex splits data into segments of at most width characters
func ChunkHex(data string, width int) []string {
	if data == "" || width <= 0 {
		return nil
	}
	chunks := make([]string, 0, (len(data)+width-1)/width)
	for len(data) > width {
		chunks = append(chunks, data[:width])
		data = data[width:]
	}
	return append(chunks, data)
}

// Hyperlink wraps label in an OSC 8 terminal hyperlink
func Hyperlink(url, label string) string {
	return "\x1b]8;;" + url + "\x1b\\" + label + "\x1b]8;;\x1b\\"
}

// ExplorerLink renders address as a link to <explorer>/<kind>/<address>.
// Without an explorer URL or hyperlink support the address is returned as is.
func ExplorerLink(address, kind, explorerURL string, hyperlinks bool) string {
	if address == "" || address == UnknownAddress {
		return UnknownAddress
	}
	if explorerURL == "" || !hyperlinks {
		return address
	}
	return Hyperlink(fmt.Sprintf("%s/%s/%s", strings.TrimRight(explorerURL, "/"), kind, address), address)
}

// TruncateSignature shortens long signatures for the collapsed row
func TruncateSignature(sig string) string {
	if text.RuneWidthWithoutEscSequences(sig) > SignatureWidth {
		return text.Trim(sig, SignatureWidth) + "..."
	}
	return sig
}

// TruncateHash returns the collapsed row form of a transaction hash
func TruncateHash(hash string) string {
	if len(hash) > HashWidth {
		return hash[:HashWidth] + "..."
	}
	return hash + "..."
}

// FormatNumber groups digits, e.g. 21,000,000
func FormatNumber[T uint64 | int | int64](n T) string {
	return printer.Sprintf("%d", n)
}

// FormatPrice renders a USD price with grouped digits
func FormatPrice(p float64) string {
	return printer.Sprintf("$%.2f", p)
}
