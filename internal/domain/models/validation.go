package models

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jellydator/validation"
)

var (
	blocksPattern   = regexp.MustCompile(`^(\d+|latest)(:(\d+|latest))?$`)
	positionPattern = regexp.MustCompile(`^\d+(:\d+)?$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
)

// Validate checks the form values that have a fixed syntax. Filter
// expressions such as events or costs are left to the backend.
func (p SearchParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Blocks, validation.By(trimmed(validation.Match(blocksPattern)))),
		validation.Field(&p.Position, validation.By(trimmed(validation.Match(positionPattern)))),
		validation.Field(&p.ChainID, validation.By(trimmed(validation.Match(digitsPattern)))),
		validation.Field(&p.From, validation.By(hexAddress)),
		validation.Field(&p.To, validation.By(hexAddress)),
		validation.Field(&p.RPCURL, validation.By(httpURL)),
	)
}

// Validate checks the transaction hash
func (p TraceParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.TxHash, validation.Required, validation.By(txHash)),
		validation.Field(&p.RPCURL, validation.By(httpURL)),
	)
}

// Validate checks the transaction hash and the surrounding range
func (p InspectParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.TxHash, validation.Required, validation.By(txHash)),
		validation.Field(&p.Before, validation.By(trimmed(validation.Match(digitsPattern)))),
		validation.Field(&p.After, validation.By(trimmed(validation.Match(digitsPattern)))),
		validation.Field(&p.RPCURL, validation.By(httpURL)),
	)
}

// IsTxHash reports whether s is a 0x-prefixed 32 byte hex string
func IsTxHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}

func trimmed(rule validation.Rule) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return rule.Validate(s)
	}
}

// hexAddress accepts ENS names and keywords such as CREATE, but anything
// starting with 0x must be a full address
func hexAddress(value any) error {
	s, _ := value.(string)
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") {
		return nil
	}
	if !common.IsHexAddress(s) {
		return errors.New("must be a valid hex address")
	}
	return nil
}

func txHash(value any) error {
	s, _ := value.(string)
	if !IsTxHash(strings.TrimSpace(s)) {
		return errors.New("must be a 0x-prefixed 32 byte hash")
	}
	return nil
}

func httpURL(value any) error {
	s, _ := value.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return errors.New("must be an http(s) or ws(s) URL")
	}
	return nil
}

// ValidateEndpoint checks a backend base URL or RPC URL
func ValidateEndpoint(s string) error {
	return validation.Validate(s, validation.Required, validation.By(httpURL))
}
