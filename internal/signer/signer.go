// Package signer computes the request digest the payment gateways use to
// authenticate the shop.
package signer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/and161185/payform/internal/errs"
)

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("sign: field %q is missing", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return errs.ErrMissingField
}

// Sign joins the values of requiredKeys, sorted lexicographically, with ":"
// and appends secret before hashing. The hex digest is lowercase.
func Sign(fields map[string]any, requiredKeys []string, secret string) (string, error) {
	keys := slices.Clone(requiredKeys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			return "", &MissingFieldError{Field: k}
		}
		values = append(values, format(v))
	}

	sum := md5.Sum([]byte(strings.Join(values, ":") + secret))
	return hex.EncodeToString(sum[:]), nil
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
