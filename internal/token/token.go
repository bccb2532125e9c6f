// Package token splits a compact JWS (header.payload.signature) into the
// bytes authenticated by its signature and the signature itself.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

const (
	Delimiter  = "."
	segments   = 3
	AlgHMAC256 = "HS256"
)

var ErrMalformedToken = errors.New("malformed token")

type Token struct {
	raw          string
	header       string
	signingInput []byte
	signature    []byte
}

type jwsHeader struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

// Parse requires exactly three segments and a signature in unpadded
// base64url. The signing input is the first two segments exactly as they
// appear in raw, they are never re-encoded.
func Parse(raw string) (*Token, error) {
	parts := strings.Split(raw, Delimiter)
	if len(parts) != segments {
		return nil, errors.Wrapf(ErrMalformedToken, "expected %d segments, got %d", segments, len(parts))
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedToken, "decode signature: %v", err)
	}

	return &Token{
		raw:          raw,
		header:       parts[0],
		signingInput: []byte(parts[0] + Delimiter + parts[1]),
		signature:    signature,
	}, nil
}

func (t *Token) String() string {
	return t.raw
}

func (t *Token) SigningInput() []byte {
	return t.signingInput
}

func (t *Token) Signature() []byte {
	return t.signature
}

// Algorithm returns the "alg" header parameter, or "" if the header cannot
// be decoded.
func (t *Token) Algorithm() string {
	data, err := base64.RawURLEncoding.DecodeString(t.header)
	if err != nil {
		return ""
	}

	var h jwsHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return ""
	}

	return h.Algorithm
}
