package rewards

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultSecret is shipped with the client and only deters casual edits.
	DefaultSecret = "sprout-sapling-v1"
	FragmentLen   = 8
	ErrorMarker   = "ERR"
)

var ErrNoSecret = errors.New("rewards: signing secret is empty")

// Signer produces a hex digest for a sapling message. Implementations may
// block; callers bound them with ctx.
type Signer interface {
	Sign(ctx context.Context, message string) (string, error)
}

type HMACSigner struct {
	secret []byte
}

func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

func (s *HMACSigner) Sign(ctx context.Context, message string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func codeMessage(id, date string) string {
	return id + ":" + date
}

// Code formats "{id}|{date}|{fragment}". A signer failure puts ErrorMarker
// in the fragment position instead of failing.
func Code(ctx context.Context, signer Signer, id, date string) (string, error) {
	if signer == nil {
		return fmt.Sprintf("%s|%s|%s", id, date, ErrorMarker), ErrNoSecret
	}
	digest, err := signer.Sign(ctx, codeMessage(id, date))
	if err != nil || len(digest) < FragmentLen {
		if err == nil {
			err = fmt.Errorf("rewards: digest too short: %d", len(digest))
		}
		return fmt.Sprintf("%s|%s|%s", id, date, ErrorMarker), err
	}
	return fmt.Sprintf("%s|%s|%s", id, date, digest[:FragmentLen]), nil
}

// VerifyCode re-derives the fragment. Degraded codes never verify.
func VerifyCode(ctx context.Context, signer Signer, code string) bool {
	parts := strings.Split(code, "|")
	if len(parts) != 3 || parts[2] == ErrorMarker {
		return false
	}
	want, err := Code(ctx, signer, parts[0], parts[1])
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(want), []byte(code))
}
