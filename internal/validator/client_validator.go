package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// 入力が不正
	ErrInvalidPhone = errors.New("invalid phone number")

	// 国民ID番号は8桁固定
	ErrInvalidNationalID = errors.New("national id must be exactly 8 digits")
)

var (
	phoneJunkRe = regexp.MustCompile(`[ \-\(\)]`)
	mobileRe    = regexp.MustCompile(`^07\d{8}$`)
	landlineRe  = regexp.MustCompile(`^01\d{8}$`)
)

// NormalizePhoneはケニアの電話番号を 0 始まりのローカル形式へ揃える。
// +254 / 254 / 7... はローカル形式に変換し、最終形が
// 07XXXXXXXX か 01XXXXXXXX でなければエラー。
func NormalizePhone(v string) (string, error) {
	v = strings.TrimSpace(v)
	v = phoneJunkRe.ReplaceAllString(v, "")

	switch {
	case strings.HasPrefix(v, "+254"):
		v = "0" + v[4:]
	case strings.HasPrefix(v, "254"):
		v = "0" + v[3:]
	case strings.HasPrefix(v, "7"):
		v = "0" + v
	case strings.HasPrefix(v, "0"):
		// そのまま
	default:
		return "", ErrInvalidPhone
	}

	if mobileRe.MatchString(v) || landlineRe.MatchString(v) {
		return v, nil
	}

	return "", ErrInvalidPhone
}

// ValidateNationalIDは8桁固定。
func ValidateNationalID(v string) error {
	if len(v) != 8 {
		return ErrInvalidNationalID
	}
	return nil
}
