// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package emailaddr normalises typed addresses and derives display hints.
// It never judges deliverability; the check endpoint owns every verdict.
package emailaddr

import (
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Address is a typed address split for display.
type Address struct {
	Raw           string // normalised input
	Local         string
	Domain        string // ASCII / punycode form
	DomainUnicode string // display form
	Valid         bool   // false when the input has no usable local@domain shape
}

// Normalize trims surrounding space and converts to Unicode NFC so that
// visually identical input is sent identically.
func Normalize(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// Parse splits raw into local part and domain. Internationalised domains
// are converted with IDNA2008 lookup rules; punycode input is decoded for
// display.
func Parse(raw string) Address {
	raw = Normalize(raw)

	addr, err := mail.ParseAddress(raw)
	if err != nil {
		addr, err = mail.ParseAddress("<" + raw + ">")
	}
	if err != nil {
		// net/mail rejects UTF-8 local parts.
		at := strings.LastIndex(raw, "@")
		if at < 1 || at >= len(raw)-1 {
			return Address{Raw: raw}
		}
		return build(raw, raw[:at], raw[at+1:])
	}

	parts := strings.SplitN(addr.Address, "@", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Address{Raw: raw}
	}
	return build(raw, parts[0], parts[1])
}

func build(raw, local, domain string) Address {
	domain = strings.ToLower(domain)

	if isASCII(domain) {
		display, err := idna.Display.ToUnicode(domain)
		if err != nil {
			display = domain
		}
		return Address{Raw: raw, Local: local, Domain: domain, DomainUnicode: display, Valid: true}
	}

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return Address{Raw: raw}
	}
	return Address{Raw: raw, Local: local, Domain: ascii, DomainUnicode: domain, Valid: true}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// IsIDN reports whether the domain needed punycode conversion.
func (a Address) IsIDN() bool {
	return a.Valid && a.Domain != a.DomainUnicode
}

// Hint returns a short line shown under the input, or "" when there is
// nothing worth saying.
func Hint(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	a := Parse(raw)
	switch {
	case !strings.Contains(a.Raw, "@"):
		return "missing @"
	case !a.Valid:
		return "incomplete address"
	case a.IsIDN():
		return "domain " + a.DomainUnicode + " → " + a.Domain
	}
	return ""
}
