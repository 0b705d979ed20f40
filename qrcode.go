package main

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/shazow/iwconnect/wifi"
)

var wifiEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

// EscapeWifiString escapes the characters that are special in a WIFI: URI.
func EscapeWifiString(s string) string {
	return wifiEscaper.Replace(s)
}

// wifiURI formats the payload phones expect in a Wi-Fi QR code.
func wifiURI(ssid, password string, security wifi.SecurityType, isHidden bool) string {
	var b strings.Builder

	b.WriteString("WIFI:S:")
	b.WriteString(EscapeWifiString(ssid))
	b.WriteString(";")

	switch security {
	case wifi.SecurityWPA:
		b.WriteString("T:WPA;P:")
		b.WriteString(EscapeWifiString(password))
		b.WriteString(";")
	case wifi.SecurityWEP:
		b.WriteString("T:WEP;P:")
		b.WriteString(EscapeWifiString(password))
		b.WriteString(";")
	case wifi.SecurityOpen:
		b.WriteString("T:nopass;")
	default:
		// Don't set T if security is unknown, most readers will assume WPA.
	}

	if isHidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

// GenerateWifiQRCode returns a terminal rendering of the QR code for joining
// the network.
func GenerateWifiQRCode(ssid, password string, security wifi.SecurityType, isHidden bool) (string, error) {
	q, err := qrcode.New(wifiURI(ssid, password, security, isHidden), qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}
