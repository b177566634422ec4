package entity

import (
	"fmt"
	"net"
	"net/url"
)

// URLの上限長。異常に長い入力はパース前に弾く
const maxURLLength = 2048

// ValidateURL checks that rawURL is a well-formed http(s) URL that is
// safe to hand to the downloader. Hosts resolving to private or
// loopback addresses are rejected so the server cannot be used to
// probe its own network.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	// 解決先がプライベート帯なら拒否する。名前解決に失敗した場合は
	// ダウンローダ側のエラーに任せる
	if ips, err := net.LookupIP(parsed.Hostname()); err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return &ValidationError{
					Field:   "url",
					Message: "url cannot point to private network",
				}
			}
		}
	}

	return nil
}

// isPrivateIP reports whether ip falls in a loopback, link-local, or
// private range. 169.254.0.0/16 covers the cloud metadata endpoint.
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsPrivate() {
		return true
	}

	for _, cidr := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"169.254.0.0/16",
	} {
		_, subnet, _ := net.ParseCIDR(cidr)
		if subnet.Contains(ip) {
			return true
		}
	}

	return false
}
