package service

import "fmt"

// JoinConfig holds the front-end base URL embedded into join links.
type JoinConfig struct {
	BaseURL string
}

// JoinURL returns the join link for a provider call (e.g. http://localhost:3000/join/<callID>).
func (c *JoinConfig) JoinURL(callID string) string {
	if c == nil || c.BaseURL == "" {
		return fmt.Sprintf("/join/%s", callID)
	}
	base := c.BaseURL
	if base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return fmt.Sprintf("%s/join/%s", base, callID)
}
