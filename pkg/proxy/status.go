package proxy

import (
	"encoding/json"

	"go.makar.dev/proxy/pkg/config"
)

type statusVersion struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type statusPlayers struct {
	Max    int           `json:"max"`
	Online int           `json:"online"`
	Sample []interface{} `json:"sample"`
}

type statusDescription struct {
	Text string `json:"text"`
}

type statusBody struct {
	Version     statusVersion     `json:"version"`
	Players     statusPlayers     `json:"players"`
	Description statusDescription `json:"description"`
}

// statusJSON builds the server-list JSON for StatusRequest, substituting
// the live player count.
func statusJSON(cfg config.Config, online int) string {
	body := statusBody{
		Version:     statusVersion{Name: "1.8.8", Protocol: 47},
		Players:     statusPlayers{Max: cfg.Status.MaxPlayers, Online: online, Sample: []interface{}{}},
		Description: statusDescription{Text: cfg.Status.Description},
	}
	b, err := json.Marshal(body)
	if err != nil {
		// Marshal of a fixed, non-cyclic struct cannot fail.
		return `{"version":{"name":"1.8.8","protocol":47},"players":{"max":0,"online":0,"sample":[]},"description":{"text":""}}`
	}
	return string(b)
}
