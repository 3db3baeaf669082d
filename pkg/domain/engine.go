package domain

import (
	"fmt"
	"strings"

	"harvester/pkg/serrors"
)

// Engine identifies one of the supported search engines. The set is closed:
// adding an engine means adding a constant here plus a client implementation,
// not string matching at call sites.
type Engine string

const (
	EngineGoogle     Engine = "google"
	EngineBing       Engine = "bing"
	EngineYahoo      Engine = "yahoo"
	EngineYandex     Engine = "yandex"
	EngineDuckDuckGo Engine = "duckduckgo"
)

// Engines lists every supported engine in a stable order.
func Engines() []Engine {
	return []Engine{EngineGoogle, EngineBing, EngineYahoo, EngineYandex, EngineDuckDuckGo}
}

// ParseEngine converts a configuration string into an Engine. Unknown names
// produce an ErrConfig error so a run never starts with a misspelled engine.
func ParseEngine(s string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EngineGoogle, EngineBing, EngineYahoo, EngineYandex, EngineDuckDuckGo:
		return e, nil
	default:
		return "", serrors.With(serrors.ErrConfig, "unsupported search engine %q", s)
	}
}

// String implements fmt.Stringer.
func (e Engine) String() string { return string(e) }

var _ fmt.Stringer = EngineGoogle
