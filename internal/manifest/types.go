package manifest

// Manifest is the declarative description of one application.
type Manifest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Version     string   `json:"version"`
	Tags        []string `json:"tags"`
	Runtime     string   `json:"runtime"`
	Entry       string   `json:"entry"` // relative to the manifest's directory
	Links       *Links   `json:"links,omitempty"`
	Hosted      *Hosted  `json:"hosted,omitempty"`
}

// Links points at the app's source repository and documentation.
type Links struct {
	Source string `json:"source,omitempty"` // repository root URL
	Docs   string `json:"docs,omitempty"`   // repository-relative path
}

// Hosted describes an app served behind a live gateway.
type Hosted struct {
	HostedURL string `json:"hostedUrl,omitempty"`
	Status    string `json:"status,omitempty"`
	// Gateway is kept as decoded JSON (nil, map[string]any or a scalar) so
	// the gateway contract can reject any deviation, extra keys included.
	Gateway any `json:"gateway,omitempty"`
}

// Gateway is the hosted runtime's control surface.
type Gateway struct {
	Health  string `json:"health"`
	WSPath  string `json:"wsPath"`
	APIBase string `json:"apiBase"`
}

// Runtime values with runtime-specific handling.
const (
	RuntimeStatic = "static"
	RuntimeHosted = "hosted"
)

// RequiredGateway is the only gateway a hosted app may declare.
var RequiredGateway = Gateway{
	Health:  "/health",
	WSPath:  "/ws",
	APIBase: "/api",
}

// GatewayFields lists the gateway keys in the order they are checked.
var GatewayFields = []string{"health", "wsPath", "apiBase"}

// Value returns the value of a GatewayFields key, or "" for other keys.
func (g Gateway) Value(key string) string {
	switch key {
	case "health":
		return g.Health
	case "wsPath":
		return g.WSPath
	case "apiBase":
		return g.APIBase
	}
	return ""
}

// Object returns g in the decoded form a manifest's hosted.gateway takes.
func (g Gateway) Object() map[string]any {
	obj := make(map[string]any, len(GatewayFields))
	for _, key := range GatewayFields {
		obj[key] = g.Value(key)
	}
	return obj
}

// SourceURL returns links.source, or "" when no links block is present.
func (m *Manifest) SourceURL() string {
	if m.Links == nil {
		return ""
	}
	return m.Links.Source
}

// DocsPath returns links.docs, or "" when no links block is present.
func (m *Manifest) DocsPath() string {
	if m.Links == nil {
		return ""
	}
	return m.Links.Docs
}
