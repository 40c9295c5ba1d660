package llm

import (
	"context"
	"encoding/json"
)

// completion is what a backend returns for one call: the raw reply text
// plus bookkeeping.
type completion struct {
	text  string
	model string
	stop  StopReason
	usage Usage
}

// backend performs the raw call against one vendor SDK.
type backend interface {
	complete(ctx context.Context, req Request) (*completion, error)
}

// client adapts a backend to Provider and owns reply decoding, so the
// JSON shim and schema validation behave the same for every vendor.
type client struct {
	name    string
	model   string
	backend backend
}

func (c *client) Generate(ctx context.Context, req Request) (*Response, error) {
	out, err := c.backend.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	content, err := decodeContent(req.Schema, out.text)
	if err != nil {
		if out.stop == StopMaxTokens {
			return nil, &Error{Kind: KindTruncated, Content: json.RawMessage(out.text), Err: err}
		}
		return nil, err
	}

	model := out.model
	if model == "" {
		model = c.model
	}
	return &Response{
		Content:    content,
		Usage:      out.usage,
		Model:      model,
		StopReason: out.stop,
	}, nil
}

func (c *client) ModelID() string { return c.model }

// Name returns the provider name recorded in the event log.
func (c *client) Name() string { return c.name }

// providerName returns p's vendor name when it exposes one.
func providerName(p Provider) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return p.ModelID()
}

// resolveModel maps a short alias to a full model ID. Unknown names pass
// through so any model ID can be configured directly.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
