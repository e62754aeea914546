package capability

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

// teamCapability composes the general model with its specialized siblings.
// Composition, not inheritance: the team holds references to the siblings and
// falls back through them in registration order when its own invocation
// fails.
type teamCapability struct {
	own      contractx.Capability
	siblings []contractx.Capability
}

func newTeamCapability(own contractx.Capability, siblings ...contractx.Capability) *teamCapability {
	return &teamCapability{
		own:      own,
		siblings: siblings,
	}
}

func (c *teamCapability) Invoke(ctx context.Context, message string) (string, error) {
	out, err := c.own.Invoke(ctx, message)
	if err == nil {
		return out, nil
	}

	log.Warn().Err(err).Msg("team capability failed, trying siblings")
	for _, sibling := range c.siblings {
		if out, sErr := sibling.Invoke(ctx, message); sErr == nil {
			return out, nil
		}
	}
	return "", err
}
