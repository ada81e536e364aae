package config

import "github.com/bitmato-studio/bitmato-chess/internal/engine"

// RulesConfig selects the move validation variant.
type RulesConfig struct {
	// King is "bounded" (default) or "legacy".
	King string `toml:"king"`

	// ForwardPawns rejects pawn moves toward the mover's own side.
	ForwardPawns bool `toml:"forward_pawns"`
}

// NewRulesConfig creates a RulesConfig with default values.
func NewRulesConfig() *RulesConfig {
	return &RulesConfig{King: engine.KingBounded.String()}
}

// Validate checks the rules settings.
func (c *RulesConfig) Validate() error {
	_, err := engine.ParseKingRule(c.King)
	return err
}

// EngineRules converts the section into engine rules.
func (c *RulesConfig) EngineRules() (engine.Rules, error) {
	king, err := engine.ParseKingRule(c.King)
	if err != nil {
		return engine.Rules{}, err
	}
	return engine.Rules{King: king, ForwardPawns: c.ForwardPawns}, nil
}
