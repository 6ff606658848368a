package config

import (
	"fmt"
	"os"
	"time"
)

// Governance windows and thresholds. The voting window and the early exit on
// quorum coexist deliberately: a proposal may conclude well before VotingPeriod
// elapses.
type GovernanceConfig struct {
	VotingPeriod     time.Duration `mapstructure:"voting_period"`
	ObjectionWindow  time.Duration `mapstructure:"objection_window"`
	SuccessionWindow time.Duration `mapstructure:"succession_window"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`

	QuorumPct            uint64 `mapstructure:"quorum_pct"`
	ImpeachmentQuorumPct uint64 `mapstructure:"impeachment_quorum_pct"`
	ApprovalPct          uint64 `mapstructure:"approval_pct"`
	ImpeachmentApprovalPct uint64 `mapstructure:"impeachment_approval_pct"`

	CollateralAmount uint64 `mapstructure:"collateral_amount"`
	ObjectionReward  uint64 `mapstructure:"objection_reward"`
	MinProposalStake uint64 `mapstructure:"min_proposal_stake"`
	EndorsementPct   uint64 `mapstructure:"endorsement_pct"`
}

func DefaultGovernanceConfig() *GovernanceConfig {
	return &GovernanceConfig{
		VotingPeriod:           14 * 24 * time.Hour,
		ObjectionWindow:        2 * 24 * time.Hour,
		SuccessionWindow:       24 * time.Hour,
		PollInterval:           time.Minute,
		QuorumPct:              40,
		ImpeachmentQuorumPct:   60,
		ApprovalPct:            50,
		ImpeachmentApprovalPct: 60,
		CollateralAmount:       30,
		ObjectionReward:        160,
		MinProposalStake:       1,
		EndorsementPct:         1,
	}
}

// QuorumPctFor returns the quorum percentage for a proposal class.
func (g *GovernanceConfig) QuorumPctFor(impeachment bool) uint64 {
	if impeachment {
		return g.ImpeachmentQuorumPct
	}
	return g.QuorumPct
}

// ApprovalPctFor returns the approval threshold for a proposal class.
func (g *GovernanceConfig) ApprovalPctFor(impeachment bool) uint64 {
	if impeachment {
		return g.ImpeachmentApprovalPct
	}
	return g.ApprovalPct
}

type Config struct {
	Home       string `mapstructure:"-"`
	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level"`

	Governance *GovernanceConfig `mapstructure:"governance"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.baekya")
	}
	config := &Config{
		Home:       home,
		ListenAddr: "127.0.0.1:26670",
		LogLevel:   "info",
		Governance: DefaultGovernanceConfig(),
	}
	_ = os.MkdirAll(home+"/config", 0o755)
	return config
}

func (c *Config) ValidateBasic() error {
	if c.Governance == nil {
		c.Governance = DefaultGovernanceConfig()
	}
	g := c.Governance
	for _, pct := range []uint64{g.QuorumPct, g.ImpeachmentQuorumPct, g.ApprovalPct, g.ImpeachmentApprovalPct, g.EndorsementPct} {
		if pct > 100 {
			return fmt.Errorf("percentage out of range: %v", pct)
		}
	}
	if g.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive (got %v)", g.PollInterval)
	}
	if g.SuccessionWindow <= 0 {
		return fmt.Errorf("succession_window must be positive (got %v)", g.SuccessionWindow)
	}
	return nil
}

func (c *Config) ConfigFile() string {
	return c.Home + "/config/config.toml"
}

func (c *Config) GenesisFile() string {
	return c.Home + "/config/genesis.json"
}

func (c *Config) StoreDir() string {
	return c.Home + "/data"
}

func (c *Config) IndexerFile() string {
	return c.Home + "/indexer.db"
}
