package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	FlagHome      = "home"
	FlagChainID   = "chain-id"
	FlagOverwrite = "overwrite"
	FlagOperator  = "operator"
)

// InitialOperatorGrant is the P-token amount granted to the initial operator
// of each genesis DAO.
const InitialOperatorGrant = 30

type GenesisDAO struct {
	Name        string `json:"name"`
	Purpose     string `json:"purpose"`
	Description string `json:"description"`
	Operations  bool   `json:"operations"`
	DCAs        []DCA  `json:"dcas,omitempty"`
}

// GenesisDoc defines the initial conditions of a governance network: the
// default DAOs and the member installed as their initial operator.
type GenesisDoc struct {
	GenesisTime     time.Time    `json:"genesis_time"`
	ChainID         string       `json:"chain_id"`
	DAOs            []GenesisDAO `json:"daos"`
	InitialOperator string       `json:"initial_operator"`
	OperatorGrant   uint64       `json:"operator_grant"`
}

// DefaultGenesisDAOs mirrors the protocol's four bootstrap DAOs.
func DefaultGenesisDAOs() []GenesisDAO {
	return []GenesisDAO{
		{
			Name:        "Operations DAO",
			Purpose:     "Protocol Operations Management",
			Description: "Top-level DAO; its operator holds final review authority",
			Operations:  true,
			DCAs: []DCA{
				{Id: "system-maintenance", Name: "System Maintenance", Description: "Infrastructure upkeep", Value: 120},
			},
		},
		{
			Name:        "Development DAO",
			Purpose:     "Protocol Development",
			Description: "Protocol implementation work",
			DCAs: []DCA{
				{Id: "pull-request", Name: "Pull Request", Description: "Merged pull request", Value: 100},
				{Id: "bug-fix", Name: "Bug Fix", Description: "Verified bug fix", Value: 80},
			},
		},
		{
			Name:        "Community DAO",
			Purpose:     "Community Management",
			Description: "Community programs and moderation",
			DCAs: []DCA{
				{Id: "content-creation", Name: "Content Creation", Description: "Published content", Value: 60},
			},
		},
		{
			Name:        "Political DAO",
			Purpose:     "Political Governance",
			Description: "Policy decisions and proposal funding",
			DCAs: []DCA{
				{Id: "proposal-funding-success", Name: "Proposal Funding Success", Description: "Proposal entered voting", Value: 20},
			},
		},
	}
}

// SaveAs is a utility method for saving GenesisDoc as a JSON file.
func (genDoc *GenesisDoc) SaveAs(file string) error {
	genDocBytes, err := json.MarshalIndent(genDoc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, genDocBytes, 0o600)
}

func (genDoc *GenesisDoc) ValidateAndComplete() error {
	if genDoc.ChainID == "" {
		return errors.New("genesis doc must include non-empty chain_id")
	}
	if len(genDoc.DAOs) == 0 {
		genDoc.DAOs = DefaultGenesisDAOs()
	}
	ops := 0
	for _, d := range genDoc.DAOs {
		if d.Name == "" {
			return errors.New("genesis dao must have a name")
		}
		if d.Operations {
			ops++
		}
	}
	if ops != 1 {
		return fmt.Errorf("genesis must name exactly one operations DAO (got %v)", ops)
	}
	if genDoc.OperatorGrant == 0 {
		genDoc.OperatorGrant = InitialOperatorGrant
	}
	if genDoc.GenesisTime.IsZero() {
		genDoc.GenesisTime = time.Now().Round(0).UTC()
	}
	return nil
}

func ExportGenesisFile(genesis *GenesisDoc, genFile string) error {
	if err := genesis.ValidateAndComplete(); err != nil {
		return err
	}
	return genesis.SaveAs(genFile)
}

func LoadGenesisFile(genFile string) (genDoc *GenesisDoc, err error) {
	dat, err := os.ReadFile(genFile)
	if err != nil {
		return nil, err
	}
	genDoc = new(GenesisDoc)
	if err = json.Unmarshal(dat, genDoc); err != nil {
		return nil, err
	}
	if err = genDoc.ValidateAndComplete(); err != nil {
		return nil, err
	}
	return
}
