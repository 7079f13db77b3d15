package app

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/common/rlog"
	"github.com/meverselabs/partyround/contract/partyround"
	"github.com/meverselabs/partyround/contract/token"
	"github.com/meverselabs/partyround/core/chain"
	"github.com/meverselabs/partyround/core/types"
)

// Genesis describes the ledgers deployed when a node starts on an empty store
type Genesis struct {
	Admin           common.Address
	BaseName        string
	BaseSymbol      string
	Balances        map[common.Address]uint64
	OwnershipName   string
	OwnershipSymbol string
}

// Deployment records the addresses created by the genesis
type Deployment struct {
	BaseToken      common.Address `json:"baseToken"`
	OwnershipToken common.Address `json:"ownershipToken"`
	PartyRound     common.Address `json:"partyRound"`
}

// ClassMap has the class ids of the contract types of the app
type ClassMap struct {
	Token      uint64
	PartyRound uint64
}

// RegisterContractClass registers the contract types of the app
func RegisterContractClass() (*ClassMap, error) {
	tokenID, err := types.RegisterContractType(&token.TokenContract{})
	if err != nil {
		return nil, err
	}
	partyID, err := types.RegisterContractType(&partyround.PartyRoundContract{})
	if err != nil {
		return nil, err
	}
	return &ClassMap{Token: tokenID, PartyRound: partyID}, nil
}

// Deploy creates the base ledger, the ownership ledger and the entity, then lets the entity mint
func Deploy(cn *chain.Chain, g *Genesis) (*Deployment, error) {
	classMap, err := RegisterContractClass()
	if err != nil {
		return nil, err
	}
	if g.Admin == common.ZeroAddr {
		return nil, errors.New("genesis admin is required")
	}

	baseArgs, _, err := bin.WriterToBytes(&token.TokenContractConstruction{
		Name:             g.BaseName,
		Symbol:           g.BaseSymbol,
		InitialSupplyMap: g.Balances,
	})
	if err != nil {
		return nil, err
	}
	base, err := cn.DeployContract(g.Admin, classMap.Token, baseArgs)
	if err != nil {
		return nil, errors.Wrap(err, "deploy base token")
	}

	ownArgs, _, err := bin.WriterToBytes(&token.TokenContractConstruction{
		Name:             g.OwnershipName,
		Symbol:           g.OwnershipSymbol,
		InitialSupplyMap: map[common.Address]uint64{},
	})
	if err != nil {
		return nil, err
	}
	own, err := cn.DeployContract(g.Admin, classMap.Token, ownArgs)
	if err != nil {
		return nil, errors.Wrap(err, "deploy ownership token")
	}

	partyArgs, _, err := bin.WriterToBytes(&partyround.PartyRoundContractConstruction{
		BaseToken:      base,
		OwnershipToken: own,
	})
	if err != nil {
		return nil, err
	}
	entity, err := cn.DeployContract(g.Admin, classMap.PartyRound, partyArgs)
	if err != nil {
		return nil, errors.Wrap(err, "deploy party round")
	}
	if _, err := cn.Exec(g.Admin, own, "SetMinter", []interface{}{entity, true}); err != nil {
		return nil, errors.Wrap(err, "set minter")
	}
	rlog.Infow("genesis deployed", "base", base.String(), "ownership", own.String(), "partyRound", entity.String())
	return &Deployment{
		BaseToken:      base,
		OwnershipToken: own,
		PartyRound:     entity,
	}, nil
}

// LoadDeployment reads the deployment file, it returns nil when the file does not exist
func LoadDeployment(path string) (*Deployment, error) {
	bs, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	var d Deployment
	if err := json.Unmarshal(bs, &d); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &d, nil
}

// SaveDeployment writes the deployment file
func SaveDeployment(path string, d *Deployment) error {
	bs, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, bs, 0o644))
}
