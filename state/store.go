package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/syndtr/goleveldb/leveldb"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrProposalNoexists    = errors.New("proposal noexists")
	ErrDAONoexists         = errors.New("dao noexists")
	ErrAccountNoexists     = errors.New("account noexists")
	ErrCollateralNoexists  = errors.New("collateral noexists")
	ErrSuccessionNoexists  = errors.New("succession noexists")
	ErrSurveyNoexists      = errors.New("survey noexists")
	ErrDAOAlreadyExists    = errors.New("dao already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyInitialized  = errors.New("store already initialized")
)

var (
	KeyHeader     = "s"
	KeyProposal   = "p%s"
	KeyDAO        = "o%s"
	KeyDAOName    = "n%s"
	KeyAccount    = "a%s"
	KeyCollateral = "c%s"
	KeySuccession = "u%s"
	KeySurvey     = "v%s"
	KeyCredit     = "b%020d"
)

// storeHeader is the single metadata document; everything else is one JSON
// document per record, keyed by id.
type storeHeader struct {
	ChainId     string `json:"chain_id"`
	OpsDAOId    string `json:"ops_dao_id"`
	CreditIdx   uint64 `json:"credit_idx"`
	Initialized bool   `json:"initialized"`
}

// Store owns every governance record. Components mutate through it only; no
// caller keeps a shadow copy of proposal state across calls.
type Store struct {
	mtx    sync.RWMutex
	logger cmtlog.Logger
	db     *iavl.MutableTree
	dbVer  int64

	header *storeHeader
	hash   common.Hash
}

func NewStore(dir string, logger cmtlog.Logger) (s *Store, err error) {
	logger = logger.With("module", "store")
	ldb, err := dbm.NewDB("baekya", "goleveldb", dir)
	if err != nil {
		return nil, err
	}
	tdb := iavl.NewMutableTree(ldb, 128, true, IavlLogger(logger))
	version, err := tdb.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("load store success", "version", version)
	s = &Store{
		logger: logger,
		db:     tdb,
		dbVer:  version,
		header: new(storeHeader),
	}
	if err = s.loadHeader(); err != nil {
		logger.Error("load store header fail", "err", err)
		return nil, err
	}
	if h := tdb.Hash(); h != nil {
		s.calcHash(h)
	}
	return
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) loadHeader() error {
	val, err := s.db.Get([]byte(KeyHeader))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		return err
	}
	if val == nil {
		return nil
	}
	return json.Unmarshal(val, s.header)
}

func (s *Store) saveHeader() error {
	val, err := json.Marshal(s.header)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(KeyHeader), val)
	return err
}

func (s *Store) calcHash(rootHash []byte) common.Hash {
	s.hash = crypto.Keccak256Hash(rootHash)
	return s.hash
}

// Commit persists the working tree as a new version and refreshes the state
// digest.
func (s *Store) Commit() (h common.Hash, err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if err = s.saveHeader(); err != nil {
		s.db.Rollback()
		return
	}
	hash, ver, err := s.db.SaveVersion()
	if err != nil {
		return
	}
	s.dbVer = ver
	h = s.calcHash(hash)
	return
}

// Rollback discards uncommitted writes after a failed command so a rejected
// operation never leaves a half-transitioned record behind.
func (s *Store) Rollback() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.db.Rollback()
	s.header = new(storeHeader)
	if err := s.loadHeader(); err != nil {
		s.logger.Error("reload header after rollback fail", "err", err)
	}
}

func (s *Store) Hash() common.Hash {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.hash
}

func (s *Store) Version() int64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.dbVer
}

func (s *Store) ChainId() string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.header.ChainId
}

func (s *Store) OpsDAOId() string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.header.OpsDAOId
}

func (s *Store) Initialized() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.header.Initialized
}

func (s *Store) get(key string, out any) error {
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	if val == nil {
		return ErrNotFound
	}
	return json.Unmarshal(val, out)
}

func (s *Store) put(key string, rec any) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(key), val)
	return err
}

func (s *Store) PutProposal(p *types.Proposal) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.put(fmt.Sprintf(KeyProposal, p.Id), p)
}

func (s *Store) GetProposal(id string) (p *types.Proposal, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	p = new(types.Proposal)
	if err = s.get(fmt.Sprintf(KeyProposal, id), p); err != nil {
		if err == ErrNotFound {
			err = ErrProposalNoexists
		}
		return nil, err
	}
	return
}

func (s *Store) ListProposals() (proposals []*types.Proposal, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	start := []byte(fmt.Sprintf(KeyProposal, ""))
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, true)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		var p types.Proposal
		if err = json.Unmarshal(it.Value(), &p); err != nil {
			return nil, err
		}
		proposals = append(proposals, &p)
	}
	return
}

// OpenProposals returns every proposal the poller still has to watch: those
// in Voting and those waiting out the objection window.
func (s *Store) OpenProposals() (proposals []*types.Proposal, err error) {
	all, err := s.ListProposals()
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.Status == types.ProposalStatusVoting || p.Status == types.ProposalStatusOpsDAOObjection {
			proposals = append(proposals, p)
		}
	}
	return
}

func (s *Store) PutDAO(d *types.DAO) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if err := s.put(fmt.Sprintf(KeyDAO, d.Id), d); err != nil {
		return err
	}
	_, err := s.db.Set([]byte(fmt.Sprintf(KeyDAOName, d.Name)), []byte(d.Id))
	return err
}

func (s *Store) GetDAO(id string) (d *types.DAO, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	d = new(types.DAO)
	if err = s.get(fmt.Sprintf(KeyDAO, id), d); err != nil {
		if err == ErrNotFound {
			err = ErrDAONoexists
		}
		return nil, err
	}
	return
}

func (s *Store) FindDAOByName(name string) (d *types.DAO, err error) {
	s.mtx.RLock()
	id, err := s.db.Get([]byte(fmt.Sprintf(KeyDAOName, name)))
	s.mtx.RUnlock()
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrDAONoexists
		}
		return nil, err
	}
	if id == nil {
		return nil, ErrDAONoexists
	}
	return s.GetDAO(string(id))
}

func (s *Store) ListDAOs() (daos []*types.DAO, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	start := []byte(fmt.Sprintf(KeyDAO, ""))
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, true)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		var d types.DAO
		if err = json.Unmarshal(it.Value(), &d); err != nil {
			return nil, err
		}
		daos = append(daos, &d)
	}
	return
}

func (s *Store) PutCollateral(c *types.CollateralRecord) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.put(fmt.Sprintf(KeyCollateral, c.ProposalId), c)
}

func (s *Store) GetCollateral(proposalId string) (c *types.CollateralRecord, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	c = new(types.CollateralRecord)
	if err = s.get(fmt.Sprintf(KeyCollateral, proposalId), c); err != nil {
		if err == ErrNotFound {
			err = ErrCollateralNoexists
		}
		return nil, err
	}
	return
}

func (s *Store) PutSuccession(su *types.Succession) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.put(fmt.Sprintf(KeySuccession, su.DAOId), su)
}

func (s *Store) GetSuccession(daoId string) (su *types.Succession, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	su = new(types.Succession)
	if err = s.get(fmt.Sprintf(KeySuccession, daoId), su); err != nil {
		if err == ErrNotFound {
			err = ErrSuccessionNoexists
		}
		return nil, err
	}
	return
}

func (s *Store) ListSuccessions() (sus []*types.Succession, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	start := []byte(fmt.Sprintf(KeySuccession, ""))
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, true)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		var su types.Succession
		if err = json.Unmarshal(it.Value(), &su); err != nil {
			return nil, err
		}
		sus = append(sus, &su)
	}
	return
}

func (s *Store) PutSurvey(sv *types.Survey) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.put(fmt.Sprintf(KeySurvey, sv.Id), sv)
}

func (s *Store) GetSurvey(id string) (sv *types.Survey, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	sv = new(types.Survey)
	if err = s.get(fmt.Sprintf(KeySurvey, id), sv); err != nil {
		if err == ErrNotFound {
			err = ErrSurveyNoexists
		}
		return nil, err
	}
	return
}

// AppendCredit assigns the next contribution-credit index and stores the
// entry; credits are append-only.
func (s *Store) AppendCredit(c *types.ContributionCredit) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.header.CreditIdx += 1
	c.Index = s.header.CreditIdx
	return s.put(fmt.Sprintf(KeyCredit, c.Index), c)
}

func (s *Store) ListCredits() (credits []*types.ContributionCredit, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	start := []byte("b")
	end := PrefixEndBytes(start)
	it, err := s.db.Iterator(start, end, true)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		var c types.ContributionCredit
		if err = json.Unmarshal(it.Value(), &c); err != nil {
			return nil, err
		}
		credits = append(credits, &c)
	}
	return
}

// ApplyGenesis seeds the store with the genesis DAOs and installs the initial
// operator with the configured P-token grant in each.
func (s *Store) ApplyGenesis(gen *types.GenesisDoc, newId func() string, now time.Time) error {
	if s.Initialized() {
		return ErrAlreadyInitialized
	}
	for _, gd := range gen.DAOs {
		dao := &types.DAO{
			Id:          newId(),
			Name:        gd.Name,
			Purpose:     gd.Purpose,
			Description: gd.Description,
			FounderId:   gen.InitialOperator,
			OperatorId:  gen.InitialOperator,
			Operations:  gd.Operations,
			Members:     []string{gen.InitialOperator},
			DCAs:        gd.DCAs,
			CreatedAt:   now,
		}
		if err := s.PutDAO(dao); err != nil {
			return err
		}
		if gd.Operations {
			s.mtx.Lock()
			s.header.OpsDAOId = dao.Id
			s.mtx.Unlock()
		}
		if err := s.AddBalance(gen.InitialOperator, gen.OperatorGrant, now); err != nil {
			return err
		}
	}
	s.mtx.Lock()
	s.header.ChainId = gen.ChainID
	s.header.Initialized = true
	s.mtx.Unlock()
	_, err := s.Commit()
	return err
}

func PrefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)

	for {
		if end[len(end)-1] != byte(255) {
			end[len(end)-1]++
			break
		}

		end = end[:len(end)-1]

		if len(end) == 0 {
			end = nil
			break
		}
	}

	return end
}
