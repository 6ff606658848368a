package gov

import (
	"sync"
	"time"

	"github.com/baekya-protocol/baekya-protocol-sub000/config"
	"github.com/baekya-protocol/baekya-protocol-sub000/state"
	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/google/uuid"
)

const eventBufferSize = 1024

// Engine drives the whole proposal lifecycle: funding, voting, the review
// cascade, collateral resolution and operator succession. All mutations go
// through the store; per-proposal operations are serialized by keyed locks
// and store writes commit or roll back as a unit.
type Engine struct {
	logger cmtlog.Logger
	store  *state.Store
	cfg    *config.GovernanceConfig

	events  chan types.Event
	dropped uint64

	clock func() time.Time
	newId func() string

	// writeMtx serializes the mutate+commit section; the store keeps one
	// working tree, so uncommitted writes of concurrent commands must not
	// interleave.
	writeMtx sync.Mutex
	pending  []types.Event
	after    []func()

	mtx         sync.Mutex
	locks       map[string]*sync.Mutex
	offerTimers map[string]*offerTimer
}

func NewEngine(store *state.Store, cfg *config.GovernanceConfig, logger cmtlog.Logger) *Engine {
	return &Engine{
		logger:      logger.With("module", "gov"),
		store:       store,
		cfg:         cfg,
		events:      make(chan types.Event, eventBufferSize),
		clock:       time.Now,
		newId:       uuid.NewString,
		locks:       make(map[string]*sync.Mutex),
		offerTimers: make(map[string]*offerTimer),
	}
}

func (e *Engine) Store() *state.Store {
	return e.store
}

// Events is the feed the indexer and UI layer consume.
func (e *Engine) Events() <-chan types.Event {
	return e.events
}

func (e *Engine) lock(key string) (unlock func()) {
	e.mtx.Lock()
	mu, ok := e.locks[key]
	if !ok {
		mu = new(sync.Mutex)
		e.locks[key] = mu
	}
	e.mtx.Unlock()
	mu.Lock()
	return mu.Unlock
}

// queue records an event to be emitted only if the surrounding command
// commits.
func (e *Engine) queue(ev types.Event) {
	e.pending = append(e.pending, ev)
}

// deferAfterCommit schedules work (timer arms and cancels) that must not run
// when the command rolls back.
func (e *Engine) deferAfterCommit(fn func()) {
	e.after = append(e.after, fn)
}

func (e *Engine) emit(ev types.Event) {
	select {
	case e.events <- ev:
	default:
		e.dropped += 1
		e.logger.Error("event feed full, dropping", "type", ev.Type, "dropped", e.dropped)
	}
}

// apply runs fn against the store under the write lock and commits on
// success. On failure every uncommitted write is rolled back, queued events
// are discarded and deferred work is dropped, so a rejected command leaves
// no trace.
func (e *Engine) apply(fn func() error) error {
	e.writeMtx.Lock()
	defer e.writeMtx.Unlock()
	e.pending = nil
	e.after = nil
	if err := fn(); err != nil {
		e.store.Rollback()
		e.pending = nil
		e.after = nil
		return err
	}
	if _, err := e.store.Commit(); err != nil {
		e.store.Rollback()
		e.pending = nil
		e.after = nil
		return err
	}
	for _, ev := range e.pending {
		e.emit(ev)
	}
	for _, fn := range e.after {
		fn()
	}
	e.pending = nil
	e.after = nil
	return nil
}

// applyProposal serializes on the proposal id, loads the record and runs fn.
func (e *Engine) applyProposal(proposalId string, fn func(p *types.Proposal) error) error {
	unlock := e.lock("proposal/" + proposalId)
	defer unlock()
	return e.apply(func() error {
		p, err := e.store.GetProposal(proposalId)
		if err != nil {
			return err
		}
		return fn(p)
	})
}

// ProposalInput carries everything a propose command may set. Kind-specific
// fields are ignored for other kinds.
type ProposalInput struct {
	DAOId       string             `json:"daoId"`
	Proposer    string             `json:"proposer"`
	Kind        types.ProposalKind `json:"kind"`
	Title       string             `json:"title"`
	Description string             `json:"description"`

	ProposedDAOName    string      `json:"proposedDaoName,omitempty"`
	ProposedDCAs       []types.DCA `json:"proposedDcas,omitempty"`
	InitialOPCandidate string      `json:"initialOpCandidate,omitempty"`

	TargetOperator string `json:"targetOperator,omitempty"`
}

// SubmitProposal creates a proposal in the Funding stage. DAO-creation
// proposals lock the fixed P-token collateral up front; the command fails
// whole if the proposer cannot cover it.
func (e *Engine) SubmitProposal(in ProposalInput) (p *types.Proposal, err error) {
	err = e.apply(func() error {
		dao, err := e.store.GetDAO(in.DAOId)
		if err != nil {
			return err
		}
		if !dao.HasMember(in.Proposer) {
			return ErrNotMember
		}
		if in.Title == "" {
			return ErrInvalidProposal
		}
		now := e.clock()
		impeachment := in.Kind == types.KindImpeachment
		p = &types.Proposal{
			Id:           e.newId(),
			DAOId:        in.DAOId,
			Kind:         in.Kind,
			Status:       types.ProposalStatusFunding,
			Proposer:     in.Proposer,
			Title:        in.Title,
			Description:  in.Description,
			Voters:       make(map[string]types.VoteChoice),
			QuorumPct:    e.cfg.QuorumPctFor(impeachment),
			ThresholdPct: e.cfg.ApprovalPctFor(impeachment),
			CreatedAt:    now,
		}
		switch in.Kind {
		case types.KindGeneral:
		case types.KindImpeachment:
			p.TargetOperator = in.TargetOperator
			if p.TargetOperator == "" {
				p.TargetOperator = dao.OperatorId
			}
		case types.KindDAOCreation:
			if in.ProposedDAOName == "" || in.InitialOPCandidate == "" {
				return ErrInvalidProposal
			}
			p.ProposedDAOName = in.ProposedDAOName
			p.ProposedDCAs = in.ProposedDCAs
			p.InitialOPCandidate = in.InitialOPCandidate
			p.CollateralAmount = e.cfg.CollateralAmount
			if err := e.lockCollateral(p, now); err != nil {
				return err
			}
		default:
			return ErrInvalidProposal
		}
		if err := e.store.PutProposal(p); err != nil {
			return err
		}
		e.queueStatus(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PayProposalStake adds proposer stake during the Funding stage and checks
// whether the proposal can enter Voting.
func (e *Engine) PayProposalStake(proposalId, payerId string, amount uint64) error {
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		if p.Proposer != payerId {
			return ErrNotAuthorized
		}
		if p.Status != types.ProposalStatusFunding {
			return ErrWrongStage
		}
		p.Stake += amount
		if err := e.checkFundingProgress(p); err != nil {
			return err
		}
		return e.store.PutProposal(p)
	})
}

// EndorseProposal adds member endorsement weight during Funding.
func (e *Engine) EndorseProposal(proposalId, endorserId string, amount uint64) error {
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		dao, err := e.store.GetDAO(p.DAOId)
		if err != nil {
			return err
		}
		if !dao.HasMember(endorserId) {
			return ErrNotMember
		}
		if p.Status != types.ProposalStatusFunding {
			return ErrWrongStage
		}
		p.Endorsements += amount
		if err := e.checkFundingProgress(p); err != nil {
			return err
		}
		return e.store.PutProposal(p)
	})
}

// EnterVoting is the collaborator's funding-threshold-met signal; it forces
// the Funding→Voting transition regardless of the local counters.
func (e *Engine) EnterVoting(proposalId string) error {
	return e.applyProposal(proposalId, func(p *types.Proposal) error {
		if p.Status != types.ProposalStatusFunding {
			return ErrWrongStage
		}
		e.enterVoting(p)
		return e.store.PutProposal(p)
	})
}

func (e *Engine) checkFundingProgress(p *types.Proposal) error {
	if p.Status != types.ProposalStatusFunding {
		return nil
	}
	dao, err := e.store.GetDAO(p.DAOId)
	if err != nil {
		return err
	}
	required := (uint64(len(dao.Members))*e.cfg.EndorsementPct + 99) / 100
	if required < 1 {
		required = 1
	}
	if p.Stake >= e.cfg.MinProposalStake && p.Endorsements >= required {
		e.enterVoting(p)
	}
	return nil
}

func (e *Engine) enterVoting(p *types.Proposal) {
	now := e.clock()
	p.Status = types.ProposalStatusVoting
	p.VotingStart = now
	p.VotingEnd = now.Add(e.cfg.VotingPeriod)
	e.queueStatus(p)
}

// AddMember registers a contributor as a DAO member; contribution makes
// membership, there is no separate signup.
func (e *Engine) AddMember(daoId, memberId string) error {
	unlock := e.lock("dao/" + daoId)
	defer unlock()
	return e.apply(func() error {
		dao, err := e.store.GetDAO(daoId)
		if err != nil {
			return err
		}
		if dao.HasMember(memberId) {
			return nil
		}
		dao.Members = append(dao.Members, memberId)
		return e.store.PutDAO(dao)
	})
}

// GrantTokens credits a member with P-tokens. Exposed for the collaborator's
// reward pipeline; the engine itself only mints through collateral
// conversion and genesis.
func (e *Engine) GrantTokens(memberId string, amount uint64) error {
	return e.apply(func() error {
		return e.store.AddBalance(memberId, amount, e.clock())
	})
}

func (e *Engine) queueStatus(p *types.Proposal) {
	e.queue(types.EncodeEventProposalStatus(&types.EventProposalStatus{
		ProposalId: p.Id,
		DAOId:      p.DAOId,
		Kind:       p.Kind,
		Status:     p.Status,
		Reason:     p.StatusReason,
	}))
}
