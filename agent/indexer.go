package agent

import (
	"context"

	"github.com/baekya-protocol/baekya-protocol-sub000/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Indexer consumes the engine's event feed into a sqlite read model so the
// UI can page and filter without touching the authoritative store.
type Indexer struct {
	logger        cmtlog.Logger
	db            *gorm.DB
	events        <-chan types.Event
	eventHandlers map[string]eventHandler
}

type eventHandler func(ctx context.Context, event types.Event)

func NewIndexer(logger cmtlog.Logger, dbPath string, events <-chan types.Event) (*Indexer, error) {
	logger = logger.With("module", "indexer")
	logger.Info("open indexer", "dbPath", dbPath)
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ProposalRow{}, &VoteRow{}, &ObjectionRow{}, &FinalDecisionRow{}, &CollateralRow{}, &SuccessionOfferRow{}, &CreditRow{}).Error; err != nil {
		return nil, err
	}
	c := &Indexer{
		logger: logger,
		db:     db,
		events: events,
	}
	c.eventHandlers = map[string]eventHandler{
		types.EventProposalStatusType:     c.handleEventProposalStatus,
		types.EventVoteType:               c.handleEventVote,
		types.EventObjectionType:          c.handleEventObjection,
		types.EventFinalDecisionType:      c.handleEventFinalDecision,
		types.EventCollateralResolvedType: c.handleEventCollateralResolved,
		types.EventSuccessionOfferType:    c.handleEventSuccessionOffer,
		types.EventSuccessionResolvedType: c.handleEventSuccessionResolved,
		types.EventCreditIssuedType:       c.handleEventCreditIssued,
	}
	return c, nil
}

func (c *Indexer) Close() error {
	return c.db.Close()
}

// Start drains the feed until ctx is cancelled.
func (c *Indexer) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-c.events:
			if !ok {
				return
			}
			c.handleEvent(ctx, ev)
		}
	}
}

func (c *Indexer) handleEvent(ctx context.Context, event types.Event) {
	if h, ok := c.eventHandlers[event.Type]; ok {
		h(ctx, event)
	}
}

func (c *Indexer) handleEventProposalStatus(ctx context.Context, event types.Event) {
	ev := types.DecodeEventProposalStatus(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := ProposalRow{
		Id:           ev.ProposalId,
		DAO:          ev.DAOId,
		Kind:         uint64(ev.Kind),
		Status:       uint64(ev.Status),
		StatusReason: ev.Reason,
	}
	if err := c.db.Save(&row).Error; err != nil {
		c.logger.Error("save proposal fail", "err", err)
	}
}

func (c *Indexer) handleEventVote(ctx context.Context, event types.Event) {
	ev := types.DecodeEventVote(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := VoteRow{
		Proposal: ev.ProposalId,
		Voter:    ev.VoterId,
		Choice:   uint64(ev.Choice),
		Total:    ev.TotalVotes,
	}
	if err := c.db.Create(&row).Error; err != nil {
		c.logger.Error("save vote fail", "err", err)
	}
}

func (c *Indexer) handleEventObjection(ctx context.Context, event types.Event) {
	ev := types.DecodeEventObjection(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := ObjectionRow{
		Id:       ev.ObjectionId,
		Proposal: ev.ProposalId,
		Objector: ev.ObjectorId,
		Reason:   ev.Reason,
	}
	if err := c.db.Save(&row).Error; err != nil {
		c.logger.Error("save objection fail", "err", err)
	}
}

func (c *Indexer) handleEventFinalDecision(ctx context.Context, event types.Event) {
	ev := types.DecodeEventFinalDecision(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := FinalDecisionRow{
		Proposal: ev.ProposalId,
		Decision: uint64(ev.Decision),
		Reviewer: ev.Reviewer,
		Adopted:  ev.Adopted,
	}
	if err := c.db.Save(&row).Error; err != nil {
		c.logger.Error("save final decision fail", "err", err)
	}
}

func (c *Indexer) handleEventCollateralResolved(ctx context.Context, event types.Event) {
	ev := types.DecodeEventCollateralResolved(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := CollateralRow{
		Proposal: ev.ProposalId,
		State:    uint64(ev.State),
		Refunded: ev.Refunded,
		Burned:   ev.Burned,
	}
	if err := c.db.Save(&row).Error; err != nil {
		c.logger.Error("save collateral fail", "err", err)
	}
}

func (c *Indexer) handleEventSuccessionOffer(ctx context.Context, event types.Event) {
	ev := types.DecodeEventSuccessionOffer(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := SuccessionOfferRow{
		DAO:      ev.DAOId,
		Member:   ev.MemberId,
		Rank:     ev.Rank,
		ExpireAt: ev.ExpireAt.String(),
	}
	if err := c.db.Create(&row).Error; err != nil {
		c.logger.Error("save succession offer fail", "err", err)
	}
}

func (c *Indexer) handleEventSuccessionResolved(ctx context.Context, event types.Event) {
	ev := types.DecodeEventSuccessionResolved(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := SuccessionOfferRow{
		DAO:      ev.DAOId,
		Status:   uint64(ev.Status),
		Operator: ev.NewOperator,
	}
	if err := c.db.Create(&row).Error; err != nil {
		c.logger.Error("save succession resolution fail", "err", err)
	}
}

func (c *Indexer) handleEventCreditIssued(ctx context.Context, event types.Event) {
	ev := types.DecodeEventCreditIssued(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := CreditRow{
		Member:   ev.MemberId,
		DAO:      ev.DAOId,
		Proposal: ev.ProposalId,
		Amount:   ev.Amount,
		Reason:   ev.Reason,
	}
	if err := c.db.Create(&row).Error; err != nil {
		c.logger.Error("save credit fail", "err", err)
	}
}

func (c *Indexer) getProposals(page int, pageSize int) ([]ProposalRow, uint64, error) {
	var proposals []ProposalRow
	err := c.db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&ProposalRow{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (c *Indexer) getProposalById(proposalId string) (ProposalRow, error) {
	var proposal ProposalRow
	err := c.db.Where("id = ?", proposalId).First(&proposal).Error
	if err != nil {
		return ProposalRow{}, err
	}
	return proposal, nil
}

func (c *Indexer) getProposalsByDAO(daoId string, page int, pageSize int) ([]ProposalRow, uint64, error) {
	var proposals []ProposalRow
	err := c.db.Where("dao = ?", daoId).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&ProposalRow{}).Where("dao = ?", daoId).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (c *Indexer) getVotesByProposal(proposalId string, page int, pageSize int) ([]VoteRow, uint64, error) {
	var votes []VoteRow
	err := c.db.Where("proposal = ?", proposalId).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&VoteRow{}).Where("proposal = ?", proposalId).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}

func (c *Indexer) getObjectionsByProposal(proposalId string, page int, pageSize int) ([]ObjectionRow, uint64, error) {
	var objections []ObjectionRow
	err := c.db.Where("proposal = ?", proposalId).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&objections).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&ObjectionRow{}).Where("proposal = ?", proposalId).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return objections, total, nil
}

func (c *Indexer) getCollateralByProposal(proposalId string) (CollateralRow, error) {
	var collateral CollateralRow
	err := c.db.Where("proposal = ?", proposalId).First(&collateral).Error
	if err != nil {
		return CollateralRow{}, err
	}
	return collateral, nil
}

func (c *Indexer) getSuccessionOffersByDAO(daoId string, page int, pageSize int) ([]SuccessionOfferRow, uint64, error) {
	var offers []SuccessionOfferRow
	err := c.db.Where("dao = ?", daoId).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&offers).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&SuccessionOfferRow{}).Where("dao = ?", daoId).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

func (c *Indexer) getCreditsByMember(memberId string, page int, pageSize int) ([]CreditRow, uint64, error) {
	var credits []CreditRow
	err := c.db.Where("member = ?", memberId).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&credits).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&CreditRow{}).Where("member = ?", memberId).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return credits, total, nil
}
