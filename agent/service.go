package agent

import (
	"io"
	"net/http"

	"github.com/baekya-protocol/baekya-protocol-sub000/command"
	"github.com/baekya-protocol/baekya-protocol-sub000/gov"
	"github.com/gin-gonic/gin"
)

// Service is the HTTP surface the UI collaborator talks to: one command
// endpoint plus read queries answered from the indexer and the store.
type Service struct {
	engine     *gin.Engine
	gov        *gov.Engine
	dispatcher *command.Dispatcher
	indexer    *Indexer
	listenAddr string
}

func NewService(listenAddr string, govEngine *gov.Engine, dispatcher *command.Dispatcher, indexer *Indexer) *Service {
	r := gin.Default()
	s := &Service{
		engine:     r,
		gov:        govEngine,
		dispatcher: dispatcher,
		indexer:    indexer,
		listenAddr: listenAddr,
	}
	s.engine.POST("/command", s.handleCommand)
	s.engine.POST("/getProposals", s.handleGetProposals)
	s.engine.POST("/getVotes", s.handleGetVotes)
	s.engine.POST("/getObjections", s.handleGetObjections)
	s.engine.POST("/getCollateral", s.handleGetCollateral)
	s.engine.POST("/getSuccession", s.handleGetSuccession)
	s.engine.POST("/getCredits", s.handleGetCredits)
	s.engine.POST("/getDAOs", s.handleGetDAOs)
	s.engine.POST("/status", s.handleStatus)
	return s
}

func (s *Service) Start() {
	s.engine.Run(s.listenAddr)
}

// failureStatus maps the engine's rejection classes onto HTTP codes.
func failureStatus(err error) int {
	switch gov.Classify(err) {
	case gov.ClassValidation:
		return http.StatusBadRequest
	case gov.ClassAuthorization:
		return http.StatusForbidden
	case gov.ClassStage:
		return http.StatusConflict
	case gov.ClassCapacity:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type CommandResponse struct {
	Result any `json:"result,omitempty"`
}

func (s *Service) handleCommand(c *gin.Context) {
	dat, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd, err := command.UnmarshalCommand(dat)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.dispatcher.Apply(cmd)
	if err != nil {
		c.JSON(failureStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, CommandResponse{Result: result})
}

type GetProposalsReq struct {
	ProposalId string `json:"proposalId"`
	DAOId      string `json:"daoId"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

type GetProposalsResponse struct {
	Proposals []ProposalRow `json:"proposals"`
	Total     uint64        `json:"total"`
}

func (s *Service) handleGetProposals(c *gin.Context) {
	var response GetProposalsResponse
	response.Proposals = make([]ProposalRow, 0)
	var requestData GetProposalsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.ProposalId != "" {
		proposal, err := s.indexer.getProposalById(requestData.ProposalId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Proposals = append(response.Proposals, proposal)
		response.Total = 1
		c.JSON(http.StatusOK, response)
		return
	}
	var proposals []ProposalRow
	var total uint64
	var err error
	if requestData.DAOId != "" {
		proposals, total, err = s.indexer.getProposalsByDAO(requestData.DAOId, requestData.Page, requestData.PageSize)
	} else {
		proposals, total, err = s.indexer.getProposals(requestData.Page, requestData.PageSize)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Proposals = proposals
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetVotesReq struct {
	ProposalId string `json:"proposalId"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

type GetVotesResponse struct {
	Votes []VoteRow `json:"votes"`
	Total uint64    `json:"total"`
}

func (s *Service) handleGetVotes(c *gin.Context) {
	var response GetVotesResponse
	response.Votes = make([]VoteRow, 0)
	var requestData GetVotesReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.ProposalId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proposalId is required"})
		return
	}
	votes, total, err := s.indexer.getVotesByProposal(requestData.ProposalId, requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Votes = votes
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetObjectionsReq struct {
	ProposalId string `json:"proposalId"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

type GetObjectionsResponse struct {
	Objections []ObjectionRow `json:"objections"`
	Total      uint64         `json:"total"`
}

func (s *Service) handleGetObjections(c *gin.Context) {
	var response GetObjectionsResponse
	response.Objections = make([]ObjectionRow, 0)
	var requestData GetObjectionsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.ProposalId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proposalId is required"})
		return
	}
	objections, total, err := s.indexer.getObjectionsByProposal(requestData.ProposalId, requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Objections = objections
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetCollateralReq struct {
	ProposalId string `json:"proposalId"`
}

func (s *Service) handleGetCollateral(c *gin.Context) {
	var requestData GetCollateralReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	collateral, err := s.indexer.getCollateralByProposal(requestData.ProposalId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, collateral)
}

type GetSuccessionReq struct {
	DAOId    string `json:"daoId"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetSuccessionResponse struct {
	Offers []SuccessionOfferRow `json:"offers"`
	Total  uint64               `json:"total"`
}

func (s *Service) handleGetSuccession(c *gin.Context) {
	var response GetSuccessionResponse
	response.Offers = make([]SuccessionOfferRow, 0)
	var requestData GetSuccessionReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.DAOId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "daoId is required"})
		return
	}
	offers, total, err := s.indexer.getSuccessionOffersByDAO(requestData.DAOId, requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Offers = offers
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetCreditsReq struct {
	MemberId string `json:"memberId"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetCreditsResponse struct {
	Credits []CreditRow `json:"credits"`
	Total   uint64      `json:"total"`
}

func (s *Service) handleGetCredits(c *gin.Context) {
	var response GetCreditsResponse
	response.Credits = make([]CreditRow, 0)
	var requestData GetCreditsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.MemberId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "memberId is required"})
		return
	}
	credits, total, err := s.indexer.getCreditsByMember(requestData.MemberId, requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Credits = credits
	response.Total = total
	c.JSON(http.StatusOK, response)
}

func (s *Service) handleGetDAOs(c *gin.Context) {
	daos, err := s.gov.Store().ListDAOs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"daos": daos})
}

type StatusResponse struct {
	ChainId  string `json:"chainId"`
	Version  int64  `json:"version"`
	Hash     string `json:"hash"`
	OpsDAOId string `json:"opsDaoId"`
}

func (s *Service) handleStatus(c *gin.Context) {
	store := s.gov.Store()
	c.JSON(http.StatusOK, StatusResponse{
		ChainId:  store.ChainId(),
		Version:  store.Version(),
		Hash:     store.Hash().Hex(),
		OpsDAOId: store.OpsDAOId(),
	})
}
