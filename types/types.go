package types

import (
	"fmt"
	"strconv"
	"time"
)

const (
	EventProposalStatusType     = "proposal_status"
	EventVoteType               = "vote"
	EventObjectionType          = "objection"
	EventFinalDecisionType      = "final_decision"
	EventCollateralResolvedType = "collateral_resolved"
	EventSuccessionOfferType    = "succession_offer"
	EventSuccessionResolvedType = "succession_resolved"
	EventCreditIssuedType       = "credit_issued"
)

type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Index bool   `json:"index"`
}

// Event is the flat attribute form every engine emission takes on its way to
// the indexer and the UI feed.
type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

type EventProposalStatus struct {
	ProposalId string         `json:"proposalId"`
	DAOId      string         `json:"daoId"`
	Kind       ProposalKind   `json:"kind"`
	Status     ProposalStatus `json:"status"`
	Reason     string         `json:"reason"`
}

func EncodeEventProposalStatus(event *EventProposalStatus) Event {
	return Event{
		Type: EventProposalStatusType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: event.ProposalId, Index: true},
			{Key: "dao", Value: event.DAOId, Index: true},
			{Key: "kind", Value: fmt.Sprintf("%v", uint64(event.Kind)), Index: false},
			{Key: "status", Value: fmt.Sprintf("%v", uint64(event.Status)), Index: false},
			{Key: "reason", Value: event.Reason, Index: false},
		},
	}
}

func DecodeEventProposalStatus(originEvent Event) *EventProposalStatus {
	event := &EventProposalStatus{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			event.ProposalId = v.Value
		case "dao":
			event.DAOId = v.Value
		case "kind":
			kind, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Kind = ProposalKind(kind)
		case "status":
			status, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Status = ProposalStatus(status)
		case "reason":
			event.Reason = v.Value
		}
	}
	return event
}

type EventVote struct {
	ProposalId string     `json:"proposalId"`
	VoterId    string     `json:"voterId"`
	Choice     VoteChoice `json:"choice"`
	TotalVotes uint64     `json:"totalVotes"`
}

func EncodeEventVote(event *EventVote) Event {
	return Event{
		Type: EventVoteType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: event.ProposalId, Index: true},
			{Key: "voter", Value: event.VoterId, Index: true},
			{Key: "choice", Value: fmt.Sprintf("%v", uint64(event.Choice)), Index: false},
			{Key: "total", Value: fmt.Sprintf("%v", event.TotalVotes), Index: false},
		},
	}
}

func DecodeEventVote(originEvent Event) *EventVote {
	event := &EventVote{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			event.ProposalId = v.Value
		case "voter":
			event.VoterId = v.Value
		case "choice":
			choice, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Choice = VoteChoice(choice)
		case "total":
			total, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.TotalVotes = total
		}
	}
	return event
}

type EventObjection struct {
	ProposalId  string `json:"proposalId"`
	ObjectionId string `json:"objectionId"`
	ObjectorId  string `json:"objectorId"`
	Reason      string `json:"reason"`
}

func EncodeEventObjection(event *EventObjection) Event {
	return Event{
		Type: EventObjectionType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: event.ProposalId, Index: true},
			{Key: "objection", Value: event.ObjectionId, Index: true},
			{Key: "objector", Value: event.ObjectorId, Index: false},
			{Key: "reason", Value: event.Reason, Index: false},
		},
	}
}

func DecodeEventObjection(originEvent Event) *EventObjection {
	event := &EventObjection{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			event.ProposalId = v.Value
		case "objection":
			event.ObjectionId = v.Value
		case "objector":
			event.ObjectorId = v.Value
		case "reason":
			event.Reason = v.Value
		}
	}
	return event
}

type EventFinalDecision struct {
	ProposalId string   `json:"proposalId"`
	Decision   Decision `json:"decision"`
	Reviewer   string   `json:"reviewer"`
	Adopted    uint64   `json:"adopted"`
}

func EncodeEventFinalDecision(event *EventFinalDecision) Event {
	return Event{
		Type: EventFinalDecisionType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: event.ProposalId, Index: true},
			{Key: "decision", Value: fmt.Sprintf("%v", uint64(event.Decision)), Index: false},
			{Key: "reviewer", Value: event.Reviewer, Index: false},
			{Key: "adopted", Value: fmt.Sprintf("%v", event.Adopted), Index: false},
		},
	}
}

func DecodeEventFinalDecision(originEvent Event) *EventFinalDecision {
	event := &EventFinalDecision{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			event.ProposalId = v.Value
		case "decision":
			decision, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Decision = Decision(decision)
		case "reviewer":
			event.Reviewer = v.Value
		case "adopted":
			adopted, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Adopted = adopted
		}
	}
	return event
}

type EventCollateralResolved struct {
	ProposalId string          `json:"proposalId"`
	State      CollateralState `json:"state"`
	Refunded   uint64          `json:"refunded"`
	Burned     uint64          `json:"burned"`
}

func EncodeEventCollateralResolved(event *EventCollateralResolved) Event {
	return Event{
		Type: EventCollateralResolvedType,
		Attributes: []EventAttribute{
			{Key: "proposal", Value: event.ProposalId, Index: true},
			{Key: "state", Value: fmt.Sprintf("%v", uint64(event.State)), Index: false},
			{Key: "refunded", Value: fmt.Sprintf("%v", event.Refunded), Index: false},
			{Key: "burned", Value: fmt.Sprintf("%v", event.Burned), Index: false},
		},
	}
}

func DecodeEventCollateralResolved(originEvent Event) *EventCollateralResolved {
	event := &EventCollateralResolved{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			event.ProposalId = v.Value
		case "state":
			state, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.State = CollateralState(state)
		case "refunded":
			refunded, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Refunded = refunded
		case "burned":
			burned, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Burned = burned
		}
	}
	return event
}

type EventSuccessionOffer struct {
	DAOId    string    `json:"daoId"`
	MemberId string    `json:"memberId"`
	Rank     int       `json:"rank"`
	ExpireAt time.Time `json:"expireAt"`
}

func EncodeEventSuccessionOffer(event *EventSuccessionOffer) Event {
	return Event{
		Type: EventSuccessionOfferType,
		Attributes: []EventAttribute{
			{Key: "dao", Value: event.DAOId, Index: true},
			{Key: "member", Value: event.MemberId, Index: true},
			{Key: "rank", Value: fmt.Sprintf("%v", event.Rank), Index: false},
			{Key: "expireAt", Value: event.ExpireAt.Format(time.RFC3339), Index: false},
		},
	}
}

func DecodeEventSuccessionOffer(originEvent Event) *EventSuccessionOffer {
	event := &EventSuccessionOffer{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "dao":
			event.DAOId = v.Value
		case "member":
			event.MemberId = v.Value
		case "rank":
			rank, err := strconv.Atoi(v.Value)
			if err != nil {
				return nil
			}
			event.Rank = rank
		case "expireAt":
			expireAt, err := time.Parse(time.RFC3339, v.Value)
			if err != nil {
				return nil
			}
			event.ExpireAt = expireAt
		}
	}
	return event
}

type EventSuccessionResolved struct {
	DAOId       string           `json:"daoId"`
	Status      SuccessionStatus `json:"status"`
	NewOperator string           `json:"newOperator"`
}

func EncodeEventSuccessionResolved(event *EventSuccessionResolved) Event {
	return Event{
		Type: EventSuccessionResolvedType,
		Attributes: []EventAttribute{
			{Key: "dao", Value: event.DAOId, Index: true},
			{Key: "status", Value: fmt.Sprintf("%v", uint64(event.Status)), Index: false},
			{Key: "operator", Value: event.NewOperator, Index: false},
		},
	}
}

func DecodeEventSuccessionResolved(originEvent Event) *EventSuccessionResolved {
	event := &EventSuccessionResolved{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "dao":
			event.DAOId = v.Value
		case "status":
			status, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Status = SuccessionStatus(status)
		case "operator":
			event.NewOperator = v.Value
		}
	}
	return event
}

type EventCreditIssued struct {
	MemberId   string `json:"memberId"`
	DAOId      string `json:"daoId"`
	ProposalId string `json:"proposalId"`
	Amount     uint64 `json:"amount"`
	Reason     string `json:"reason"`
}

func EncodeEventCreditIssued(event *EventCreditIssued) Event {
	return Event{
		Type: EventCreditIssuedType,
		Attributes: []EventAttribute{
			{Key: "member", Value: event.MemberId, Index: true},
			{Key: "dao", Value: event.DAOId, Index: false},
			{Key: "proposal", Value: event.ProposalId, Index: true},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount), Index: false},
			{Key: "reason", Value: event.Reason, Index: false},
		},
	}
}

func DecodeEventCreditIssued(originEvent Event) *EventCreditIssued {
	event := &EventCreditIssued{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "member":
			event.MemberId = v.Value
		case "dao":
			event.DAOId = v.Value
		case "proposal":
			event.ProposalId = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "reason":
			event.Reason = v.Value
		}
	}
	return event
}
