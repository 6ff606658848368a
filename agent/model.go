package agent

// sqlite models

type ProposalRow struct {
	Id           string `gorm:"primaryKey" json:"id"`
	DAO          string `json:"dao"`
	Kind         uint64 `json:"kind"`
	Status       uint64 `json:"status"`
	StatusReason string `json:"status_reason"`
}

type VoteRow struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Proposal string `json:"proposal"`
	Voter    string `json:"voter"`
	Choice   uint64 `json:"choice"`
	Total    uint64 `json:"total"`
}

type ObjectionRow struct {
	Id       string `gorm:"primaryKey" json:"id"`
	Proposal string `json:"proposal"`
	Objector string `json:"objector"`
	Reason   string `json:"reason"`
}

type FinalDecisionRow struct {
	Proposal string `gorm:"primaryKey" json:"proposal"`
	Decision uint64 `json:"decision"`
	Reviewer string `json:"reviewer"`
	Adopted  uint64 `json:"adopted"`
}

type CollateralRow struct {
	Proposal string `gorm:"primaryKey" json:"proposal"`
	State    uint64 `json:"state"`
	Refunded uint64 `json:"refunded"`
	Burned   uint64 `json:"burned"`
}

type SuccessionOfferRow struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	DAO      string `json:"dao"`
	Member   string `json:"member"`
	Rank     int    `json:"rank"`
	ExpireAt string `json:"expire_at"`
	Status   uint64 `json:"status"`
	Operator string `json:"operator"`
}

type CreditRow struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Member   string `json:"member"`
	DAO      string `json:"dao"`
	Proposal string `json:"proposal"`
	Amount   uint64 `json:"amount"`
	Reason   string `json:"reason"`
}
