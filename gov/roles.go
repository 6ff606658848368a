package gov

// Capability is an explicit role lookup queried once per command. Privilege
// is derived from the store, never from caller-supplied flags.
type Capability int

const (
	// CapDAOOperator: the operator of one specific DAO.
	CapDAOOperator Capability = iota + 1
	// CapAnyOperator: an operator of any DAO network-wide.
	CapAnyOperator
	// CapTopOperator: the operator of the operations DAO.
	CapTopOperator
)

// HasCapability reports whether memberId holds cap. daoId is consulted only
// for CapDAOOperator.
func (e *Engine) HasCapability(memberId, daoId string, cap Capability) (bool, error) {
	switch cap {
	case CapDAOOperator:
		dao, err := e.store.GetDAO(daoId)
		if err != nil {
			return false, err
		}
		return dao.OperatorId == memberId, nil
	case CapAnyOperator:
		daos, err := e.store.ListDAOs()
		if err != nil {
			return false, err
		}
		for _, d := range daos {
			if d.OperatorId == memberId {
				return true, nil
			}
		}
		return false, nil
	case CapTopOperator:
		ops, err := e.store.GetDAO(e.store.OpsDAOId())
		if err != nil {
			return false, err
		}
		return ops.OperatorId == memberId, nil
	}
	return false, nil
}

// operatorRole names the strongest operator role memberId holds, for the
// objection record.
func (e *Engine) operatorRole(memberId string) (role string, ok bool, err error) {
	top, err := e.HasCapability(memberId, "", CapTopOperator)
	if err != nil {
		return "", false, err
	}
	if top {
		return "top_op", true, nil
	}
	any, err := e.HasCapability(memberId, "", CapAnyOperator)
	if err != nil {
		return "", false, err
	}
	if any {
		return "dao_op", true, nil
	}
	return "", false, nil
}
