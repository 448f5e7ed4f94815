package rpc

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
)

type mtMintParams struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	ItemID uint64 `json:"itemId"`
	Amount string `json:"amount"`
	URI    string `json:"uri"`
}

type mtMintBatchParams struct {
	Caller  string   `json:"caller"`
	To      string   `json:"to"`
	ItemIDs []uint64 `json:"itemIds"`
	Amounts []string `json:"amounts"`
	URIs    []string `json:"uris"`
}

type mtBalanceParams struct {
	Address string `json:"address"`
	ItemID  uint64 `json:"itemId"`
}

type mtBalanceBatchParams struct {
	Addresses []string `json:"addresses"`
	ItemIDs   []uint64 `json:"itemIds"`
}

type mtItemParams struct {
	ItemID uint64 `json:"itemId"`
}

type mtTransferParams struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	To     string `json:"to"`
	ItemID uint64 `json:"itemId"`
	Amount string `json:"amount"`
}

type mtBatchTransferParams struct {
	Caller  string   `json:"caller"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	ItemIDs []uint64 `json:"itemIds"`
	Amounts []string `json:"amounts"`
}

func parseAmounts(field string, raw []string) ([]*big.Int, error) {
	amounts := make([]*big.Int, len(raw))
	for i, amountStr := range raw {
		amount, err := parseAmount(fmt.Sprintf("%s[%d]", field, i), amountStr)
		if err != nil {
			return nil, err
		}
		amounts[i] = amount
	}
	return amounts, nil
}

func (s *Server) handleMultiMint(w http.ResponseWriter, req *RPCRequest) {
	var p mtMintParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MultiMint(caller, to, p.ItemID, amount, p.URI); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMultiMintBatch(w http.ResponseWriter, req *RPCRequest) {
	var p mtMintBatchParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amounts, err := parseAmounts("amounts", p.Amounts)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MultiMintBatch(caller, to, p.ItemIDs, amounts, p.URIs); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMultiBalanceOf(w http.ResponseWriter, req *RPCRequest) {
	var p mtBalanceParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	addr, err := parseAddress("address", p.Address)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	balance, err := s.node.MultiBalanceOf(addr, p.ItemID)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, balance.String())
}

func (s *Server) handleMultiBalanceOfBatch(w http.ResponseWriter, req *RPCRequest) {
	var p mtBalanceBatchParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	addrs := make([]common.Address, len(p.Addresses))
	for i, addrStr := range p.Addresses {
		addr, err := parseAddress(fmt.Sprintf("addresses[%d]", i), addrStr)
		if err != nil {
			invalidParams(w, req, err)
			return
		}
		addrs[i] = addr
	}
	balances, err := s.node.MultiBalanceOfBatch(addrs, p.ItemIDs)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	out := make([]string, len(balances))
	for i, balance := range balances {
		out[i] = balance.String()
	}
	writeResult(w, req.ID, out)
}

func (s *Server) handleMultiURI(w http.ResponseWriter, req *RPCRequest) {
	var p mtItemParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	uri, err := s.node.MultiURI(p.ItemID)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, uri)
}

func (s *Server) handleMultiIsApprovedForAll(w http.ResponseWriter, req *RPCRequest) {
	var p nftOperatorQueryParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	owner, err := parseAddress("owner", p.Owner)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	operator, err := parseAddress("operator", p.Operator)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	writeResult(w, req.ID, s.node.MultiIsApprovedForAll(owner, operator))
}

func (s *Server) handleMultiSetApprovalForAll(w http.ResponseWriter, req *RPCRequest) {
	var p nftOperatorParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	operator, err := parseAddress("operator", p.Operator)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MultiSetApprovalForAll(caller, operator, p.Approved); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMultiSafeTransferFrom(w http.ResponseWriter, req *RPCRequest) {
	var p mtTransferParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	from, err := parseAddress("from", p.From)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MultiSafeTransferFrom(caller, from, to, p.ItemID, amount); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMultiSafeBatchTransferFrom(w http.ResponseWriter, req *RPCRequest) {
	var p mtBatchTransferParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	from, err := parseAddress("from", p.From)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amounts, err := parseAmounts("amounts", p.Amounts)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MultiSafeBatchTransferFrom(caller, from, to, p.ItemIDs, amounts); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMultiIsMinter(w http.ResponseWriter, req *RPCRequest) {
	var p nftAddressParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	addr, err := parseAddress("address", p.Address)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	writeResult(w, req.ID, s.node.MultiIsMinter(addr))
}

func (s *Server) handleMultiGrantMinter(w http.ResponseWriter, req *RPCRequest) {
	var p nftRoleParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	addr, err := parseAddress("address", p.Address)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MultiGrantMinter(caller, addr); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMultiRevokeMinter(w http.ResponseWriter, req *RPCRequest) {
	var p nftRoleParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	addr, err := parseAddress("address", p.Address)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MultiRevokeMinter(caller, addr); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}
