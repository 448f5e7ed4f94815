package rpc

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
)

type nftMintParams struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	URI    string `json:"uri"`
}

type nftAddressParams struct {
	Address string `json:"address"`
}

type nftItemParams struct {
	ItemID uint64 `json:"itemId"`
}

type nftApproveParams struct {
	Caller  string `json:"caller"`
	Spender string `json:"spender"`
	ItemID  uint64 `json:"itemId"`
}

type nftOperatorParams struct {
	Caller   string `json:"caller"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

type nftOperatorQueryParams struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
}

type nftTransferParams struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	To     string `json:"to"`
	ItemID uint64 `json:"itemId"`
}

type nftRoleParams struct {
	Caller  string `json:"caller"`
	Address string `json:"address"`
}

func (s *Server) handleNFTMint(w http.ResponseWriter, req *RPCRequest) {
	var p nftMintParams
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
	id, err := s.node.NFTMint(caller, to, p.URI)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, map[string]uint64{"itemId": id})
}

func (s *Server) handleNFTBalanceOf(w http.ResponseWriter, req *RPCRequest) {
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
	balance, err := s.node.NFTBalanceOf(addr)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, balance)
}

func (s *Server) handleNFTOwnerOf(w http.ResponseWriter, req *RPCRequest) {
	var p nftItemParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	owner, err := s.node.NFTOwnerOf(p.ItemID)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, owner.Hex())
}

func (s *Server) handleNFTTokenURI(w http.ResponseWriter, req *RPCRequest) {
	var p nftItemParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	uri, err := s.node.NFTTokenURI(p.ItemID)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, uri)
}

func (s *Server) handleNFTGetApproved(w http.ResponseWriter, req *RPCRequest) {
	var p nftItemParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	spender, err := s.node.NFTGetApproved(p.ItemID)
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, spender.Hex())
}

func (s *Server) handleNFTIsApprovedForAll(w http.ResponseWriter, req *RPCRequest) {
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
	writeResult(w, req.ID, s.node.NFTIsApprovedForAll(owner, operator))
}

func (s *Server) handleNFTApprove(w http.ResponseWriter, req *RPCRequest) {
	var p nftApproveParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	spender, err := parseAddress("spender", p.Spender)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.NFTApprove(caller, spender, p.ItemID); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleNFTSetApprovalForAll(w http.ResponseWriter, req *RPCRequest) {
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
	if err := s.node.NFTSetApprovalForAll(caller, operator, p.Approved); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) transferAddresses(w http.ResponseWriter, req *RPCRequest, p *nftTransferParams) (caller, from, to common.Address, ok bool) {
	callerAddr, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	fromAddr, err := parseAddress("from", p.From)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	toAddr, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	return callerAddr, fromAddr, toAddr, true
}

func (s *Server) handleNFTTransferFrom(w http.ResponseWriter, req *RPCRequest) {
	var p nftTransferParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, from, to, ok := s.transferAddresses(w, req, &p)
	if !ok {
		return
	}
	if err := s.node.NFTTransferFrom(caller, from, to, p.ItemID); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleNFTSafeTransferFrom(w http.ResponseWriter, req *RPCRequest) {
	var p nftTransferParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, from, to, ok := s.transferAddresses(w, req, &p)
	if !ok {
		return
	}
	if err := s.node.NFTSafeTransferFrom(caller, from, to, p.ItemID); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleNFTIsMinter(w http.ResponseWriter, req *RPCRequest) {
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
	writeResult(w, req.ID, s.node.NFTIsMinter(addr))
}

func (s *Server) handleNFTGrantMinter(w http.ResponseWriter, req *RPCRequest) {
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
	if err := s.node.NFTGrantMinter(caller, addr); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleNFTRevokeMinter(w http.ResponseWriter, req *RPCRequest) {
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
	if err := s.node.NFTRevokeMinter(caller, addr); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}
